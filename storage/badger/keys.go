package badger

import "strings"

// Key prefixes for different data types
const (
	ledgerPrefix = "recency"
)

// makeLedgerKey generates a key for a ledger entry by note title.
// Format: prefix:title
func makeLedgerKey(title string) []byte {
	prefix := ledgerPrefix + ":"
	buf := make([]byte, len(prefix)+len(title))
	offset := copy(buf, prefix)
	copy(buf[offset:], title)
	return buf
}

// makeLedgerScanPrefix returns the prefix shared by every ledger key.
func makeLedgerScanPrefix() []byte {
	return []byte(ledgerPrefix + ":")
}

// titleFromLedgerKey extracts the note title from a ledger key.
func titleFromLedgerKey(key []byte) (string, bool) {
	return strings.CutPrefix(string(key), ledgerPrefix+":")
}
