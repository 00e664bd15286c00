// Package query parses the link-query mini grammar typed between [[ and ]].
//
// A raw query has the shape
//
//	note#heading|display
//	note^block|display
//
// The first '|' splits off the display text, which is never scanned further.
// Within the remaining link target the earlier of '#' and '^' selects a
// heading or block filter; anything after it, further delimiters included,
// belongs to the filter.
package query
