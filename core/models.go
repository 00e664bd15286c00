package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a stable identifier for a document.
// It is derived from the document's vault-relative path.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is one searchable unit, typically a note.
// Documents are immutable for the lifetime of the index built from them.
type Document struct {
	Id      ID
	Path    string   // Opaque addressing key, never scored
	Title   string   // Primary search and display text
	Aliases []string // Secondary search texts, in declaration order
	Exists  bool     // False for placeholders of linked-but-missing notes
}

// NewDocument returns an existing document with the given path, title and aliases.
func NewDocument(path, title string, aliases ...string) Document {
	return Document{
		Id:      IDFromContent(path),
		Path:    path,
		Title:   title,
		Aliases: aliases,
		Exists:  true,
	}
}

// Sources returns the searchable texts of the document, title first.
func (d Document) Sources() []string {
	sources := make([]string, 0, len(d.Aliases)+1)
	sources = append(sources, d.Title)
	return append(sources, d.Aliases...)
}

// SearchResult is a ranked document match.
type SearchResult struct {
	Document Document
	// MatchedAlias holds the alias that produced the winning score.
	// It is empty when the title matched at least as well as every alias.
	MatchedAlias string
	Score        float64
}

// Heading is a markdown heading inside a document.
type Heading struct {
	Text  string
	Level int
}

// Block is a referenceable paragraph inside a document.
type Block struct {
	Line int    // 1-based line the block ends on; ids are appended here
	Text string // Block text without any trailing id marker
	ID   string // Existing block id, empty when none has been assigned yet
}

// HasID reports whether the block already carries an id.
func (b Block) HasID() bool {
	return b.ID != ""
}
