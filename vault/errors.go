package vault

import "errors"

var (
	// ErrVaultNotDirectory indicates the vault root is not a directory.
	ErrVaultNotDirectory = errors.New("vault root is not a directory")

	// ErrLineOutOfRange indicates a block line number outside the note.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrPlaceholderDocument indicates a write to a note that does not exist.
	ErrPlaceholderDocument = errors.New("document is a placeholder")

	// ErrInvalidBlockID indicates a block id with characters outside [A-Za-z0-9-].
	ErrInvalidBlockID = errors.New("invalid block id")
)
