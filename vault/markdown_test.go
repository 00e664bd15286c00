package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/notefind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxNote = `---
aliases: [Crate]
---
# Box

First paragraph
continues here.

Second ^abc123

- item one
- item two ^def456

## Wooden lids
### Hinges
`

func TestHeadings(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "Box.md", boxNote)
	v := newTestVault(t, root)
	ctx := context.Background()

	t.Run("document order with levels", func(t *testing.T) {
		headings, err := v.Headings(ctx, core.NewDocument("Box.md", "Box"))
		require.NoError(t, err)
		assert.Equal(t, []core.Heading{
			{Text: "Box", Level: 1},
			{Text: "Wooden lids", Level: 2},
			{Text: "Hinges", Level: 3},
		}, headings)
	})

	t.Run("front matter is not a heading", func(t *testing.T) {
		writeNote(t, root, "Plain.md", "---\nalias: x\n---\ntext\n")
		headings, err := v.Headings(ctx, core.NewDocument("Plain.md", "Plain"))
		require.NoError(t, err)
		assert.Empty(t, headings)
	})

	t.Run("placeholder has none", func(t *testing.T) {
		headings, err := v.Headings(ctx, core.Document{Path: "Ghost", Title: "Ghost"})
		require.NoError(t, err)
		assert.NotNil(t, headings)
		assert.Empty(t, headings)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := v.Headings(ctx, core.NewDocument("Gone.md", "Gone"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestBlocks(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "Box.md", boxNote)
	v := newTestVault(t, root)

	blocks, err := v.Blocks(context.Background(), core.NewDocument("Box.md", "Box"))
	require.NoError(t, err)
	assert.Equal(t, []core.Block{
		{Line: 7, Text: "First paragraph continues here."},
		{Line: 9, Text: "Second", ID: "abc123"},
		{Line: 11, Text: "item one"},
		{Line: 12, Text: "item two", ID: "def456"},
	}, blocks)

	t.Run("placeholder has none", func(t *testing.T) {
		blocks, err := v.Blocks(context.Background(), core.Document{Path: "Ghost", Title: "Ghost"})
		require.NoError(t, err)
		assert.Empty(t, blocks)
	})
}

func TestParseBlocks_WithoutFrontMatter(t *testing.T) {
	blocks := parseBlocks([]byte("one\n\ntwo\nthree\n"))
	assert.Equal(t, []core.Block{
		{Line: 1, Text: "one"},
		{Line: 4, Text: "two three"},
	}, blocks)
}

func TestBlockIDs(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "Box.md", boxNote)
	writeNote(t, root, "sub/Lamp.md", "Bright ^lamp01\r\nnot an id^abc\n")
	v := newTestVault(t, root)

	ids, err := v.BlockIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{
		"abc123": {},
		"def456": {},
		"lamp01": {},
	}, ids)
}

func TestAppendBlockID(t *testing.T) {
	ctx := context.Background()

	t.Run("appends marker to line", func(t *testing.T) {
		root := t.TempDir()
		writeNote(t, root, "Box.md", boxNote)
		v := newTestVault(t, root)
		doc := core.NewDocument("Box.md", "Box")

		require.NoError(t, v.AppendBlockID(ctx, doc, 7, "0a1b2c"))

		blocks, err := v.Blocks(ctx, doc)
		require.NoError(t, err)
		require.NotEmpty(t, blocks)
		assert.Equal(t, "0a1b2c", blocks[0].ID)
		assert.Equal(t, "First paragraph continues here.", blocks[0].Text)

		data, err := os.ReadFile(filepath.Join(root, "Box.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "continues here. ^0a1b2c\n")
	})

	t.Run("line out of range", func(t *testing.T) {
		root := t.TempDir()
		writeNote(t, root, "A.md", "one\ntwo\n")
		v := newTestVault(t, root)
		doc := core.NewDocument("A.md", "A")

		assert.ErrorIs(t, v.AppendBlockID(ctx, doc, 0, "abcdef"), ErrLineOutOfRange)
		assert.ErrorIs(t, v.AppendBlockID(ctx, doc, 3, "abcdef"), ErrLineOutOfRange)
		require.NoError(t, v.AppendBlockID(ctx, doc, 2, "abcdef"))
	})

	t.Run("placeholder", func(t *testing.T) {
		v := newTestVault(t, t.TempDir())
		err := v.AppendBlockID(ctx, core.Document{Path: "Ghost", Title: "Ghost"}, 1, "abcdef")
		assert.ErrorIs(t, err, ErrPlaceholderDocument)
	})

	t.Run("invalid id", func(t *testing.T) {
		v := newTestVault(t, t.TempDir())
		err := v.AppendBlockID(ctx, core.NewDocument("A.md", "A"), 1, "no spaces")
		assert.ErrorIs(t, err, ErrInvalidBlockID)
	})

	t.Run("missing file propagates", func(t *testing.T) {
		v := newTestVault(t, t.TempDir())
		err := v.AppendBlockID(ctx, core.NewDocument("Gone.md", "Gone"), 1, "abcdef")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestAppendBlockIDBytes(t *testing.T) {
	t.Run("keeps crlf", func(t *testing.T) {
		out, err := appendBlockID([]byte("one\r\ntwo\r\n"), 1, "abc")
		require.NoError(t, err)
		assert.Equal(t, "one ^abc\r\ntwo\r\n", string(out))
	})

	t.Run("trims trailing spaces", func(t *testing.T) {
		out, err := appendBlockID([]byte("one   \ntwo"), 1, "abc")
		require.NoError(t, err)
		assert.Equal(t, "one ^abc\ntwo", string(out))
	})

	t.Run("last line without newline", func(t *testing.T) {
		out, err := appendBlockID([]byte("one\ntwo"), 2, "abc")
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo ^abc", string(out))
	})
}
