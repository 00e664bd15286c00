package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Query
	}{
		{
			name: "plain note",
			raw:  "wooden box",
			want: Query{Note: "wooden box"},
		},
		{
			name: "heading with display",
			raw:  "note#heading|display",
			want: Query{Note: "note", Kind: SubpathHeading, Subpath: "heading", Display: "display", HasDisplay: true},
		},
		{
			name: "caret before hash wins",
			raw:  "note^block#heading",
			want: Query{Note: "note", Kind: SubpathBlock, Subpath: "block#heading"},
		},
		{
			name: "hash before caret wins",
			raw:  "note#heading^block",
			want: Query{Note: "note", Kind: SubpathHeading, Subpath: "heading^block"},
		},
		{
			name: "display text is not scanned",
			raw:  "note|#not-a-heading",
			want: Query{Note: "note", Display: "#not-a-heading", HasDisplay: true},
		},
		{
			name: "only first pipe splits",
			raw:  "note|a|b",
			want: Query{Note: "note", Display: "a|b", HasDisplay: true},
		},
		{
			name: "trailing pipe gives empty display",
			raw:  "note|",
			want: Query{Note: "note", Display: "", HasDisplay: true},
		},
		{
			name: "trailing hash gives empty heading filter",
			raw:  "note#",
			want: Query{Note: "note", Kind: SubpathHeading, Subpath: ""},
		},
		{
			name: "trailing caret gives empty block filter",
			raw:  "note^",
			want: Query{Note: "note", Kind: SubpathBlock, Subpath: ""},
		},
		{
			name: "leading hash gives empty note",
			raw:  "#heading",
			want: Query{Note: "", Kind: SubpathHeading, Subpath: "heading"},
		},
		{
			name: "leading pipe",
			raw:  "|display",
			want: Query{Display: "display", HasDisplay: true},
		},
		{
			name: "empty input",
			raw:  "",
			want: Query{},
		},
		{
			name: "block with display",
			raw:  "Деревянная коробка^abc|коробка",
			want: Query{Note: "Деревянная коробка", Kind: SubpathBlock, Subpath: "abc", Display: "коробка", HasDisplay: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestQuery_Accessors(t *testing.T) {
	t.Run("heading", func(t *testing.T) {
		q := Parse("note#intro")
		heading, ok := q.Heading()
		assert.True(t, ok)
		assert.Equal(t, "intro", heading)
		_, ok = q.Block()
		assert.False(t, ok)
	})

	t.Run("block", func(t *testing.T) {
		q := Parse("note^")
		block, ok := q.Block()
		assert.True(t, ok)
		assert.Empty(t, block)
		_, ok = q.Heading()
		assert.False(t, ok)
	})

	t.Run("none", func(t *testing.T) {
		q := Parse("note")
		_, ok := q.Heading()
		assert.False(t, ok)
		_, ok = q.Block()
		assert.False(t, ok)
	})
}

func TestQuery_String(t *testing.T) {
	for _, raw := range []string{
		"note",
		"note#heading|display",
		"note^block#heading",
		"note|#not-a-heading",
		"note|",
		"#",
		"",
	} {
		assert.Equal(t, raw, Parse(raw).String(), "raw %q", raw)
	}
}

func TestSubpathKind_String(t *testing.T) {
	assert.Equal(t, "none", SubpathNone.String())
	assert.Equal(t, "heading", SubpathHeading.String())
	assert.Equal(t, "block", SubpathBlock.String())
}
