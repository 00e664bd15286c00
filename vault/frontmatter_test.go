package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontMatter(t *testing.T) {
	t.Run("with front matter", func(t *testing.T) {
		fm, body, offset := splitFrontMatter([]byte("---\nalias: A\n---\n# Body\n"))
		assert.Equal(t, "alias: A", string(fm))
		assert.Equal(t, "# Body\n", string(body))
		assert.Equal(t, 3, offset)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		fm, body, offset := splitFrontMatter([]byte("---\r\nalias: A\r\n---\r\nbody"))
		assert.Equal(t, "alias: A", string(fm))
		assert.Equal(t, "body", string(body))
		assert.Equal(t, 3, offset)
	})

	t.Run("front matter only", func(t *testing.T) {
		fm, body, _ := splitFrontMatter([]byte("---\nalias: A\n---"))
		assert.Equal(t, "alias: A", string(fm))
		assert.Empty(t, body)
	})

	t.Run("without front matter", func(t *testing.T) {
		fm, body, offset := splitFrontMatter([]byte("# Title\n---\nx\n---\n"))
		assert.Nil(t, fm)
		assert.Equal(t, "# Title\n---\nx\n---\n", string(body))
		assert.Zero(t, offset)
	})
}

func TestParseAliases(t *testing.T) {
	tests := []struct {
		name string
		fm   string
		want []string
	}{
		{"sequence", "aliases:\n  - One\n  - Two", []string{"One", "Two"}},
		{"flow sequence", "aliases: [One, Two]", []string{"One", "Two"}},
		{"scalar", "alias: One", []string{"One"}},
		{"both keys", "aliases: [One]\nalias: Two", []string{"One", "Two"}},
		{"blank entries dropped", "aliases: ['', ' ', Three]", []string{"Three"}},
		{"other keys only", "tags: [a, b]", nil},
		{"not a mapping", "- a\n- b", nil},
		{"empty", "", nil},
		{"cyrillic", "aliases: [Ящик]", []string{"Ящик"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAliases([]byte(tt.fm))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		_, err := parseAliases([]byte("aliases: [unclosed"))
		assert.Error(t, err)
	})
}
