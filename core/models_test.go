package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "simple path",
			content:  "notes/box.md",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "cyrillic path",
			content:  "заметки/деревянная коробка.md",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("a.md")
	id2 := IDFromContent("b.md")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("box.md", "Box", "Crate", "Chest")

	if doc.Id != IDFromContent("box.md") {
		t.Errorf("NewDocument() id = %d, want id derived from path", doc.Id)
	}
	if !doc.Exists {
		t.Errorf("NewDocument() should produce an existing document")
	}
	if len(doc.Aliases) != 2 {
		t.Errorf("NewDocument() aliases = %v, want 2 entries", doc.Aliases)
	}
}

func TestDocument_Sources(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want []string
	}{
		{
			name: "title only",
			doc:  Document{Title: "Box"},
			want: []string{"Box"},
		},
		{
			name: "title then aliases in order",
			doc:  Document{Title: "Box", Aliases: []string{"Crate", "Chest"}},
			want: []string{"Box", "Crate", "Chest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.doc.Sources()
			if len(got) != len(tt.want) {
				t.Fatalf("Sources() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Sources()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBlock_HasID(t *testing.T) {
	if (Block{Line: 3, Text: "para"}).HasID() {
		t.Errorf("HasID() = true for block without id")
	}
	if !(Block{Line: 3, Text: "para", ID: "a1b2c3"}).HasID() {
		t.Errorf("HasID() = false for block with id")
	}
}
