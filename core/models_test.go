package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "Acme Hardware",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "A much longer entity identity string that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("(Acme Hardware,Portland,OR)")
	id2 := IDFromContent("(Acme Hardware,Salem,OR)")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestCatalogEntity_Tuple(t *testing.T) {
	tests := []struct {
		name   string
		entity CatalogEntity
		want   string
	}{
		{
			name: "full identity",
			entity: CatalogEntity{
				Name:  "Acme Hardware",
				City:  "Portland",
				State: "OR",
			},
			want: "(Acme Hardware,Portland,OR)",
		},
		{
			name: "no locality",
			entity: CatalogEntity{
				Name: "Acme Hardware",
			},
			want: "(Acme Hardware,,)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entity.Tuple(); got != tt.want {
				t.Errorf("Tuple() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCatalogEntityMUS_Roundtrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	entity := CatalogEntity{
		Id:         IDFromContent("(Acme Hardware,Portland,OR)"),
		Name:       "Acme Hardware",
		AltName:    "Acme Hardware Supply",
		Category:   "retail",
		City:       "Portland",
		State:      "OR",
		InsertedAt: now,
		UpdatedAt:  now,
	}

	buf := make([]byte, CatalogEntityMUS.Size(entity))
	n := CatalogEntityMUS.Marshal(entity, buf)
	if n != len(buf) {
		t.Fatalf("Marshal() wrote %d bytes, Size() reported %d", n, len(buf))
	}

	got, n, err := CatalogEntityMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Unmarshal() consumed %d bytes, want %d", n, len(buf))
	}
	if got != entity {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, entity)
	}

	skipped, err := CatalogEntityMUS.Skip(buf)
	if err != nil {
		t.Fatalf("Skip() error: %v", err)
	}
	if skipped != len(buf) {
		t.Errorf("Skip() consumed %d bytes, want %d", skipped, len(buf))
	}
}
