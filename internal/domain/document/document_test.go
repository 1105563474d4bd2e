package document

import (
	"testing"
	"time"
)

func TestID_CallerSupplied(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	tests := []struct {
		name string
		id   any
		want string
	}{
		{"string", "my-doc", "my-doc"},
		{"json number", float64(42), "42"},
		{"fractional", 1.5, "1.5"},
		{"int", 7, "7"},
		{"empty string", "", "doc-1700000000000-3"},
		{"zero", float64(0), "doc-1700000000000-3"},
		{"false", false, "doc-1700000000000-3"},
		{"nil", nil, "doc-1700000000000-3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := New("text", map[string]any{"id": tc.id})
			if got := d.ID(3, now); got != tc.want {
				t.Errorf("ID() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestID_Generated(t *testing.T) {
	d := New("text", nil)
	now := time.UnixMilli(1712345678901)
	if got := d.ID(0, now); got != "doc-1712345678901-0" {
		t.Errorf("ID() = %q", got)
	}
}

func TestStoredMetadata_AttachesText(t *testing.T) {
	d := New("hello world", map[string]any{"file_name": "a.md", "pageContent": "stale"})

	m := d.StoredMetadata()
	if m[PageContentKey] != "hello world" {
		t.Errorf("pageContent = %v", m[PageContentKey])
	}
	if m["file_name"] != "a.md" {
		t.Errorf("file_name = %v", m["file_name"])
	}
	if d.Metadata()["pageContent"] != "stale" {
		t.Error("caller metadata must not be mutated")
	}
}

func TestNew_CopiesMetadata(t *testing.T) {
	src := map[string]any{"k": "v"}
	d := New("t", src)
	src["k"] = "changed"
	if d.Metadata()["k"] != "v" {
		t.Error("metadata should be copied")
	}
	if d.Text() != "t" {
		t.Errorf("Text() = %q", d.Text())
	}
}
