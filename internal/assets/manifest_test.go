package assets

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()

	if m.Name != "miuchi.chat" {
		t.Errorf("Name = %q, want %q", m.Name, "miuchi.chat")
	}
	if m.BackgroundColor != "#1a1a1a" {
		t.Errorf("BackgroundColor = %q, want %q", m.BackgroundColor, "#1a1a1a")
	}
	if len(m.Icons) != len(Sizes) {
		t.Fatalf("len(Icons) = %d, want %d", len(m.Icons), len(Sizes))
	}

	first := m.Icons[0]
	if first.Src != "icon-72x72.png" {
		t.Errorf("Icons[0].Src = %q, want %q", first.Src, "icon-72x72.png")
	}
	if first.Sizes != "72x72" {
		t.Errorf("Icons[0].Sizes = %q, want %q", first.Sizes, "72x72")
	}
	if first.Type != "image/png" {
		t.Errorf("Icons[0].Type = %q, want %q", first.Type, "image/png")
	}

	last := m.Icons[len(m.Icons)-1]
	if last.Src != "icon-512x512.png" {
		t.Errorf("last icon Src = %q, want %q", last.Src, "icon-512x512.png")
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()

	p, err := WriteManifest(dir, nil)
	if err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}
	if filepath.Base(p) != ManifestFileName {
		t.Errorf("path = %q, want base %q", p, ManifestFileName)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("manifest does not end with a newline")
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m.ShortName != "miuchi" {
		t.Errorf("ShortName = %q, want %q", m.ShortName, "miuchi")
	}
	if len(m.Icons) != len(Sizes) {
		t.Errorf("len(Icons) = %d, want %d", len(m.Icons), len(Sizes))
	}
}

func TestWriteManifestCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "icons")

	if _, err := WriteManifest(dir, nil); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestFileName)); err != nil {
		t.Errorf("expected manifest in nested dir: %v", err)
	}
}
