package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Faultbox/glscene/internal/assets/shaders"
	"github.com/Faultbox/glscene/internal/engine/shader"
)

func TestLoadEmbedded(t *testing.T) {
	m := NewManager()

	for _, name := range []string{shaders.Cube, shaders.Axes} {
		data, err := m.Load(name)
		if err != nil {
			t.Fatalf("loading %s: %v", name, err)
		}
		src := shader.ParseString(string(data))
		if !strings.Contains(src.Vertex, "u_MVP") {
			t.Errorf("%s: vertex section missing u_MVP", name)
		}
		if !strings.Contains(src.Fragment, "void main") {
			t.Errorf("%s: fragment section missing main", name)
		}
		if src.Discarded != 0 {
			t.Errorf("%s: %d lines before the first marker", name, src.Discarded)
		}
	}

	data, _ := m.Load(shaders.Axes)
	if !strings.Contains(string(data), "u_Color") {
		t.Error("axes shader must declare u_Color")
	}
}

func TestDirOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	override := "#shader vertex\nvoid main() {}\n"
	if err := os.WriteFile(filepath.Join(dir, shaders.Cube), []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}

	data, err := m.Load(shaders.Cube)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != override {
		t.Errorf("expected override contents, got %q", data)
	}

	// Files missing from the override dir fall back to the embedded set
	if _, err := m.Load(shaders.Axes); err != nil {
		t.Errorf("expected embedded fallback for %s: %v", shaders.Axes, err)
	}
}

func TestAddDirErrors(t *testing.T) {
	m := NewManager()

	if err := m.AddDir("/nonexistent/shader/dir"); err == nil {
		t.Error("expected error for missing dir")
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.AddDir(file); err == nil {
		t.Error("expected error for a regular file")
	}
}

func TestLoadMissing(t *testing.T) {
	m := NewManager()

	_, err := m.Load("Missing.shader")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadCaches(t *testing.T) {
	m := NewManager()
	m.AddFS("mem", fstest.MapFS{
		"a.shader": {Data: []byte("first")},
	})

	if _, err := m.Load("a.shader"); err != nil {
		t.Fatal(err)
	}
	data, err := m.Load("a.shader")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first" {
		t.Errorf("unexpected data %q", data)
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}

	m.Close()
	hits, misses = m.Stats()
	if hits != 0 || misses != 0 {
		t.Error("Close should reset the cache")
	}
}

func TestCache(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("x"); ok {
		t.Error("empty cache returned a value")
	}
	c.Set("x", []byte{1})
	if data, ok := c.Get("x"); !ok || len(data) != 1 {
		t.Error("cache did not return stored value")
	}
	c.Clear()
	if _, ok := c.Get("x"); ok {
		t.Error("cleared cache returned a value")
	}
}
