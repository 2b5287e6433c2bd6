package cache

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/neurlang/concrete/datasets/images"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bottlenecks.db")
	c, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	digest := images.Digest([]byte("image"))
	if g, err := c.Get(digest, 3); err != nil || g != nil {
		t.Fatalf("empty cache returned %v %v", g, err)
	}
	g, _ := images.NewGrid(3, []byte{0, 1, 2, 3, 0, 1, 2, 3, 0})
	if err := c.Put(digest, g); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(digest, g); err != nil {
		t.Fatalf("replacing a row: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c, err = Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	got, err := c.Get(digest, 3)
	if err != nil || got == nil {
		t.Fatalf("reopened cache lost the row: %v", err)
	}
	if !bytes.Equal(got.Pixels(), g.Pixels()) {
		t.Errorf("pixels %v, want %v", got.Pixels(), g.Pixels())
	}
	if other, _ := c.Get(digest, 4); other != nil {
		t.Errorf("grid size is part of the key")
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 1 {
		t.Errorf("hits %d misses %d", hits, misses)
	}
}

func TestMemory(t *testing.T) {
	c, err := Open(":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	g, _ := images.NewGrid(2, []byte{3, 3, 3, 3})
	d := images.Digest([]byte{1})
	if err := c.Put(d, g); err != nil {
		t.Fatal(err)
	}
	if got, err := c.Get(d, 2); err != nil || got == nil || got.Feature(0) != 0xFF {
		t.Errorf("got %v %v", got, err)
	}
}
