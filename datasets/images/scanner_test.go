package images

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/neurlang/concrete/errs"
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func scanAll(t *testing.T, root string, useParentDirAsLabel bool) []ImageRecord {
	t.Helper()
	c, err := Scan(root, useParentDirAsLabel)
	if err != nil {
		t.Fatal(err)
	}
	recs, err := c.Records()
	if err != nil {
		t.Fatal(err)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Path < recs[j].Path })
	return recs
}

func TestScanParentDirLabels(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "crackA/img1.jpg", "crackA/img2.png", "nocrack/img3.jpg", "nocrack/notes.txt")
	recs := scanAll(t, root, true)
	if len(recs) != 3 {
		t.Fatalf("got %d records: %v", len(recs), recs)
	}
	want := []string{"crackA", "crackA", "nocrack"}
	for i, r := range recs {
		if r.Label != want[i] {
			t.Errorf("record %v, want label %q", r, want[i])
		}
		if filepath.Base(filepath.Dir(r.Path)) != r.Label {
			t.Errorf("label %q is not the parent of %q", r.Label, r.Path)
		}
	}
}

func TestScanExtensionsAreCaseSensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a/x.jpg", "a/x.JPG", "a/y.Png", "a/y.png", "a/z.jpeg", "a/w.gif", "a/v.jpg.txt", "deep/er/u.png")
	recs := scanAll(t, root, true)
	var names []string
	for _, r := range recs {
		names = append(names, filepath.Base(r.Path))
	}
	want := []string{"x.jpg", "y.png", "u.png"}
	sort.Strings(names)
	sort.Strings(want)
	if len(names) != len(want) {
		t.Fatalf("got %v want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v want %v", names, want)
		}
	}
}

func TestFileNameLabels(t *testing.T) {
	cases := map[string]string{
		"abc123.jpg":     "abc",
		"123abc.jpg":     "",
		"abcdef.png":     "abcdef",
		"00121021_D.jpg": "",
		"D_0001.jpg":     "D",
		"Überriss7.png":  "Überriss",
	}
	for name, want := range cases {
		if got := Label(filepath.Join("some", "dir", name), false); got != want {
			t.Errorf("Label(%q) = %q, want %q", name, got, want)
		}
	}
	root := t.TempDir()
	touch(t, root, "cracks/abc123.jpg", "cracks/123abc.jpg", "cracks/abcdef.png")
	for _, r := range scanAll(t, root, false) {
		if r.Label != cases[filepath.Base(r.Path)] {
			t.Errorf("record %v", r)
		}
	}
}

func TestScanIsRestartable(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "p/a.jpg", "p/b.jpg", "q/c.png", "q/r/d.png")
	c, err := Scan(root, true)
	if err != nil {
		t.Fatal(err)
	}
	count := func() map[ImageRecord]int {
		o := map[ImageRecord]int{}
		for r, err := range c.All() {
			if err != nil {
				t.Fatal(err)
			}
			o[r]++
		}
		return o
	}
	first, second := count(), count()
	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("traversals %v %v", first, second)
	}
	for r, n := range first {
		if second[r] != n {
			t.Errorf("record %v seen %d then %d times", r, n, second[r])
		}
	}
	// stopping early leaves the next traversal unaffected
	for range c.All() {
		break
	}
	if len(count()) != 4 {
		t.Errorf("early stop changed the next traversal")
	}
}

func TestScanEmptyRoot(t *testing.T) {
	if recs := scanAll(t, t.TempDir(), true); len(recs) != 0 {
		t.Errorf("empty root yielded %v", recs)
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), true)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	file := filepath.Join(t.TempDir(), "file.jpg")
	touch(t, filepath.Dir(file), "file.jpg")
	if _, err := Scan(file, true); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("file root: got %v, want ErrNotFound", err)
	}
}

func TestScanRootRemovedAfterScan(t *testing.T) {
	root := filepath.Join(t.TempDir(), "gone")
	touch(t, root, "a/b.jpg")
	c, err := Scan(root, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(root); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Records(); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestScanUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	touch(t, root, "ok/a.jpg", "locked/b.jpg")
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(locked, 0o755)
	c, err := Scan(root, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Records(); !errors.Is(err, errs.ErrIO) {
		t.Errorf("got %v, want ErrIO", err)
	}
}
