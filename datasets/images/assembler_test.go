package images

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/neurlang/concrete/errs"
)

func records(recs ...ImageRecord) iter.Seq2[ImageRecord, error] {
	return func(yield func(ImageRecord, error) bool) {
		for _, r := range recs {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func labeled(labels ...string) *Table {
	var recs []ImageRecord
	for i, l := range labels {
		recs = append(recs, ImageRecord{Path: filepath.Join(l, string(rune('a'+i))+".jpg"), Label: l})
	}
	t, err := Load(records(recs...))
	if err != nil {
		panic(err)
	}
	return t
}

func TestLoadEmptyCorpus(t *testing.T) {
	if _, err := Load(records()); !errors.Is(err, errs.ErrData) {
		t.Errorf("got %v, want ErrData", err)
	}
	failing := func(yield func(ImageRecord, error) bool) {
		yield(ImageRecord{}, errs.IO(nil, "boom"))
	}
	if _, err := Load(failing); !errors.Is(err, errs.ErrIO) {
		t.Errorf("got %v, want ErrIO", err)
	}
}

func TestMapValueToKey(t *testing.T) {
	tab := labeled("nocrack", "crack", "nocrack", "", "crack")
	keyed := tab.MapValueToKey()
	if tab.HasColumn(ColumnLabelAsKey) || !keyed.HasColumn(ColumnLabelAsKey) {
		t.Fatalf("column bookkeeping wrong")
	}
	want := []uint32{0, 1, 0, 2, 1}
	for i, r := range keyed.Rows() {
		if r.LabelAsKey != want[i] {
			t.Errorf("row %d key %d want %d", i, r.LabelAsKey, want[i])
		}
		if keyed.Vocabulary()[r.LabelAsKey] != r.Label {
			t.Errorf("row %d label %q not at its key", i, r.Label)
		}
	}
	if keyed.Classes() != 3 || tab.Classes() != 0 {
		t.Errorf("classes %d %d", keyed.Classes(), tab.Classes())
	}
}

func TestLoadRawImageBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.png")
	if err := os.WriteFile(path, []byte("pixels"), 0o644); err != nil {
		t.Fatal(err)
	}
	tab, _ := Load(records(ImageRecord{Path: path, Label: "x"}))
	loaded, err := tab.LoadRawImageBytes()
	if err != nil {
		t.Fatal(err)
	}
	if string(loaded.Row(0).Image) != "pixels" || tab.Row(0).Image != nil {
		t.Errorf("image bytes not loaded into a new table")
	}
	missing, _ := Load(records(ImageRecord{Path: filepath.Join(dir, "nope.png")}))
	if _, err := missing.LoadRawImageBytes(); !errors.Is(err, errs.ErrIO) {
		t.Errorf("got %v, want ErrIO", err)
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	tab := labeled("a", "b", "c", "d", "e", "f", "g", "h")
	x, y := tab.Shuffle(7), tab.Shuffle(7)
	moved := false
	for i := 0; i < tab.Len(); i++ {
		if x.Row(i).ImagePath != y.Row(i).ImagePath {
			t.Fatalf("same seed, different order")
		}
		if x.Row(i).ImagePath != tab.Row(i).ImagePath {
			moved = true
		}
	}
	if !moved {
		t.Errorf("shuffle kept the order")
	}
	if tab.Row(0).Label != "a" {
		t.Errorf("shuffle modified its input")
	}
}

func TestTrainTestSplit(t *testing.T) {
	tab := labeled("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	train, test, err := tab.TrainTestSplit(0.3)
	if err != nil {
		t.Fatal(err)
	}
	if train.Len() != 7 || test.Len() != 3 {
		t.Errorf("split %d/%d", train.Len(), test.Len())
	}
	if test.Row(0).Label != "h" {
		t.Errorf("test starts at %q", test.Row(0).Label)
	}
	validation, rest, err := test.TrainTestSplit(0.5)
	if err != nil || validation.Len()+rest.Len() != 3 {
		t.Errorf("validation split %v", err)
	}
	for _, frac := range []float64{0, 1, -0.5, 2} {
		if _, _, err := tab.TrainTestSplit(frac); !errors.Is(err, errs.ErrData) {
			t.Errorf("fraction %v: got %v", frac, err)
		}
	}
	if _, _, err := labeled("a", "b").TrainTestSplit(0.2); !errors.Is(err, errs.ErrData) {
		t.Errorf("empty test side: got %v", err)
	}
	if _, _, err := labeled("a").TrainTestSplit(0.5); !errors.Is(err, errs.ErrData) {
		t.Errorf("single row: got %v", err)
	}
}

func TestNewTable(t *testing.T) {
	if _, err := NewTable([]ModelInput{{LabelAsKey: 2}}, []string{"a", "b"}); !errors.Is(err, errs.ErrData) {
		t.Errorf("got %v, want ErrData", err)
	}
	tab, err := NewTable([]ModelInput{{LabelAsKey: 1, Label: "b"}}, []string{"a", "b"})
	if err != nil || !tab.HasColumn(ColumnImage) || tab.Classes() != 2 {
		t.Errorf("table %v %v", tab, err)
	}
}
