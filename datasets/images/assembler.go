package images

import (
	"iter"
	"math"
	"math/rand"
	"os"

	"github.com/neurlang/concrete/errs"
)

// Table is an ordered set of rows plus the label vocabulary. Transforms
// never modify the receiver.
type Table struct {
	rows    []ModelInput
	vocab   []string
	columns map[string]struct{}
}

// Load materializes the records of seq into a table with the ImagePath and
// Label columns. An empty sequence is an ErrData error.
func Load(seq iter.Seq2[ImageRecord, error]) (*Table, error) {
	t := &Table{columns: columns(ColumnImagePath, ColumnLabel)}
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, ModelInput{ImagePath: rec.Path, Label: rec.Label})
	}
	if len(t.rows) == 0 {
		return nil, errs.Data("no images in corpus")
	}
	return t, nil
}

// NewTable builds a table from rows that already carry keys and image bytes.
// vocab maps every key to its label.
func NewTable(rows []ModelInput, vocab []string) (*Table, error) {
	for i := range rows {
		if int(rows[i].LabelAsKey) >= len(vocab) {
			return nil, errs.Data("row %d has key %d outside a vocabulary of %d", i, rows[i].LabelAsKey, len(vocab))
		}
	}
	return &Table{
		rows:    append([]ModelInput(nil), rows...),
		vocab:   append([]string(nil), vocab...),
		columns: columns(ColumnImagePath, ColumnLabel, ColumnLabelAsKey, ColumnImage),
	}, nil
}

func columns(names ...string) map[string]struct{} {
	o := make(map[string]struct{}, len(names))
	for _, n := range names {
		o[n] = struct{}{}
	}
	return o
}

func (t *Table) derive(rows []ModelInput, added ...string) *Table {
	o := &Table{
		rows:    rows,
		vocab:   t.vocab,
		columns: make(map[string]struct{}, len(t.columns)+len(added)),
	}
	for c := range t.columns {
		o.columns[c] = struct{}{}
	}
	for _, c := range added {
		o.columns[c] = struct{}{}
	}
	return o
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns row i.
func (t *Table) Row(i int) ModelInput {
	return t.rows[i]
}

// Rows iterates the rows in order.
func (t *Table) Rows() iter.Seq2[int, ModelInput] {
	return func(yield func(int, ModelInput) bool) {
		for i, r := range t.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// HasColumn reports whether the column was produced by an earlier stage.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Vocabulary returns the labels indexed by key.
func (t *Table) Vocabulary() []string {
	return append([]string(nil), t.vocab...)
}

// Classes is the number of distinct keys.
func (t *Table) Classes() int {
	return len(t.vocab)
}

// MapValueToKey adds the LabelAsKey column. Keys are dense and 0-based,
// handed out in order of first occurrence.
func (t *Table) MapValueToKey() *Table {
	index := make(map[string]uint32)
	var vocab []string
	rows := make([]ModelInput, len(t.rows))
	for i, r := range t.rows {
		key, ok := index[r.Label]
		if !ok {
			key = uint32(len(vocab))
			index[r.Label] = key
			vocab = append(vocab, r.Label)
		}
		r.LabelAsKey = key
		rows[i] = r
	}
	o := t.derive(rows, ColumnLabelAsKey)
	o.vocab = vocab
	return o
}

// LoadRawImageBytes adds the Image column with the file contents of every row.
func (t *Table) LoadRawImageBytes() (*Table, error) {
	rows := make([]ModelInput, len(t.rows))
	for i, r := range t.rows {
		data, err := os.ReadFile(r.ImagePath)
		if err != nil {
			return nil, errs.IO(err, "loading image %q", r.ImagePath)
		}
		r.Image = data
		rows[i] = r
	}
	return t.derive(rows, ColumnImage), nil
}

// Shuffle returns the rows in a random order that only depends on seed.
func (t *Table) Shuffle(seed int64) *Table {
	rows := append([]ModelInput(nil), t.rows...)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	return t.derive(rows)
}

// TrainTestSplit puts the last round(n*testFraction) rows into test and the
// rest into train. Both sides must end up non-empty.
func (t *Table) TrainTestSplit(testFraction float64) (train, test *Table, err error) {
	if !(testFraction > 0 && testFraction < 1) {
		return nil, nil, errs.Data("test fraction %v outside (0, 1)", testFraction)
	}
	n := len(t.rows)
	k := int(math.Round(float64(n) * testFraction))
	if k == 0 || k == n {
		return nil, nil, errs.Data("splitting %d rows at %v leaves an empty side", n, testFraction)
	}
	train = t.derive(append([]ModelInput(nil), t.rows[:n-k]...))
	test = t.derive(append([]ModelInput(nil), t.rows[n-k:]...))
	return train, test, nil
}
