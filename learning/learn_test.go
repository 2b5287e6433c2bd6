package learning

import (
	"math/rand"
	"runtime"
	"testing"

	"github.com/neurlang/concrete/datasets"
)

func randomDataset(r *rand.Rand, n int) datasets.Dataset {
	var d datasets.Dataset
	d.Init()
	for len(d) < n {
		d[r.Uint32()] = r.Intn(2) == 1
	}
	return d
}

func TestTrainingReproducesVotes(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, size := range []int{1, 2, 5, 11, 40, 300} {
		d := randomDataset(r, size)
		var h HyperParameters
		h.Threads = runtime.NumCPU()
		h.Shuffle = true
		htron, err := h.Training(d)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		for feature, want := range d {
			if got := htron.Forward(feature); got != want {
				t.Fatalf("size %d: feature %d got %v want %v", size, feature, got, want)
			}
		}
	}
}

func TestTrainingSmallFeatureSpace(t *testing.T) {
	// 8 bit window features, as produced by the image input layer
	var d datasets.Dataset
	d.Init()
	for v := uint32(0); v < 256; v++ {
		d[v] = v%3 == 0
	}
	var h HyperParameters
	h.Threads = 4
	htron, err := h.Training(d)
	if err != nil {
		t.Fatal(err)
	}
	for v := uint32(0); v < 256; v++ {
		if htron.Forward(v) != (v%3 == 0) {
			t.Fatalf("feature %d misclassified", v)
		}
	}
}

func TestTrainingConstant(t *testing.T) {
	var h HyperParameters
	allTrue := datasets.Dataset{1: true, 2: true}
	allFalse := datasets.Dataset{1: false, 2: false}
	a, err := h.Training(allTrue)
	if err != nil || !a.Forward(1) || !a.Forward(12345) {
		t.Errorf("all true dataset: %v", err)
	}
	b, err := h.Training(allFalse)
	if err != nil || b.Forward(1) || b.Forward(12345) {
		t.Errorf("all false dataset: %v", err)
	}
	c, err := h.Training(datasets.Dataset{})
	if err != nil || c.Forward(7) {
		t.Errorf("empty dataset: %v", err)
	}
}

func TestMemo(t *testing.T) {
	d := datasets.Dataset{1: true, 2: false, 3: true, 4: false, 100: true}
	var h HyperParameters
	h.Memo = NewMemo()
	first, err := h.Training(d)
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.Training(d)
	if err != nil {
		t.Fatal(err)
	}
	if h.Memo.Hits() != 1 || h.Memo.Len() != 1 {
		t.Errorf("memo hits %d len %d", h.Memo.Hits(), h.Memo.Len())
	}
	if first.Len() != second.Len() {
		t.Errorf("memo returned a different program")
	}
}

func TestNextPrime(t *testing.T) {
	cases := map[uint64]uint32{0: 2, 2: 2, 4: 5, 90: 97, 7919: 7919}
	for in, want := range cases {
		if got := nextPrime(in); got != want {
			t.Errorf("nextPrime(%d) = %d, want %d", in, got, want)
		}
	}
	if got := nextPrime(1 << 40); got != 1<<31 {
		t.Errorf("nextPrime did not cap: %d", got)
	}
}

func TestReducingRejectsOneSidedAlphabet(t *testing.T) {
	var h HyperParameters
	if _, _, err := h.Reducing([2][]uint32{{1, 2}, nil}); err == nil {
		t.Errorf("one sided alphabet accepted")
	}
}
