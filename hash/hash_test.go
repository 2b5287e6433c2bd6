package hash

import (
	"testing"
)

// performance benchmark
func BenchmarkHash(b *testing.B) {
	n := uint32(0)
	s := uint32(0)
	for i := 0; i < b.N; i++ {
		n = Hash(n, s, 1<<20)
		s++
	}
}

// range test
func TestHashRange(t *testing.T) {
	for _, max := range []uint32{1, 2, 3, 7, 1000, 1 << 16, 0xFFFFFFFF} {
		for n := uint32(0); n < 5000; n++ {
			if out := Hash(n*2654435761, n, max); out >= max {
				t.Fatalf("Hash(%d, %d, %d) == %d (output bigger or equal than max)", n*2654435761, n, max, out)
			}
		}
	}
}

// the two outputs of a modulo 2 hash should be roughly balanced
func TestHashBalance(t *testing.T) {
	var ones int
	const total = 100000
	for n := uint32(0); n < total; n++ {
		ones += int(Hash(n, 12345, 2))
	}
	if ones < total*40/100 || ones > total*60/100 {
		t.Errorf("unbalanced parity: %d ones out of %d", ones, total)
	}
}

func FuzzHash(f *testing.F) {
	f.Add(uint32(0), uint32(0), uint32(0))
	f.Add(uint32(1), uint32(2), uint32(3))
	f.Fuzz(func(t *testing.T, n, s, max uint32) {
		out := Hash(n, s, max)
		if max == 0 && out != 0 {
			t.Errorf("Hash(%d, %d, 0) == %d (max=0 should be 0)", n, s, out)
		}
		if max > 0 && out >= max {
			t.Errorf("Hash(%d, %d, %d) == %d (output bigger or equal than max)", n, s, max, out)
		}
	})
}

// TestHashVectorized verifies that HashVectorized produces the same results as multiple Hash() calls
func TestHashVectorized(t *testing.T) {
	testCases := []struct {
		name string
		size int
	}{
		{"single", 1},
		{"small", 8},
		{"medium", 16},
		{"large", 64},
		{"odd", 17},
		{"prime", 31},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			size := tc.size
			n := make([]uint32, size)
			s := make([]uint32, size)
			out := make([]uint32, size)
			unrolled := make([]uint32, size)

			for i := 0; i < size; i++ {
				n[i] = uint32(i*123 + 456)
				s[i] = uint32(i*789 + 101112)
			}

			HashVectorized(out, n, s, 1000000)
			hashUnrolled(unrolled, n, s, 1000000)

			for i := 0; i < size; i++ {
				if want := Hash(n[i], s[i], 1000000); out[i] != want || unrolled[i] != want {
					t.Errorf("index %d: got %d and %d, want %d", i, out[i], unrolled[i], want)
				}
			}
		})
	}
}

func TestHashVectorizedParallelism(t *testing.T) {
	if HashVectorizedParallelism() < 1 {
		t.Fatalf("parallelism %d is below 1", HashVectorizedParallelism())
	}
}
