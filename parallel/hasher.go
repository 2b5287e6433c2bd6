package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"
)

// Hasher fingerprints n uint16 values that arrive from many goroutines in
// any order. The digest only depends on the values and their positions.
type Hasher struct {
	mut    sync.Mutex
	values []uint16
	set    []bool
}

// NewUint16Hasher creates a hasher for n values.
func NewUint16Hasher(n int) *Hasher {
	return &Hasher{
		values: make([]uint16, n),
		set:    make([]bool, n),
	}
}

// MustPutUint16 records value at position n. Writing a position twice panics.
func (h *Hasher) MustPutUint16(n int, value uint16) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if h.set[n] {
		panic("duplicate write")
	}
	h.set[n] = true
	h.values[n] = value
}

// Sum returns the digest of all recorded values. Missing positions hash as unset.
func (h *Hasher) Sum() (ret [32]byte) {
	h.mut.Lock()
	defer h.mut.Unlock()
	sha := sha256.New()
	var buf [3]byte
	for i, v := range h.values {
		binary.LittleEndian.PutUint16(buf[:2], v)
		buf[2] = 0
		if h.set[i] {
			buf[2] = 1
		}
		sha.Write(buf[:])
	}
	copy(ret[:], sha.Sum(nil))
	return
}
