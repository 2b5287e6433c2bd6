package learning

import "crypto/sha256"
import "sync"

import "github.com/neurlang/quaternary"

import "github.com/neurlang/concrete/datasets"
import "github.com/neurlang/concrete/hashtron"

// Memo remembers learned hashtrons by the quaternary encoding of their dataset,
// so an identical tally in a later epoch is not solved twice.
type Memo struct {
	mut  sync.RWMutex
	m    map[[32]byte]hashtron.Hashtron
	hits uint64
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{m: make(map[[32]byte]hashtron.Hashtron)}
}

func memoKey(d datasets.Dataset) [32]byte {
	q := []byte(quaternary.Make(d))
	return sha256.Sum256(q)
}

func (m *Memo) get(key [32]byte) (*hashtron.Hashtron, bool) {
	m.mut.Lock()
	defer m.mut.Unlock()
	h, ok := m.m[key]
	if ok {
		m.hits++
	}
	return &h, ok
}

func (m *Memo) put(key [32]byte, h *hashtron.Hashtron) {
	m.mut.Lock()
	m.m[key] = *h
	m.mut.Unlock()
}

// Hits reports how many datasets were answered from the memo.
func (m *Memo) Hits() uint64 {
	m.mut.RLock()
	defer m.mut.RUnlock()
	return m.hits
}

// Len reports the number of remembered hashtrons.
func (m *Memo) Len() int {
	m.mut.RLock()
	defer m.mut.RUnlock()
	return len(m.m)
}
