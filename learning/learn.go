// Package learning implements the learning stage of the classifier: turning a
// vote dataset into the hash program of a hashtron.
package learning

import crypto_rand "crypto/rand"
import "encoding/binary"
import "errors"
import normal_rand "math/rand"
import "sync"

import "github.com/jbarham/primegen"
import "go.uber.org/zap"

import "github.com/neurlang/concrete/datasets"
import "github.com/neurlang/concrete/hash"
import "github.com/neurlang/concrete/hashtron"
import "github.com/neurlang/concrete/parallel"

// ErrNotConverged is returned when no program was found within MaxSteps.
var ErrNotConverged = errors.New("learning: program did not converge")

// Training learns a hashtron reproducing every feature -> bit pair of d.
func (h *HyperParameters) Training(d datasets.Dataset) (*hashtron.Hashtron, error) {
	h.defaults()
	sd := d.Split()
	if len(sd[1]) == 0 {
		return hashtron.Constant(false), nil
	}
	if len(sd[0]) == 0 {
		return hashtron.Constant(true), nil
	}
	var key [32]byte
	if h.Memo != nil {
		key = memoKey(d)
		if htron, ok := h.Memo.get(key); ok {
			return htron, nil
		}
	}
	if h.Seed {
		var b [8]byte
		if _, err := crypto_rand.Read(b[:]); err == nil {
			normal_rand.Seed(int64(binary.LittleEndian.Uint64(b[:])))
		}
	}
	program, xor, err := h.Reducing(sd.Alphabet())
	if err != nil {
		return nil, err
	}
	htron, err := hashtron.New(program, xor)
	if err != nil {
		return nil, err
	}
	if h.Memo != nil {
		h.Memo.put(key, htron)
	}
	h.logger().Debug("hashtron solved",
		zap.String("name", h.Name),
		zap.Int("features", len(d)),
		zap.Int("program", len(program)))
	return htron, nil
}

// nextPrime returns the smallest prime not below n, capped to the uint32 hash range.
func nextPrime(n uint64) uint32 {
	const limit = 1 << 31
	if n < 2 {
		n = 2
	}
	if n >= limit {
		return limit
	}
	pg := primegen.New()
	pg.SkipTo(n)
	p := pg.Next()
	if p >= limit {
		return limit
	}
	return uint32(p)
}

// Reducing shrinks the two feature sets with salted hashes that never map a
// false feature and a true feature to the same value, then finishes with a
// modulo 2 salt that separates what remains. The alphabet is mutated.
func (h *HyperParameters) Reducing(alphabet [2][]uint32) (program [][2]uint32, xor bool, err error) {
	h.defaults()
	if len(alphabet[0]) == 0 || len(alphabet[1]) == 0 {
		return nil, false, errors.New("learning: both classes need at least one feature")
	}
	if h.Shuffle {
		for i := range alphabet {
			a := alphabet[i]
			normal_rand.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
		}
	}
	var maxx uint32
	var center uint32
	for step := 0; step < h.MaxSteps; step++ {
		n0, n1 := len(alphabet[0]), len(alphabet[1])
		if n0+n1 <= h.FinalSize {
			if salt, inverted, ok := h.finish(alphabet, center); ok {
				return append(program, [2]uint32{salt, 2}), inverted, nil
			}
		}
		target := uint64(n0) * uint64(n1) / uint64(h.Factor)
		if target < uint64(n0+n1) {
			target = uint64(n0 + n1)
		}
		if maxx == 0 || uint64(maxx) > target {
			maxx = nextPrime(target)
		}
		for {
			salt, ok := h.reduce(alphabet, center, maxx)
			if ok {
				center = salt
				program = append(program, [2]uint32{salt, maxx})
				before := n0 + n1
				alphabet = apply(alphabet, salt, maxx)
				if len(alphabet[0])+len(alphabet[1]) == before {
					// no feature merged: tighten the modulus next time
					maxx = nextPrime(uint64(maxx) * 3 / 4)
				}
				break
			}
			h.logger().Debug("reduction stuck, growing modulus",
				zap.String("name", h.Name),
				zap.Uint32("modulus", maxx),
				zap.Int("features", n0+n1))
			maxx = nextPrime(uint64(maxx)*3/2 + 1)
		}
	}
	return nil, false, ErrNotConverged
}

// apply hashes both sets with salt and modulus, dropping duplicates.
func apply(alphabet [2][]uint32, salt, maxx uint32) (o [2][]uint32) {
	for j := range alphabet {
		seen := make(map[uint32]struct{}, len(alphabet[j]))
		for _, v := range alphabet[j] {
			w := hash.Hash(v, salt, maxx)
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				o[j] = append(o[j], w)
			}
		}
	}
	return
}

// reduce searches a salt under which no false feature collides with a true one.
func (h *HyperParameters) reduce(alphabet [2][]uint32, center, maxx uint32) (win uint32, found bool) {
	var mut sync.Mutex
	par := hash.HashVectorizedParallelism()
	parallel.Loop(h.Threads).LoopUntil(func(nonce uint32, ender parallel.LoopStopper) bool {
		if nonce >= h.DeadlineTries {
			return true
		}
		salt := center ^ (nonce + 1)

		var vals = make([]uint32, par)
		var salts = make([]uint32, par)
		var outs = make([]uint32, par)
		for i := range salts {
			salts[i] = salt
		}
		marks := make(map[uint32]uint8, len(alphabet[0])+len(alphabet[1]))
		for j := 0; j < 2; j++ {
			mark := uint8(1 << j)
			a := alphabet[j]
			for i := 0; i < len(a); i += par {
				if ender.Load() {
					return false
				}
				k := copy(vals, a[i:])
				hash.HashVectorized(outs[:k], vals[:k], salts[:k], maxx)
				for _, w := range outs[:k] {
					marks[w] |= mark
					if marks[w] == 3 {
						return false
					}
				}
			}
		}
		mut.Lock()
		defer mut.Unlock()
		if !found {
			win, found = salt, true
		}
		return true
	})
	return
}

// finish searches a modulo 2 salt mapping every false feature to one parity
// and every true feature to the other.
func (h *HyperParameters) finish(alphabet [2][]uint32, center uint32) (win uint32, inverted, found bool) {
	var mut sync.Mutex
	limit := h.DeadlineTries << 6
	parallel.Loop(h.Threads).LoopUntil(func(nonce uint32, ender parallel.LoopStopper) bool {
		if nonce >= limit {
			return true
		}
		salt := center ^ (nonce + 1)
		want := hash.Hash(alphabet[0][0], salt, 2)
		for j := 0; j < 2; j++ {
			for _, v := range alphabet[j] {
				if hash.Hash(v, salt, 2) != want^uint32(j) {
					return false
				}
			}
		}
		mut.Lock()
		defer mut.Unlock()
		if !found {
			win, inverted, found = salt, want == 1, true
		}
		return true
	})
	return
}
