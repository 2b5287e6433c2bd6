// Package full implements a fully connected layer and combiner
package full

import "fmt"
import "github.com/neurlang/concrete/layer"

// FullLayer hands the next layer maxbits consecutive input bits per
// feature, feature n starting at bit n*bits. With bits 0 every feature
// reads the same leading maxbits bits.
type FullLayer struct {
	size    int
	bits    byte
	maxbits byte
}

type Full struct {
	vec []bool
	*FullLayer
}

// MustNew creates a new full layer with size and bits
func MustNew(size int, bits, maxbits byte) *FullLayer {
	o, err := New(size, bits, maxbits)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new full layer with size and bits
func New(size int, bits, maxbits byte) (o *FullLayer, err error) {
	if size < 1 {
		return nil, fmt.Errorf("New Full: size %d must be positive", size)
	}
	if maxbits < 1 || maxbits > 32 || int(maxbits) > size {
		return nil, fmt.Errorf("New Full: maxbits %d must be between 1 and min(32, %d)", maxbits, size)
	}
	o = new(FullLayer)
	o.size = size
	o.bits = bits
	o.maxbits = maxbits
	return
}

// Inputs is the number of bits the combiner accepts.
func (i *FullLayer) Inputs() int {
	return i.size
}

// Lay turns full layer into a combiner
func (i *FullLayer) Lay() layer.Combiner {
	return &Full{
		vec:       make([]bool, i.size),
		FullLayer: i,
	}
}
