package trainer

import (
	"math/bits"

	"github.com/neurlang/concrete/errs"
	"github.com/neurlang/concrete/layer/conv2d"
	"github.com/neurlang/concrete/layer/full"
	"github.com/neurlang/concrete/layer/majpool2d"
	"github.com/neurlang/concrete/net/feedforward"
)

// Architecture identifies a network layout.
type Architecture int

const (
	// Shallow reads a 6x6 grid through one hidden layer of 25 hashtrons.
	Shallow Architecture = iota
	// Conv2D reads a 16x16 grid, convolves 3x3 blocks of the first layer
	// and feeds 25 block hashtrons into the output layer.
	Conv2D
	// Conv2DMajPool reads a 17x17 grid, convolves 2x2 blocks and majority
	// pools the second layer down to a 4x4 bitmap.
	Conv2DMajPool
)

var archNames = map[Architecture]string{
	Shallow:       "shallow",
	Conv2D:        "conv2d",
	Conv2DMajPool: "conv2d-majpool",
}

func (a Architecture) String() string {
	if name, ok := archNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseArchitecture maps a name printed by String back to the architecture.
func ParseArchitecture(name string) (Architecture, error) {
	for a, n := range archNames {
		if n == name {
			return a, nil
		}
	}
	return 0, errs.Data("unknown architecture %q", name)
}

// GridSize is the side of the pixel grid the first layer reads.
func (a Architecture) GridSize() int {
	switch a {
	case Shallow:
		return 6
	case Conv2DMajPool:
		return 17
	default:
		return 16
	}
}

// OutBits is the number of output hashtrons needed to tell classes apart.
func OutBits(classes int) int {
	if classes <= 2 {
		return 1
	}
	return bits.Len32(uint32(classes - 1))
}

// Build lays out a fresh network with outBits output hashtrons.
func (a Architecture) Build(outBits int) (*feedforward.FeedforwardNetwork, error) {
	if outBits < 1 || outBits > 32 {
		return nil, errs.Data("%d output bits", outBits)
	}
	var net feedforward.FeedforwardNetwork
	switch a {
	case Shallow:
		net.NewLayer(25)
		net.NewCombiner(full.MustNew(25, 0, 25))
		net.NewLayer(outBits)
	case Conv2D:
		net.NewLayer(225)
		net.NewCombiner(conv2d.MustNew(15, 15, 3, 3, 3))
		net.NewLayer(25)
		net.NewCombiner(full.MustNew(25, 0, 25))
		net.NewLayer(outBits)
	case Conv2DMajPool:
		net.NewLayer(256)
		net.NewCombiner(conv2d.MustNew(16, 16, 2, 2, 2))
		net.NewLayer(64)
		net.NewCombiner(majpool2d.MustNew(4, 4, 2, 2))
		net.NewLayer(outBits)
	default:
		return nil, errs.Data("unknown architecture %d", int(a))
	}
	return &net, nil
}
