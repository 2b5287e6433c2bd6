// Package feedforward implements a feedforward network type
package feedforward

import "math/bits"

import "github.com/neurlang/concrete/datasets"
import "github.com/neurlang/concrete/hash"
import "github.com/neurlang/concrete/hashtron"
import "github.com/neurlang/concrete/layer"

// Intermediate is an intermediate value used as both layer input and layer output in optimization
type Intermediate interface {

	// Feature extracts n-th feature from Intermediate
	Feature(n int) uint32

	// Disregard reports whether Intermediate doesn't regard n-th bit as affecting the output
	Disregard(n int) bool
}

// SingleValue is the value returned by the final layer, hashtron i in bit i.
type SingleValue uint32

// Feature extracts the feature from SingleValue
func (v SingleValue) Feature(n int) uint32 {
	return uint32(v)
}

// Disregard reports whether SingleValue doesn't regard n-th bit as affecting the output
func (v SingleValue) Disregard(n int) bool {
	return false
}

// FeedforwardNetworkInput is one individual input to the feedforward network
type FeedforwardNetworkInput interface {
	Feature(n int) uint32
}

// FeedforwardNetwork is the feedforward network. Hashtron layers sit at
// even positions, the combiner reading a hashtron layer follows it.
type FeedforwardNetwork struct {
	layers    [][]hashtron.Hashtron
	combiners []layer.Layer
	premodulo []uint32
}

// Len returns the number of hashtrons which need to be trained inside the network.
func (f FeedforwardNetwork) Len() (o int) {
	for _, v := range f.layers {
		o += len(v)
	}
	return
}

// LenLayers returns the number of layers. Each Layer and Combiner counts as a layer here.
func (f FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetLayer gets the layer number of hashtron based on hashtron number. Returns -1 on failure.
func (f FeedforwardNetwork) GetLayer(n int) int {
	for i, v := range f.layers {
		if n < len(v) {
			return i
		}
		n -= len(v)
	}
	return -1
}

// GetPosition gets the position of hashtron within layer based on the overall
// hashtron number. Returns -1 on failure.
func (f FeedforwardNetwork) GetPosition(n int) int {
	for _, v := range f.layers {
		if n < len(v) {
			return n
		}
		n -= len(v)
	}
	return -1
}

// GetHashtron gets n-th hashtron pointer in the network. Training writes
// the replacement hashtron through it.
func (f FeedforwardNetwork) GetHashtron(n int) *hashtron.Hashtron {
	for _, v := range f.layers {
		if n < len(v) {
			return &v[n]
		}
		n -= len(v)
	}
	return nil
}

// NewLayer adds a hashtron layer to the end of network with n hashtrons.
func (f *FeedforwardNetwork) NewLayer(n int) {
	f.NewLayerP(n, 0)
}

// NewLayerP adds a hashtron layer to the end of network with n hashtrons, and input feature pre-modulo.
func (f *FeedforwardNetwork) NewLayerP(n int, premodulo uint32) {
	var layer = make([]hashtron.Hashtron, n)
	for i := range layer {
		h, _ := hashtron.New(nil, false)
		layer[i] = *h
	}
	f.layers = append(f.layers, layer)
	f.combiners = append(f.combiners, nil)
	f.premodulo = append(f.premodulo, premodulo)
}

// NewCombiner adds a combiner layer to the end of network
func (f *FeedforwardNetwork) NewCombiner(layer layer.Layer) {
	f.layers = append(f.layers, nil)
	f.combiners = append(f.combiners, layer)
	f.premodulo = append(f.premodulo, 0)
}

// GetBits reports the number of output bits, one per hashtron of the final layer.
func (f FeedforwardNetwork) GetBits() int {
	if len(f.layers) == 0 {
		return 0
	}
	return len(f.layers[len(f.layers)-1])
}

// feature reads the input of hashtron i in layer l.
func (f FeedforwardNetwork) feature(in FeedforwardNetworkInput, l, i int) uint32 {
	var feat = in.Feature(i)
	if f.premodulo[l] != 0 {
		feat = hash.Hash(feat, uint32(i), f.premodulo[l])
	}
	return feat
}

// Forward solves the intermediate value (net output after layer l based on that layer's input in) and the bit
// returned by worst hashtron is optionally negated (using neg == 1) and returned as computed.
func (f FeedforwardNetwork) Forward(in FeedforwardNetworkInput, l, worst, neg int) (inter Intermediate, computed bool) {
	if len(f.combiners) > l+1 && f.combiners[l+1] != nil {
		var combiner = f.combiners[l+1].Lay()
		for i := range f.layers[l] {
			var bit = f.layers[l][i].Forward(f.feature(in, l, i))
			if i == worst {
				bit = bit != (neg == 1)
				computed = bit
			}
			combiner.Put(i, bit)
		}
		return combiner, computed
	}
	var val uint32
	for i := range f.layers[l] {
		var bit = f.layers[l][i].Forward(f.feature(in, l, i))
		if i == worst {
			bit = bit != (neg == 1)
			computed = bit
		}
		if bit {
			val |= 1 << i
		}
	}
	return SingleValue(val), computed
}

// Infer infers the network output based on input, after being trained by using Tally.
func (f FeedforwardNetwork) Infer(in FeedforwardNetworkInput) uint32 {
	for l := 0; l < f.LenLayers(); l += 2 {
		in, _ = f.Forward(in, l, -1, 0)
	}
	return in.Feature(0)
}

// BitLoss counts the output bits differing from the expected value.
func BitLoss(actual, expected uint32) uint32 {
	return uint32(bits.OnesCount32(actual ^ expected))
}

// Tally tallies the network on input/output pair with respect to to-be-trained worst hashtron.
// The tally is stored into thread safe structure Tally. Loss is 0 for a correct
// output, lower for a better one; nil means BitLoss.
func (f FeedforwardNetwork) Tally(in FeedforwardNetworkInput, output uint32, worst int, tally *datasets.Tally,
	loss func(actual, expected uint32) uint32) {
	if loss == nil {
		loss = BitLoss
	}
	l := f.GetLayer(worst)
	if l < 0 {
		return
	}
	pos := f.GetPosition(worst)
	for l_prev := 0; l_prev < l; l_prev += 2 {
		in, _ = f.Forward(in, l_prev, -1, 0)
	}
	ifw := f.feature(in, l, pos)

	var predicted [2]uint32
	var compute [2]int8
	for neg := 0; neg < 2; neg++ {
		inter, computed := f.Forward(in, l, pos, neg)
		if computed {
			compute[neg] = 1
		} else {
			compute[neg] = -1
		}
		if neg == 0 && inter.Disregard(pos) {
			return
		}
		for l_post := l + 2; l_post < f.LenLayers(); l_post += 2 {
			inter, _ = f.Forward(inter, l_post, -1, 0)
		}
		predicted[neg] = inter.Feature(0)
	}
	loss0, loss1 := loss(predicted[0], output), loss(predicted[1], output)
	switch {
	case loss0 == 0 && loss1 == 0:
		// we are correct anyway
	case loss0 == 0:
		tally.AddToCorrect(ifw, compute[0], false)
	case loss1 == 0:
		tally.AddToCorrect(ifw, compute[1], true)
	case loss0 < loss1:
		tally.AddToImprove(ifw, compute[0], false)
	case loss1 < loss0:
		// shift towards better
		tally.AddToImprove(ifw, compute[1], true)
	}
}
