// Package layer defines the combiner and layer interfaces placed between two hashtron layers.
package layer

// Combiner collects the output bits of one hashtron layer and combines them
// into the input features of the next.
type Combiner interface {

	// Put inserts a boolean at position n.
	Put(n int, v bool)

	// Feature returns the n-th feature from the combiner. Next layer reads
	// its inputs using this method for hashtron n in the next layer.
	Feature(n int) (o uint32)

	// Disregard tells whether putting value false at position n would not affect
	// any feature output (as opposed to putting value true at position n).
	// Training skips such samples because the next layer sees the same thing
	// regardless of what we put.
	Disregard(n int) bool
}
