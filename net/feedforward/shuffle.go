package feedforward

import "math/rand"

// Shuffle returns the hashtron numbers in layer order, shuffled within each
// layer. With reverse the final layer comes first.
func (f FeedforwardNetwork) Shuffle(reverse bool) (o []int) {
	o = make([]int, f.Len())
	for i := range o {
		o[i] = i
	}
	var base = 0
	for i := range f.layers {
		part := o[base : base+len(f.layers[i])]
		rand.Shuffle(len(part), func(i, j int) { part[i], part[j] = part[j], part[i] })
		base += len(f.layers[i])
	}
	if reverse {
		for i := 0; 2*i < len(o); i++ {
			o[i], o[len(o)-i-1] = o[len(o)-i-1], o[i]
		}
	}
	return o
}
