// Package datasets implements the vote dataset a hashtron is learned from,
// and the tally collecting those votes during training.
package datasets

// Dataset maps an input feature to the bit the hashtron should output for it.
type Dataset map[uint32]bool

func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}

// SplittedDataset holds the false features at index 0 and the true features at index 1.
type SplittedDataset [2]map[uint32]struct{}

// Split splits dataset into a false set and a true set
func (d Dataset) Split() (o SplittedDataset) {
	o[0] = make(map[uint32]struct{})
	o[1] = make(map[uint32]struct{})
	for k, v := range d {
		if v {
			o[1][k] = struct{}{}
		} else {
			o[0][k] = struct{}{}
		}
	}
	return
}

// Alphabet lists the features of both sets as slices.
func (d SplittedDataset) Alphabet() (o [2][]uint32) {
	for i := range d {
		o[i] = make([]uint32, 0, len(d[i]))
		for v := range d[i] {
			o[i] = append(o[i], v)
		}
	}
	return
}
