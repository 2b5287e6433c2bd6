package full

// Put inserts a boolean at position n.
func (f *Full) Put(n int, v bool) {
	f.vec[n] = v
}

// Feature returns the n-th feature from the combiner. Next layer reads
// its inputs using this method for hashtron n in the next layer.
func (f *Full) Feature(n int) (o uint32) {
	n *= int(f.bits)
	if n+int(f.maxbits) > len(f.vec) {
		return 0
	}
	for pos := n; pos < n+int(f.maxbits); pos++ {
		o <<= 1
		if f.vec[pos] {
			o |= 1
		}
	}
	return
}

// Disregard reports the bits past maxbits when every feature reads the
// leading bits.
func (f *Full) Disregard(n int) bool {
	return f.bits == 0 && n >= int(f.maxbits)
}
