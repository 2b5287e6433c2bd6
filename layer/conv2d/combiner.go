package conv2d

// Put inserts a boolean at position n.
func (f *Conv2D) Put(n int, v bool) {
	f.vec[n] = v
}

// Feature returns the n-th window packed row by row, the first cell in the
// highest bit.
func (f *Conv2D) Feature(n int) (o uint32) {
	n %= f.Outputs()
	x := (n % f.across()) * f.stride
	y := (n / f.across()) * f.stride
	for i := 0; i < f.subheight; i++ {
		for j := 0; j < f.subwidth; j++ {
			o <<= 1
			if f.vec[f.width*(y+i)+x+j] {
				o |= 1
			}
		}
	}
	return
}

// Disregard reports cells no window covers, which happens when the stride
// is bigger than the window or the grid has leftover columns or rows.
func (f *Conv2D) Disregard(n int) bool {
	x, y := n%f.width, n/f.width
	covered := func(v, sub, count int) bool {
		w := v / f.stride
		if w >= count {
			w = count - 1
		}
		return v-w*f.stride < sub
	}
	return !covered(x, f.subwidth, f.across()) || !covered(y, f.subheight, f.down())
}
