package majpool2d

// Put sets the n-th bool directly.
func (s *MajPool2D) Put(n int, v bool) {
	s.vec[n] = v
}

// block returns the block index of input n.
func (s *MajPool2D) block(n int) int {
	stride := s.width * s.subwidth
	x, y := n%stride, n/stride
	return (y/s.subheight)*s.width + x/s.subwidth
}

// count returns the number of true cells in block b, leaving out cell skip.
func (s *MajPool2D) count(b, skip int) (w int) {
	stride := s.width * s.subwidth
	x0 := (b % s.width) * s.subwidth
	y0 := (b / s.width) * s.subheight
	for i := 0; i < s.subheight; i++ {
		for j := 0; j < s.subwidth; j++ {
			n := stride*(y0+i) + x0 + j
			if n != skip && s.vec[n] {
				w++
			}
		}
	}
	return
}

// Disregard tells whether the value at position n cannot flip the majority of its block.
func (s *MajPool2D) Disregard(n int) bool {
	return s.count(s.block(n), n) != s.subwidth*s.subheight/2
}

// Feature returns the pooled bitmap, block b in bit b. A block is true when
// more than half of its cells are true. Every n reads the same bitmap.
func (s *MajPool2D) Feature(n int) (o uint32) {
	half := s.subwidth * s.subheight / 2
	for b := 0; b < s.width*s.height; b++ {
		if s.count(b, -1) > half {
			o |= 1 << b
		}
	}
	return
}
