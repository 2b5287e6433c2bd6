package hashtron

import "errors"
import "math/rand"

// New creates a hashtron from program. A nil program yields a random
// untrained hashtron of a single modulo 2 command.
func New(program [][2]uint32, xor bool) (h *Hashtron, err error) {
	h = new(Hashtron)
	if program == nil {
		h.program = [][2]uint32{{rand.Uint32() >> 1, 2}}
		h.xor = xor
		return
	}
	if len(program) == 0 {
		return nil, errors.New("new hashtron: empty program")
	}
	for i, cmd := range program {
		if cmd[1] == 0 {
			return nil, errors.New("new hashtron: zero modulus in command " + string(intToBuf(uint32(i))))
		}
	}
	h.program = append([][2]uint32(nil), program...)
	h.xor = xor
	return
}

// Constant creates a hashtron returning value for every input.
func Constant(value bool) *Hashtron {
	return &Hashtron{
		program: [][2]uint32{{0, 1}},
		xor:     value,
	}
}

// intToBuf converts integer into a buffer
func intToBuf(n uint32) (buf []byte) {
	var buffer [10]byte
	buf = buffer[:]
	for i := range buf {
		buf[9-i] = byte(n%10) + '0'
		n /= 10
	}
	for len(buf) > 1 && buf[0] == '0' {
		buf = buf[1:]
	}
	return
}
