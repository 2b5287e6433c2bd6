// Package hashtron implements a hashtron, the binary classifier cell of the network.
//
// A hashtron is a short program of salted modular hashes. The input feature
// is hashed by every command in turn and the lowest bit of the final value,
// optionally inverted, is the output.
package hashtron

// Hashtron represents individual hashtron (classifier) in memory
type Hashtron struct {
	program [][2]uint32
	xor     bool
}

// Get gets the hashing command at position n
func (h Hashtron) Get(n int) (s uint32, max uint32) {
	return h.program[n][0], h.program[n][1]
}

// Len gets the number of hashing commands (size of hashtron program)
func (h Hashtron) Len() int {
	return len(h.program)
}

// Xor reports 1 when the output bit is inverted.
func (h Hashtron) Xor() uint32 {
	if h.xor {
		return 1
	}
	return 0
}
