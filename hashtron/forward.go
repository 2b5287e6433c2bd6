package hashtron

import "github.com/neurlang/concrete/hash"

// Forward runs the hashtron program on the input feature.
func (h Hashtron) Forward(command uint32) bool {
	if h.Len() == 0 {
		return false
	}
	var input = command
	for i := range h.program {
		input = hash.Hash(input, h.program[i][0], h.program[i][1])
	}
	return (input&1 != 0) != h.xor
}
