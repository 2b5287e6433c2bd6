package trainer

import (
	"sync/atomic"

	"github.com/neurlang/concrete/net/feedforward"
	"github.com/neurlang/concrete/parallel"
)

// keyLoss is 0 when actual names the expected class, otherwise the number
// of wrong output bits, at least 1.
func keyLoss(classes int) func(actual, expected uint32) uint32 {
	return func(actual, expected uint32) uint32 {
		if actual%uint32(classes) == expected {
			return 0
		}
		if l := feedforward.BitLoss(actual, expected); l > 0 {
			return l
		}
		return 1
	}
}

// evaluation is the result of running the network over a partition.
type evaluation struct {
	correct int
	loss    uint64
	state   [32]byte
}

func (e evaluation) accuracy(n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(e.correct) / float64(n)
}

func (e evaluation) meanLoss(n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(e.loss) / float64(n)
}

// evaluate infers every sample, the state fingerprint covers each prediction.
func evaluate(net *feedforward.FeedforwardNetwork, samples []sample, classes, threads int) (e evaluation) {
	loss := keyLoss(classes)
	h := parallel.NewUint16Hasher(len(samples))
	var correct, lossSum atomic.Uint64
	parallel.ForEach(len(samples), threads, func(i int) {
		predicted := net.Infer(samples[i].grid)
		h.MustPutUint16(i, uint16(predicted))
		l := loss(predicted, samples[i].key)
		if l == 0 {
			correct.Add(1)
		}
		lossSum.Add(uint64(l))
	})
	e.correct = int(correct.Load())
	e.loss = lossSum.Load()
	e.state = h.Sum()
	return
}
