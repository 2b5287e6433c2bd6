package trainer

import (
	"github.com/neurlang/concrete/datasets/images"
	"github.com/neurlang/concrete/net/feedforward"
)

// Model is a trained network with its label vocabulary. It is never
// modified after Fit or Load return it, so it is safe for concurrent use.
type Model struct {
	net   *feedforward.FeedforwardNetwork
	arch  Architecture
	vocab []string
	runID string
}

// Arch is the layout of the network.
func (m *Model) Arch() Architecture {
	return m.arch
}

// RunID identifies the training run that produced the model.
func (m *Model) RunID() string {
	return m.runID
}

// Vocabulary returns the labels indexed by key.
func (m *Model) Vocabulary() []string {
	return append([]string(nil), m.vocab...)
}

// Classes is the number of labels.
func (m *Model) Classes() int {
	return len(m.vocab)
}

// GridSize is the side of the pixel grid the model reads.
func (m *Model) GridSize() int {
	return m.arch.GridSize()
}

// Classify returns the predicted key of a grid.
func (m *Model) Classify(g *images.Grid) uint32 {
	return m.net.Infer(g) % uint32(len(m.vocab))
}

// Label returns the label of key.
func (m *Model) Label(key uint32) string {
	return m.vocab[key]
}
