package learning

import "go.uber.org/zap"

// SetLogger sets the logger that receives solution sizes and stuck rounds.
func (h *HyperParameters) SetLogger(l *zap.Logger) {
	h.l = l
}

func (h *HyperParameters) logger() *zap.Logger {
	if h.l == nil {
		return zap.NewNop()
	}
	return h.l
}

// HyperParameters drive the search for a hashtron program.
type HyperParameters struct {
	Threads int // number of threads for learning

	Shuffle bool // whether to shuffle the alphabet before reducing
	Seed    bool // seed prng using true rng

	// Factor is how hard to try to come up with a shorter program (default: 4).
	// The modulus of every reduction step is the product of the set sizes
	// divided by Factor, so a bigger Factor merges more features per step.
	Factor uint32

	// DeadlineTries is how many salts a reduction step tries before the
	// modulus is grown (default: 1<<14).
	DeadlineTries uint32

	// FinalSize is the feature count below which the final modulo 2 salt is
	// searched directly (default: 12).
	FinalSize int

	// MaxSteps bounds the program length (default: 1<<14).
	MaxSteps int

	// Memo, when set, reuses programs learned for an identical dataset.
	Memo *Memo

	Name string // name used in log lines

	l *zap.Logger
}

func (h *HyperParameters) defaults() {
	if h.Threads < 1 {
		h.Threads = 1
	}
	if h.Factor == 0 {
		h.Factor = 4
	}
	if h.DeadlineTries == 0 {
		h.DeadlineTries = 1 << 14
	}
	if h.FinalSize <= 1 {
		h.FinalSize = 12
	}
	if h.MaxSteps <= 0 {
		h.MaxSteps = 1 << 14
	}
}
