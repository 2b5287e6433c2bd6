package trainer

import (
	"go.uber.org/zap"

	"github.com/neurlang/concrete/datasets"
	"github.com/neurlang/concrete/learning"
	"github.com/neurlang/concrete/net/feedforward"
	"github.com/neurlang/concrete/parallel"
)

// trainWorst relearns hashtron worst from the votes of the samples. It
// returns nil when no sample wants the hashtron to change, otherwise a
// function restoring the previous hashtron.
func trainWorst(net *feedforward.FeedforwardNetwork, worst int, samples []sample, classes, threads int,
	h *learning.HyperParameters, logger *zap.Logger) (undo func()) {
	loss := keyLoss(classes)
	var tally datasets.Tally
	tally.Init()
	defer tally.Free()
	parallel.ForEach(len(samples), threads, func(i int) {
		net.Tally(samples[i].grid, samples[i].key, worst, &tally, loss)
	})
	if !tally.GetImprovementPossible() {
		return nil
	}
	d := tally.Dataset()
	htron, err := h.Training(d)
	if err != nil {
		logger.Warn("hashtron not learned", zap.Int("hashtron", worst), zap.Int("votes", len(d)), zap.Error(err))
		return nil
	}
	ptr := net.GetHashtron(worst)
	backup := *ptr
	*ptr = *htron
	logger.Debug("hashtron learned",
		zap.Int("hashtron", worst),
		zap.Int("layer", net.GetLayer(worst)),
		zap.Int("votes", len(d)),
		zap.Int("program", htron.Len()))
	return func() {
		*ptr = backup
	}
}
