package trainer

import (
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neurlang/concrete/datasets/images"
	"github.com/neurlang/concrete/errs"
	"github.com/neurlang/concrete/learning"
	"github.com/neurlang/concrete/parallel"
)

// Fit trains a network of opts.Arch on the rows of train.
func Fit(train *images.Table, opts Options) (*Model, error) {
	if train == nil {
		return nil, errs.Data("no training set")
	}
	opts.defaults()
	if err := opts.validate(train); err != nil {
		return nil, err
	}
	if opts.Seed != 0 {
		rand.Seed(opts.Seed)
	}
	classes := train.Classes()
	net, err := opts.Arch.Build(OutBits(classes))
	if err != nil {
		return nil, err
	}
	m := &Model{
		net:   net,
		arch:  opts.Arch,
		vocab: train.Vocabulary(),
		runID: uuid.New().String(),
	}
	logger := opts.Logger.With(zap.String("run", m.runID))
	logger.Info("training",
		zap.Stringer("arch", opts.Arch),
		zap.Int("classes", classes),
		zap.Int("hashtrons", net.Len()),
		zap.Int("threads", opts.Threads))

	size := opts.Arch.GridSize()
	trainSet, err := bottlenecks(train, size, opts.Threads, opts.Cache,
		opts.ReuseTrainSetBottleneckCachedValues, logger, "train")
	if err != nil {
		return nil, err
	}
	validationSet, err := bottlenecks(opts.ValidationSet, size, opts.Threads, opts.Cache,
		opts.ReuseValidationSetBottleneckCachedValues, logger, "validation")
	if err != nil {
		return nil, err
	}

	h := &learning.HyperParameters{
		Threads: opts.Threads,
		Shuffle: true,
		Memo:    learning.NewMemo(),
		Name:    m.runID,
	}
	h.SetLogger(logger)

	moves := parallel.NewMoveSet()
	current := evaluate(net, trainSet, classes, opts.Threads)
	for epoch := 1; epoch <= opts.Epochs; epoch++ {
		start := current.state
		for _, worst := range net.Shuffle(true) {
			if current.correct == len(trainSet) {
				break
			}
			level := byte(100 * current.correct / len(trainSet))
			if moves.Exists(current.state, worst, level) {
				continue
			}
			moves.Insert(current.state, worst, level)
			undo := trainWorst(net, worst, trainSet, classes, opts.Threads, h, logger)
			if undo == nil {
				continue
			}
			next := evaluate(net, trainSet, classes, opts.Threads)
			if next.correct < current.correct {
				undo()
				continue
			}
			current = next
		}

		metrics := Metrics{Epoch: epoch}
		if validationSet != nil {
			v := evaluate(net, validationSet, classes, opts.Threads)
			metrics.Accuracy = v.accuracy(len(validationSet))
			metrics.Loss = v.meanLoss(len(validationSet))
			metrics.Samples = len(validationSet)
			metrics.Dataset = "Validation"
		} else {
			metrics.Accuracy = current.accuracy(len(trainSet))
			metrics.Loss = current.meanLoss(len(trainSet))
			metrics.Samples = len(trainSet)
			metrics.Dataset = "Train"
		}
		if opts.TestOnTrainSet {
			metrics.TrainAccuracy = current.accuracy(len(trainSet))
		}
		logger.Info("epoch",
			zap.Int("epoch", epoch),
			zap.Float64("loss", metrics.Loss),
			zap.Float64("accuracy", metrics.Accuracy),
			zap.Int("trained", current.correct),
			zap.Int("memo", h.Memo.Len()))
		if opts.MetricsCallback != nil {
			opts.MetricsCallback(metrics)
		}

		if current.correct == len(trainSet) {
			logger.Info("training set learned", zap.Int("epoch", epoch))
			break
		}
		if current.state == start {
			logger.Info("training stuck, stopping", zap.Int("epoch", epoch))
			break
		}
	}
	return m, nil
}
