package trainer

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/neurlang/concrete/cache"
	"github.com/neurlang/concrete/datasets/images"
	"github.com/neurlang/concrete/errs"
)

// Metrics is the snapshot handed to MetricsCallback once per epoch.
type Metrics struct {
	Epoch int
	// Loss is the mean count of wrong output bits per evaluated sample.
	Loss float64
	// Accuracy is measured on the validation set, or on the training set
	// when there is none.
	Accuracy float64
	// TrainAccuracy is only set with TestOnTrainSet.
	TrainAccuracy float64
	// Dataset names the partition behind Accuracy and Loss.
	Dataset string
	Samples int
}

// Options configure Fit.
type Options struct {
	FeatureColumnName string // default images.ColumnImage
	LabelColumnName   string // default images.ColumnLabelAsKey

	ValidationSet *images.Table
	Arch          Architecture

	MetricsCallback func(Metrics)
	TestOnTrainSet  bool

	// Reuse grids stored in Cache for the rows of that partition. Decoded
	// grids are written to Cache either way.
	ReuseTrainSetBottleneckCachedValues      bool
	ReuseValidationSetBottleneckCachedValues bool

	Epochs  int   // default 20
	Threads int   // default runtime.NumCPU()
	Seed    int64 // 0 keeps the random state
	Cache   *cache.Cache
	Logger  *zap.Logger
}

func (o *Options) defaults() {
	if o.FeatureColumnName == "" {
		o.FeatureColumnName = images.ColumnImage
	}
	if o.LabelColumnName == "" {
		o.LabelColumnName = images.ColumnLabelAsKey
	}
	if o.Epochs == 0 {
		o.Epochs = 20
	}
	if o.Threads <= 0 {
		o.Threads = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// validate checks the column bindings against the tables.
func (o *Options) validate(train *images.Table) error {
	if o.FeatureColumnName != images.ColumnImage {
		return errs.Data("feature column %q is not an image column", o.FeatureColumnName)
	}
	if o.LabelColumnName != images.ColumnLabelAsKey {
		return errs.Data("label column %q is not a key column", o.LabelColumnName)
	}
	if o.Epochs < 1 {
		return errs.Data("epochs %d below 1", o.Epochs)
	}
	tables := []*images.Table{train}
	if o.ValidationSet != nil {
		tables = append(tables, o.ValidationSet)
	}
	for _, t := range tables {
		for _, c := range []string{o.FeatureColumnName, o.LabelColumnName} {
			if !t.HasColumn(c) {
				return errs.Data("table has no %q column", c)
			}
		}
	}
	if train.Len() == 0 {
		return errs.Data("empty training set")
	}
	if o.ValidationSet != nil && o.ValidationSet.Classes() != train.Classes() {
		return errs.Data("validation set has %d classes, training set %d",
			o.ValidationSet.Classes(), train.Classes())
	}
	return nil
}

// String formats the snapshot as one console line.
func (m Metrics) String() string {
	line := fmt.Sprintf("Phase: Training, Dataset used: %s, Samples: %d, Epoch: %d, Accuracy: %.4f, Loss: %.4f",
		m.Dataset, m.Samples, m.Epoch, m.Accuracy, m.Loss)
	if m.TrainAccuracy != 0 {
		line += fmt.Sprintf(", Train Accuracy: %.4f", m.TrainAccuracy)
	}
	return line
}
