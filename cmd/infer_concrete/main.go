package main

import (
	"flag"
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/neurlang/concrete/datasets/images"
	"github.com/neurlang/concrete/inference"
	"github.com/neurlang/concrete/parallel"
	"github.com/neurlang/concrete/trainer"
)

func main() {
	modelPath := flag.String("model", "./model/model.json.zlib", "model artifact path")
	root := flag.String("root", "assets/D", "directory tree of .jpg and .png images")
	parentLabel := flag.Bool("parentlabel", true, "label images by their directory instead of their file name")
	threads := flag.Int("threads", 8, "concurrent predictions")
	jsonLog := flag.Bool("json", false, "log JSON lines")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if *jsonLog {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	model, err := trainer.Load(*modelPath)
	if err != nil {
		logger.Fatal("loading model", zap.Error(err))
	}
	logger.Info("model loaded",
		zap.String("run", model.RunID()),
		zap.Stringer("arch", model.Arch()),
		zap.Strings("labels", model.Vocabulary()))

	corpus, err := images.Scan(*root, *parentLabel, images.WithLogger(logger))
	if err != nil {
		logger.Fatal("scanning", zap.Error(err))
	}
	recs, err := corpus.Records()
	if err != nil {
		logger.Fatal("scanning", zap.Error(err))
	}

	outputs := make([]images.ModelOutput, len(recs))
	var correct atomic.Int64
	err = parallel.ForEachErr(len(recs), *threads, func(i int) error {
		out, err := inference.Predict(model, images.ModelInput{ImagePath: recs[i].Path, Label: recs[i].Label})
		if err != nil {
			return err
		}
		if out.PredictedLabel == out.Label {
			correct.Add(1)
		}
		outputs[i] = out
		return nil
	})
	if err != nil {
		logger.Fatal("predicting", zap.Error(err))
	}
	for _, out := range outputs {
		if err := inference.OutputPrediction(os.Stdout, out); err != nil {
			logger.Fatal("writing", zap.Error(err))
		}
	}
	if len(recs) > 0 {
		logger.Info("accuracy",
			zap.Int("images", len(recs)),
			zap.Float64("accuracy", float64(correct.Load())/float64(len(recs))))
	}
}
