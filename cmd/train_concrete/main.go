package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/neurlang/concrete/cache"
	"github.com/neurlang/concrete/config"
	"github.com/neurlang/concrete/datasets/images"
	"github.com/neurlang/concrete/hash"
	"github.com/neurlang/concrete/inference"
	"github.com/neurlang/concrete/trainer"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()
	logger.Info("starting",
		zap.String("cpu", hash.CPU()),
		zap.Int("hash_lanes", hash.HashVectorizedParallelism()))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	arch, err := trainer.ParseArchitecture(cfg.Train.Arch)
	if err != nil {
		return err
	}
	corpus, err := images.Scan(cfg.Corpus.Root, cfg.Corpus.UseParentDirAsLabel, images.WithLogger(logger))
	if err != nil {
		return err
	}
	loaded, err := images.Load(corpus.All())
	if err != nil {
		return err
	}

	logger.Info("preprocessing", zap.Int("images", loaded.Len()))
	data, err := loaded.Shuffle(cfg.Split.Seed).MapValueToKey().LoadRawImageBytes()
	if err != nil {
		return err
	}
	train, rest, err := data.TrainTestSplit(cfg.Split.TestFraction)
	if err != nil {
		return err
	}
	validation, test, err := rest.TrainTestSplit(cfg.Split.ValidationFraction)
	if err != nil {
		return err
	}
	logger.Info("split",
		zap.Int("train", train.Len()),
		zap.Int("validation", validation.Len()),
		zap.Int("test", test.Len()),
		zap.Strings("labels", data.Vocabulary()))

	var bottlenecks *cache.Cache
	if cfg.Cache.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
			return err
		}
		bottlenecks, err = cache.Open(cfg.Cache.Path, logger)
		if err != nil {
			return err
		}
		defer bottlenecks.Close()
	}

	model, err := trainer.Fit(train, trainer.Options{
		FeatureColumnName: images.ColumnImage,
		LabelColumnName:   images.ColumnLabelAsKey,
		ValidationSet:     validation,
		Arch:              arch,
		MetricsCallback: func(m trainer.Metrics) {
			fmt.Println(m)
		},
		TestOnTrainSet:                           cfg.Train.TestOnTrainSet,
		ReuseTrainSetBottleneckCachedValues:      cfg.Train.ReuseTrainSetBottleneckCachedValues,
		ReuseValidationSetBottleneckCachedValues: cfg.Train.ReuseValidationSetBottleneckCachedValues,
		Epochs:                                   cfg.Train.Epochs,
		Threads:                                  cfg.Train.Threads,
		Seed:                                     cfg.Split.Seed,
		Cache:                                    bottlenecks,
		Logger:                                   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("saving the model", zap.String("path", cfg.Model.Path))
	if err := trainer.Save(model, cfg.Model.Path); err != nil {
		return err
	}

	logger.Info("classifying single image")
	out, err := inference.Predict(model, test.Row(0))
	if err != nil {
		return err
	}
	return inference.OutputPrediction(os.Stdout, out)
}
