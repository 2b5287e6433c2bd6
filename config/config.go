// Package config holds the settings of a training run.
package config

import (
	"flag"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neurlang/concrete/errs"
	"github.com/neurlang/concrete/trainer"
)

// Config holds application configuration
type Config struct {
	Corpus struct {
		Root                string `yaml:"root"`
		UseParentDirAsLabel bool   `yaml:"use_parent_dir_as_label"`
	} `yaml:"corpus"`

	Split struct {
		TestFraction       float64 `yaml:"test_fraction"`
		ValidationFraction float64 `yaml:"validation_fraction"` // of the test partition
		Seed               int64   `yaml:"seed"`
	} `yaml:"split"`

	Train struct {
		Arch                                     string `yaml:"arch"`
		Epochs                                   int    `yaml:"epochs"`
		Threads                                  int    `yaml:"threads"`
		TestOnTrainSet                           bool   `yaml:"test_on_train_set"`
		ReuseTrainSetBottleneckCachedValues      bool   `yaml:"reuse_train_set_bottleneck_cached_values"`
		ReuseValidationSetBottleneckCachedValues bool   `yaml:"reuse_validation_set_bottleneck_cached_values"`
	} `yaml:"train"`

	Model struct {
		Path string `yaml:"path"`
	} `yaml:"model"`

	Cache struct {
		Path string `yaml:"path"` // empty disables the bottleneck cache
	} `yaml:"cache"`

	Log struct {
		JSON  bool   `yaml:"json"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	c := &Config{}
	c.Corpus.Root = "assets/D"
	c.Corpus.UseParentDirAsLabel = true
	c.Split.TestFraction = 0.3
	c.Split.ValidationFraction = 0.5
	c.Split.Seed = 1
	c.Train.Arch = trainer.Conv2D.String()
	c.Train.Epochs = 20
	c.Train.ReuseTrainSetBottleneckCachedValues = true
	c.Train.ReuseValidationSetBottleneckCachedValues = true
	c.Model.Path = "./model/model.json.zlib"
	c.Cache.Path = "./model/bottlenecks.db"
	c.Log.Level = "info"
	return c
}

// LoadConfig loads configuration from YAML file, keys missing from the
// file keep their default.
func LoadConfig(configPath string) (*Config, error) {
	c := Default()
	if err := c.decodeFile(configPath); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

func (c *Config) decodeFile(configPath string) error {
	file, err := os.Open(configPath)
	if os.IsNotExist(err) {
		return errs.NotFound(err, "config file %q", configPath)
	}
	if err != nil {
		return errs.IO(err, "opening config file %q", configPath)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return errs.Data("decoding config file %q: %v", configPath, err)
	}
	return nil
}

// BindFlags registers a flag for every setting, writing into c.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Corpus.Root, "root", c.Corpus.Root, "directory tree of .jpg and .png images")
	fs.BoolVar(&c.Corpus.UseParentDirAsLabel, "parentlabel", c.Corpus.UseParentDirAsLabel, "label images by their directory instead of their file name")
	fs.Float64Var(&c.Split.TestFraction, "test", c.Split.TestFraction, "fraction of images held out from training")
	fs.Float64Var(&c.Split.ValidationFraction, "validation", c.Split.ValidationFraction, "fraction of the held out images used for validation")
	fs.Int64Var(&c.Split.Seed, "seed", c.Split.Seed, "shuffle seed")
	fs.StringVar(&c.Train.Arch, "arch", c.Train.Arch, "network architecture: shallow, conv2d or conv2d-majpool")
	fs.IntVar(&c.Train.Epochs, "epochs", c.Train.Epochs, "maximum training epochs")
	fs.IntVar(&c.Train.Threads, "threads", c.Train.Threads, "training goroutines, 0 for one per CPU")
	fs.BoolVar(&c.Train.TestOnTrainSet, "testontrain", c.Train.TestOnTrainSet, "report training set accuracy every epoch")
	fs.BoolVar(&c.Train.ReuseTrainSetBottleneckCachedValues, "reusetrain", c.Train.ReuseTrainSetBottleneckCachedValues, "read cached pixel grids of the training set")
	fs.BoolVar(&c.Train.ReuseValidationSetBottleneckCachedValues, "reusevalidation", c.Train.ReuseValidationSetBottleneckCachedValues, "read cached pixel grids of the validation set")
	fs.StringVar(&c.Model.Path, "model", c.Model.Path, "model artifact path")
	fs.StringVar(&c.Cache.Path, "cache", c.Cache.Path, "bottleneck cache database, empty to disable")
	fs.BoolVar(&c.Log.JSON, "json", c.Log.JSON, "log JSON lines")
	fs.StringVar(&c.Log.Level, "loglevel", c.Log.Level, "log level")
}

// Parse applies defaults, then the YAML file named by -config, then the
// other flags given in args.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	c := Default()
	configPath := fs.String("config", "", "YAML configuration file")
	c.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, errs.Data("parsing flags: %v", err)
	}
	if *configPath != "" {
		if err := c.decodeFile(*configPath); err != nil {
			return nil, err
		}
		// flags win over the file
		if err := fs.Parse(args); err != nil {
			return nil, errs.Data("parsing flags: %v", err)
		}
	}
	return c, c.Validate()
}

// Validate reports the first unusable setting as an ErrData error.
func (c *Config) Validate() error {
	if c.Corpus.Root == "" {
		return errs.Data("corpus root is empty")
	}
	if !(c.Split.TestFraction > 0 && c.Split.TestFraction < 1) {
		return errs.Data("test fraction %v outside (0, 1)", c.Split.TestFraction)
	}
	if !(c.Split.ValidationFraction > 0 && c.Split.ValidationFraction < 1) {
		return errs.Data("validation fraction %v outside (0, 1)", c.Split.ValidationFraction)
	}
	if _, err := trainer.ParseArchitecture(c.Train.Arch); err != nil {
		return err
	}
	if c.Train.Epochs < 1 {
		return errs.Data("epochs %d below 1", c.Train.Epochs)
	}
	if c.Train.Threads < 0 {
		return errs.Data("threads %d below 0", c.Train.Threads)
	}
	if c.Model.Path == "" {
		return errs.Data("model path is empty")
	}
	return nil
}
