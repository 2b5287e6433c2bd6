package images

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"unicode"

	"go.uber.org/zap"

	"github.com/neurlang/concrete/errs"
)

// SupportedExtensions are matched case-sensitively, "x.JPG" is skipped.
var SupportedExtensions = map[string]struct{}{
	".jpg": {},
	".png": {},
}

// Corpus is a scanned root directory. It keeps no iteration state, every
// call to All walks the tree again.
type Corpus struct {
	root                string
	useParentDirAsLabel bool
	logger              *zap.Logger
}

// Option configures Scan.
type Option func(*Corpus)

// WithLogger sets the logger receiving scan progress.
func WithLogger(l *zap.Logger) Option {
	return func(c *Corpus) {
		if l != nil {
			c.logger = l
		}
	}
}

// Scan checks that root is a directory and returns the corpus under it.
func Scan(root string, useParentDirAsLabel bool, opts ...Option) (*Corpus, error) {
	c := &Corpus{
		root:                root,
		useParentDirAsLabel: useParentDirAsLabel,
		logger:              zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, errs.NotFound(err, "corpus root %q", root)
	}
	if err != nil {
		return nil, errs.IO(err, "corpus root %q", root)
	}
	if !info.IsDir() {
		return nil, errs.NotFound(nil, "corpus root %q is not a directory", root)
	}
	c.logger.Info("looking for images", zap.String("root", root),
		zap.Bool("useParentDirAsLabel", useParentDirAsLabel))
	return c, nil
}

// All walks the tree lazily. A walk failure is yielded once as an ErrIO
// error and ends the sequence.
func (c *Corpus) All() iter.Seq2[ImageRecord, error] {
	return func(yield func(ImageRecord, error) bool) {
		filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == c.root && os.IsNotExist(err) {
					yield(ImageRecord{}, errs.NotFound(err, "corpus root %q", c.root))
				} else {
					yield(ImageRecord{}, errs.IO(err, "scanning %q", path))
				}
				return filepath.SkipAll
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := SupportedExtensions[filepath.Ext(path)]; !ok {
				return nil
			}
			if !yield(ImageRecord{Path: path, Label: Label(path, c.useParentDirAsLabel)}, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Records collects one full traversal.
func (c *Corpus) Records() (o []ImageRecord, err error) {
	for rec, err := range c.All() {
		if err != nil {
			return nil, err
		}
		o = append(o, rec)
	}
	c.logger.Debug("scan finished", zap.String("root", c.root), zap.Int("images", len(o)))
	return o, nil
}

// Label derives the label of the image at path. With useParentDirAsLabel it
// is the name of the containing directory. Otherwise it is the file name
// up to the first character that is not a letter, so "123abc.jpg" has the
// empty label.
func Label(path string, useParentDirAsLabel bool) string {
	if useParentDirAsLabel {
		return filepath.Base(filepath.Dir(path))
	}
	name := filepath.Base(path)
	for i, r := range name {
		if !unicode.IsLetter(r) {
			return name[:i]
		}
	}
	return name
}
