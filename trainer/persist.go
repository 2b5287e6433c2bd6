package trainer

import (
	"compress/zlib"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/neurlang/concrete/errs"
	"github.com/neurlang/concrete/hashtron"
)

// artifact is the JSON document stored by Save.
type artifact struct {
	RunID      string              `json:"run_id"`
	Arch       string              `json:"arch"`
	GridSize   int                 `json:"grid_size"`
	Vocabulary []string            `json:"vocabulary"`
	Weights    []hashtron.Hashtron `json:"weights"`
	Saved      time.Time           `json:"saved"`
}

// Save writes the model to path as zlib compressed JSON, creating the
// parent directories.
func Save(m *Model, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.IO(err, "creating model directory")
	}
	file, err := os.Create(path)
	if err != nil {
		return errs.IO(err, "creating model %q", path)
	}
	zw := zlib.NewWriter(file)
	err = json.NewEncoder(zw).Encode(artifact{
		RunID:      m.runID,
		Arch:       m.arch.String(),
		GridSize:   m.arch.GridSize(),
		Vocabulary: m.vocab,
		Weights:    m.net.Weights(),
		Saved:      time.Now().UTC(),
	})
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errs.IO(err, "writing model %q", path)
	}
	return nil
}

// Load reads a model written by Save.
func Load(path string) (*Model, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.NotFound(err, "model %q", path)
	}
	if err != nil {
		return nil, errs.IO(err, "opening model %q", path)
	}
	defer file.Close()
	zr, err := zlib.NewReader(file)
	if err != nil {
		return nil, errs.Data("model %q is not zlib compressed: %v", path, err)
	}
	defer zr.Close()
	var a artifact
	if err := json.NewDecoder(zr).Decode(&a); err != nil {
		return nil, errs.Data("decoding model %q: %v", path, err)
	}
	arch, err := ParseArchitecture(a.Arch)
	if err != nil {
		return nil, err
	}
	if len(a.Vocabulary) == 0 {
		return nil, errs.Data("model %q has no labels", path)
	}
	net, err := arch.Build(OutBits(len(a.Vocabulary)))
	if err != nil {
		return nil, err
	}
	if err := net.SetWeights(a.Weights); err != nil {
		return nil, errs.Data("model %q: %v", path, err)
	}
	return &Model{
		net:   net,
		arch:  arch,
		vocab: a.Vocabulary,
		runID: a.RunID,
	}, nil
}
