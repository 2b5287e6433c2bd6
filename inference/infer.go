// Package inference implements the prediction stage of the concrete classifier
package inference

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/neurlang/concrete/datasets/images"
	"github.com/neurlang/concrete/errs"
)

// Predictor is a trained model.
type Predictor interface {
	GridSize() int
	Classify(g *images.Grid) uint32
	Label(key uint32) string
}

// Predict classifies one row. Rows without image bytes are read from ImagePath.
func Predict(m Predictor, in images.ModelInput) (images.ModelOutput, error) {
	data := in.Image
	if data == nil {
		var err error
		data, err = os.ReadFile(in.ImagePath)
		if os.IsNotExist(err) {
			return images.ModelOutput{}, errs.NotFound(err, "image %q", in.ImagePath)
		}
		if err != nil {
			return images.ModelOutput{}, errs.IO(err, "reading image %q", in.ImagePath)
		}
	}
	g, err := images.DecodeGrid(data, m.GridSize())
	if err != nil {
		return images.ModelOutput{}, err
	}
	return images.ModelOutput{
		ImagePath:      in.ImagePath,
		Label:          in.Label,
		PredictedLabel: m.Label(m.Classify(g)),
	}, nil
}

// OutputPrediction prints one prediction line naming the image file.
func OutputPrediction(w io.Writer, out images.ModelOutput) error {
	_, err := fmt.Fprintf(w, "Image: %s | Actual Value: %s | Predicted Value: %s\n",
		filepath.Base(out.ImagePath), out.Label, out.PredictedLabel)
	return err
}
