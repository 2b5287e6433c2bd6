// Package images scans a directory tree of labeled images and assembles the
// rows the trainer consumes.
//
// The pipeline runs Scan, Load, Shuffle, MapValueToKey, LoadRawImageBytes and
// TrainTestSplit in this order. Every Table transform returns a new table.
package images

// Column names of a Table.
const (
	ColumnImagePath  = "ImagePath"
	ColumnLabel      = "Label"
	ColumnLabelAsKey = "LabelAsKey"
	ColumnImage      = "Image"
)

// ImageRecord is one image found by the scanner.
type ImageRecord struct {
	Path  string
	Label string
}

// ModelInput is one row of a Table.
type ModelInput struct {
	Image      []byte
	LabelAsKey uint32
	ImagePath  string
	Label      string
}

// ModelOutput is one prediction.
type ModelOutput struct {
	ImagePath      string
	Label          string
	PredictedLabel string
}
