// Package main trains the concrete crack classifier. It scans a directory
// tree of labeled .jpg and .png images, splits it into training, validation
// and test partitions, trains a hashtron network on the training partition,
// saves the model and classifies the first test image.
//
// Settings come from the defaults, then the YAML file given by -config, then
// the remaining flags.
package main
