// Package main loads a model saved by train_concrete and prints one
// prediction line for every image under a directory.
package main
