// Package trainer fits a hashtron network to a table of labeled images.
//
// Training needs no backpropagation and no floating point arithmetic. Every
// epoch visits the hashtrons final layer first. Each training sample votes on
// the bit a hashtron should output, the votes are learned into a new hash
// program, and the update is kept only when training accuracy does not drop.
package trainer
