// Package majpool2d implements majority pooling over a 2D bit grid.
package majpool2d

import "fmt"
import "github.com/neurlang/concrete/layer"

// MajPool2DLayer pools a (width*subwidth) x (height*subheight) bit grid into
// width x height block majorities.
type MajPool2DLayer struct {
	width, height, subwidth, subheight int
}

// MajPool2D is the combiner made by MajPool2DLayer.Lay.
type MajPool2D struct {
	vec []bool
	*MajPool2DLayer
}

// New creates a new MajPool2D layer with pooled size and block size
func New(width, height, subwidth, subheight int) (o *MajPool2DLayer, err error) {
	if width < 1 || height < 1 || subwidth < 1 || subheight < 1 {
		return nil, fmt.Errorf("New MajPool2D: sizes must be positive, got %dx%d blocks of %dx%d", width, height, subwidth, subheight)
	}
	if width*height > 32 {
		return nil, fmt.Errorf("New MajPool2D: %dx%d blocks do not fit a 32 bit feature", width, height)
	}
	o = new(MajPool2DLayer)
	o.width = width
	o.height = height
	o.subwidth = subwidth
	o.subheight = subheight
	return
}

// MustNew creates a new MajPool2D layer, it panics on bad geometry
func MustNew(width, height, subwidth, subheight int) *MajPool2DLayer {
	o, err := New(width, height, subwidth, subheight)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Inputs is the number of bits the combiner accepts.
func (i *MajPool2DLayer) Inputs() int {
	return i.width * i.subwidth * i.height * i.subheight
}

// Lay turns MajPool2D layer into a combiner
func (i *MajPool2DLayer) Lay() layer.Combiner {
	return &MajPool2D{
		vec:            make([]bool, i.Inputs()),
		MajPool2DLayer: i,
	}
}
