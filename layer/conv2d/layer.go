// Package conv2d implements a 2D bit-convolution layer and combiner
package conv2d

import "fmt"
import "github.com/neurlang/concrete/layer"

// Conv2DLayer describes a width x height bit grid read through subwidth x
// subheight windows placed every stride cells.
type Conv2DLayer struct {
	width, height, subwidth, subheight, stride int
}

// Conv2D is the combiner made by Conv2DLayer.Lay.
type Conv2D struct {
	vec []bool
	*Conv2DLayer
}

// MustNew creates a new Conv2D layer, it panics on bad geometry
func MustNew(width, height, subwidth, subheight, stride int) *Conv2DLayer {
	o, err := New(width, height, subwidth, subheight, stride)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer with size, window size and stride
func New(width, height, subwidth, subheight, stride int) (o *Conv2DLayer, err error) {
	if subwidth < 1 || subheight < 1 || stride < 1 {
		return nil, fmt.Errorf("New Conv2D: Subwidth %d, Subheight %d and Stride %d must be positive", subwidth, subheight, stride)
	}
	if width < subwidth {
		return nil, fmt.Errorf("New Conv2D: Width %d is lower than Subwidth %d", width, subwidth)
	}
	if height < subheight {
		return nil, fmt.Errorf("New Conv2D: Height %d is lower than Subheight %d", height, subheight)
	}
	if subwidth*subheight > 32 {
		return nil, fmt.Errorf("New Conv2D: window %dx%d does not fit a 32 bit feature", subwidth, subheight)
	}
	o = new(Conv2DLayer)
	o.width = width
	o.height = height
	o.subwidth = subwidth
	o.subheight = subheight
	o.stride = stride
	return
}

// Inputs is the number of bits the combiner accepts.
func (i *Conv2DLayer) Inputs() int {
	return i.width * i.height
}

// Outputs is the number of windows, one feature each.
func (i *Conv2DLayer) Outputs() int {
	return i.across() * i.down()
}

func (i *Conv2DLayer) across() int {
	return (i.width-i.subwidth)/i.stride + 1
}

func (i *Conv2DLayer) down() int {
	return (i.height-i.subheight)/i.stride + 1
}

// Lay turns Conv2D layer into a combiner
func (i *Conv2DLayer) Lay() layer.Combiner {
	return &Conv2D{
		vec:         make([]bool, i.width*i.height),
		Conv2DLayer: i,
	}
}
