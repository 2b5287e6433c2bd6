package images

import (
	"bytes"
	"crypto/sha256"
	"image"
	_ "image/jpeg" // registers JPEG decoding
	_ "image/png"  // registers PNG decoding

	"golang.org/x/image/draw"

	"github.com/neurlang/concrete/errs"
)

// Grid is a size x size grayscale image quantized to 2 bits per pixel.
type Grid struct {
	size   int
	pixels []byte
}

// DecodeGrid decodes a JPEG or PNG image and scales it to the grid.
func DecodeGrid(data []byte, size int) (*Grid, error) {
	if size < 2 {
		return nil, errs.Data("grid size %d below 2", size)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Data("decoding image: %v", err)
	}
	dst := image.NewGray(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
	g := &Grid{size: size, pixels: make([]byte, size*size)}
	for i, v := range dst.Pix[:size*size] {
		g.pixels[i] = v >> 6
	}
	return g, nil
}

// NewGrid wraps already quantized pixels, as stored by the bottleneck cache.
func NewGrid(size int, pixels []byte) (*Grid, error) {
	if size < 2 || len(pixels) != size*size {
		return nil, errs.Data("%d pixels do not form a %dx%d grid", len(pixels), size, size)
	}
	for _, p := range pixels {
		if p > 3 {
			return nil, errs.Data("pixel value %d is not quantized", p)
		}
	}
	return &Grid{size: size, pixels: append([]byte(nil), pixels...)}, nil
}

// Size is the grid side.
func (g *Grid) Size() int {
	return g.size
}

// Pixels returns the quantized pixels row by row.
func (g *Grid) Pixels() []byte {
	return g.pixels
}

// Features is the number of 2x2 windows.
func (g *Grid) Features() int {
	return (g.size - 1) * (g.size - 1)
}

// Feature packs the 2x2 window n into 8 bits, the top left pixel highest.
func (g *Grid) Feature(n int) uint32 {
	n %= g.Features()
	x, y := n%(g.size-1), n/(g.size-1)
	at := func(x, y int) uint32 {
		return uint32(g.pixels[y*g.size+x])
	}
	return at(x, y)<<6 | at(x+1, y)<<4 | at(x, y+1)<<2 | at(x+1, y+1)
}

// Digest identifies image bytes in the bottleneck cache.
func Digest(data []byte) [32]byte {
	return sha256.Sum256(data)
}
