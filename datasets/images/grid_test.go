package images

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/neurlang/concrete/errs"
)

// uniform encodes a w x h image of one gray level.
func uniform(t testing.TB, w, h int, level uint8, asJPEG bool) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	var buf bytes.Buffer
	var err error
	if asJPEG {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95})
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeGridQuantizes(t *testing.T) {
	for _, asJPEG := range []bool{false, true} {
		dark, err := DecodeGrid(uniform(t, 40, 30, 10, asJPEG), 6)
		if err != nil {
			t.Fatal(err)
		}
		bright, err := DecodeGrid(uniform(t, 40, 30, 250, asJPEG), 6)
		if err != nil {
			t.Fatal(err)
		}
		if dark.Features() != 25 {
			t.Fatalf("features %d", dark.Features())
		}
		for n := 0; n < dark.Features(); n++ {
			if dark.Feature(n) != 0 || bright.Feature(n) != 0xFF {
				t.Fatalf("jpeg %v window %d: dark %x bright %x", asJPEG, n, dark.Feature(n), bright.Feature(n))
			}
		}
	}
}

func TestFeatureWindow(t *testing.T) {
	g, err := NewGrid(3, []byte{
		0, 1, 2,
		3, 0, 1,
		2, 3, 0,
	})
	if err != nil {
		t.Fatal(err)
	}
	wants := []uint32{
		0<<6 | 1<<4 | 3<<2 | 0,
		1<<6 | 2<<4 | 0<<2 | 1,
		3<<6 | 0<<4 | 2<<2 | 3,
		0<<6 | 1<<4 | 3<<2 | 0,
	}
	for n, want := range wants {
		if got := g.Feature(n); got != want {
			t.Errorf("window %d = %08b, want %08b", n, got, want)
		}
	}
	if g.Feature(4) != g.Feature(0) {
		t.Errorf("window index does not wrap")
	}
}

func TestDecodeGridRejects(t *testing.T) {
	if _, err := DecodeGrid([]byte("not an image"), 6); !errors.Is(err, errs.ErrData) {
		t.Errorf("got %v, want ErrData", err)
	}
	if _, err := DecodeGrid(uniform(t, 4, 4, 0, false), 1); !errors.Is(err, errs.ErrData) {
		t.Errorf("got %v, want ErrData", err)
	}
	if _, err := NewGrid(2, []byte{0, 1, 2}); !errors.Is(err, errs.ErrData) {
		t.Errorf("short pixels: got %v", err)
	}
	if _, err := NewGrid(2, []byte{0, 1, 2, 4}); !errors.Is(err, errs.ErrData) {
		t.Errorf("unquantized pixels: got %v", err)
	}
}

func TestDigest(t *testing.T) {
	a, b := uniform(t, 4, 4, 1, false), uniform(t, 4, 4, 2, false)
	if Digest(a) == Digest(b) || Digest(a) != Digest(append([]byte(nil), a...)) {
		t.Errorf("digest does not follow content")
	}
}
