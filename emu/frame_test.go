package emu

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"golang.org/x/image/bmp"
)

func testFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(1, 2, color.RGBA{0xff, 0, 0, 0xff})
	return img
}

func TestScaleFrame(t *testing.T) {
	img := testFrame()
	if ScaleFrame(img, 1) != img {
		t.Errorf("ScaleFrame(1) copied the frame")
	}

	dst := ScaleFrame(img, 3)
	if b := dst.Bounds(); b.Dx() != 12 || b.Dy() != 9 {
		t.Fatalf("scaled size = %v, want 12x9", b)
	}
	red := color.RGBA{0xff, 0, 0, 0xff}
	for y := range 9 {
		for x := range 12 {
			want := color.RGBA{0, 0, 0, 0xff}
			if x/3 == 1 && y/3 == 2 {
				want = red
			}
			if got := dst.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFileSink(t *testing.T) {
	decoders := map[string]func(*bytes.Reader) (image.Image, error){
		"png": func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		"bmp": func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	}
	for _, format := range FrameFormats {
		t.Run(format, func(t *testing.T) {
			sink := &FileSink{Dir: t.TempDir(), Prefix: "trace-", Format: format, Scale: 2}
			if err := sink.WriteFrame("f0", testFrame()); err != nil {
				t.Fatal(err)
			}

			buf, err := os.ReadFile(sink.Path("f0"))
			if err != nil {
				t.Fatal(err)
			}
			img, err := decoders[format](bytes.NewReader(buf))
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("image size = %v, want 8x6", b)
			}
			if got := color.RGBAModel.Convert(img.At(3, 5)).(color.RGBA); got != (color.RGBA{0xff, 0, 0, 0xff}) {
				t.Errorf("pixel = %v, want red", got)
			}
		})
	}
}

func TestEncodeFrameFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeFrame(&buf, testFrame(), "gif", 1); err == nil {
		t.Errorf("EncodeFrame accepted gif")
	}
}
