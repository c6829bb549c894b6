package emu

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"zeusemu/emu/log"
)

// FrameSink receives the frames a trace asks for.
type FrameSink interface {
	WriteFrame(name string, img *image.RGBA) error
}

// FileSink writes frames as image files in a directory.
type FileSink struct {
	Dir    string
	Prefix string // prepended to frame names
	Format string // png or bmp
	Scale  int    // integer upscaling factor
}

// Path returns the path of the file a frame is written to.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.Dir, s.Prefix+name+"."+s.Format)
}

func (s *FileSink) WriteFrame(name string, img *image.RGBA) error {
	path := s.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeFrame(f, img, s.Format, s.Scale); err != nil {
		f.Close()
		return fmt.Errorf("frame %s: %w", path, err)
	}
	log.ModEmu.InfoZ("frame written").
		String("path", path).
		End()
	return f.Close()
}

// ScaleFrame returns img upscaled by an integer factor, with nearest
// neighbor sampling.
func ScaleFrame(img *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodeFrame writes img to w in the given format, after scaling.
func EncodeFrame(w io.Writer, img *image.RGBA, format string, scale int) error {
	src := ScaleFrame(img, scale)
	switch format {
	case "png":
		return png.Encode(w, src)
	case "bmp":
		return bmp.Encode(w, src)
	}
	return fmt.Errorf("unsupported frame format %q", format)
}
