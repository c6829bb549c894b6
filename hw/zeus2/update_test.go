package zeus2

import (
	"image"
	"image/color"
	"testing"

	"zeusemu/hw/waveram"
)

func TestUpdateScreen(t *testing.T) {
	c := newTestChip(t)
	c.Bank1.SetPixel(0, 10, 20, 0x123456)
	c.Bank1.SetPixel(0, 399, 511, 0xffffff)

	dst := image.NewRGBA(image.Rect(0, 0, 512, 400))
	c.UpdateScreen(dst)
	if got, want := dst.RGBAAt(20, 10), (color.RGBA{0x12, 0x34, 0x56, 0xff}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	if got, want := dst.RGBAAt(511, 399), (color.RGBA{0xff, 0xff, 0xff, 0xff}); got != want {
		t.Errorf("bottom right pixel = %v, want %v", got, want)
	}
	if got, want := dst.RGBAAt(0, 0), (color.RGBA{0, 0, 0, 0xff}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}

	// A smaller destination is clipped.
	small := image.NewRGBA(image.Rect(0, 0, 32, 16))
	c.UpdateScreen(small)
	if got, want := small.RGBAAt(20, 10), (color.RGBA{0x12, 0x34, 0x56, 0xff}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestUpdateScreenDoubleScan(t *testing.T) {
	c := newTestChip(t)
	c.setTiming(0x100, 0, 512, 199, 219)
	if c.YScale() != 1 {
		t.Fatalf("YScale() = %d, want 1", c.YScale())
	}
	if vis := c.screen.VisibleArea(); vis.MaxY != 398 {
		t.Fatalf("visible area = %v, want 398 lines", vis)
	}

	// The displayed address is scaled down as well.
	c.Write(regDisplay, 0x00200000)
	base := c.Bank1.Block(0x00100000)
	if c.FrameBase() != base {
		t.Fatalf("FrameBase() = %x, want %x", c.FrameBase(), base)
	}

	c.Bank1.SetPixel(base, 2, 7, 0x0000ff)
	c.Bank1.SetPixel(base, 2, 0x200+7, 0x00ff00)

	dst := image.NewRGBA(image.Rect(0, 0, 512, 399))
	c.UpdateScreen(dst)
	if got := dst.RGBAAt(7, 4); got.B != 0xff {
		t.Errorf("even line pixel = %v, want blue", got)
	}
	if got := dst.RGBAAt(7, 5); got.G != 0xff {
		t.Errorf("odd line pixel = %v, want green", got)
	}
}

func TestRenderWaveView(t *testing.T) {
	c := newTestChip(t)
	c.Bank0.Write8(0, waveram.TexelOffset(3, 5, 256), 0x80)
	c.Bank0.Write8(c.Bank0.Block(0x00020000), waveram.TexelOffset(0, 1, 64), 0x40)

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	c.RenderWaveView(dst, 0, 256)
	if got, want := dst.RGBAAt(5, 3), (color.RGBA{0x80, 0x80, 0x80, 0xff}); got != want {
		t.Errorf("texel = %v, want %v", got, want)
	}

	c.RenderWaveView(dst, 2, 64)
	if got, want := dst.RGBAAt(1, 0), (color.RGBA{0x40, 0x40, 0x40, 0xff}); got != want {
		t.Errorf("texel = %v, want %v", got, want)
	}
}

func TestAdjustZBase(t *testing.T) {
	c := newTestChip(t)
	c.AdjustZBase(1.5)
	c.AdjustZBase(-0.5)
	if got := c.ZBase(); got != 3 {
		t.Errorf("ZBase() = %v, want 3", got)
	}
	c.Reset()
	if got := c.ZBase(); got != 2 {
		t.Errorf("ZBase() after reset = %v, want 2", got)
	}
}
