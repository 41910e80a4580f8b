package sprites

import (
	"image"
	"image/color"
	"testing"
)

func TestCharsetBlockRect(t *testing.T) {
	tests := []struct {
		index int
		want  image.Rectangle
	}{
		{0, image.Rect(0, 0, 72, 128)},
		{3, image.Rect(216, 0, 288, 128)},
		{4, image.Rect(0, 128, 72, 256)},
		{7, image.Rect(216, 128, 288, 256)},
	}
	for _, tt := range tests {
		if got := CharsetBlockRect(tt.index, 24, 32); got != tt.want {
			t.Errorf("CharsetBlockRect(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestAnimRect(t *testing.T) {
	if got, want := AnimRect(2, 1, 24, 32), image.Rect(48, 32, 72, 64); got != want {
		t.Errorf("AnimRect = %v, want %v", got, want)
	}
	if got := AnimRect(1, 2, 0, 0); !got.Empty() {
		t.Errorf("zero frame size should give an empty rect, got %v", got)
	}
}

func TestBushSplit(t *testing.T) {
	tests := []struct {
		height, depth, want int
	}{
		{32, 0, 0},
		{32, -1, 0},
		{32, 1, 10},
		{32, 2, 16},
		{32, 3, 32},
		{32, 4, 32},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := BushSplit(tt.height, tt.depth); got != tt.want {
			t.Errorf("BushSplit(%d, %d) = %d, want %d", tt.height, tt.depth, got, tt.want)
		}
	}
}

func TestIdentityUsesCharset(t *testing.T) {
	if (Identity{TileID: 3}).UsesCharset() {
		t.Error("tile identity reported as charset")
	}
	if !(Identity{SheetName: "Hero"}).UsesCharset() {
		t.Error("charset identity reported as tile")
	}
	if unresolved.TileID != -1 || unresolved.UsesCharset() {
		t.Errorf("unexpected initial identity %+v", unresolved)
	}
}

func TestDrawableRects(t *testing.T) {
	d := NewDrawable()
	if d.Height() != 0 || !d.EffectiveRect().Empty() {
		t.Fatal("empty drawable should have no area")
	}

	sheet := NewDrawable()
	sheet.SetBitmap(nil)
	if sheet.Bitmap() != nil {
		t.Fatal("nil bitmap should clear the slot")
	}

	d.SetSrcRect(image.Rect(0, 0, 24, 32))
	d.SetSpriteRect(image.Rect(72, 0, 144, 128))
	if got, want := d.EffectiveRect(), image.Rect(72, 0, 96, 32); got != want {
		t.Errorf("effective rect = %v, want %v", got, want)
	}
	if d.Height() != 32 {
		t.Errorf("height = %d, want 32", d.Height())
	}

	// Frames outside the block are clipped.
	d.SetSrcRect(image.Rect(60, 0, 84, 32))
	if got, want := d.EffectiveRect(), image.Rect(132, 0, 144, 32); got != want {
		t.Errorf("clipped rect = %v, want %v", got, want)
	}
}

func TestDrawableOpacityClamp(t *testing.T) {
	d := NewDrawable()
	d.SetOpacity(300)
	if d.Opacity() != 255 {
		t.Errorf("opacity = %d, want 255", d.Opacity())
	}
	d.SetOpacity(-5)
	if d.Opacity() != 0 {
		t.Errorf("opacity = %d, want 0", d.Opacity())
	}
}

func TestFlashCancel(t *testing.T) {
	d := NewDrawable()
	d.Flash(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 10)
	d.Update()
	d.Flash(color.RGBA{}, 0)
	if d.FlashLevel() != 0 {
		t.Errorf("zero duration should cancel the flash, got %v", d.FlashLevel())
	}
	d.Update()
	if d.FlashLevel() != 0 {
		t.Error("cancelled flash came back")
	}
}
