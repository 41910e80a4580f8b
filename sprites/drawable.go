package sprites

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Drawable is a positioned, croppable bitmap with flash and bush effects.
//
// Both rects are bitmap-local (0,0 is the bitmap's top-left even for
// sub-images). The sprite rect selects the active region (one character
// block of a sheet) and the src rect, relative to it, picks a frame.
type Drawable struct {
	bitmap     *ebiten.Image
	srcRect    image.Rectangle
	spriteRect image.Rectangle

	ox, oy int
	x, y   float64
	z      int

	opacity   int
	visible   bool
	bushDepth int

	flashColor color.RGBA
	flashTween *gween.Tween
	flashLevel float32

	op   ebiten.DrawImageOptions
	cmOp colorm.DrawImageOptions
}

// NewDrawable returns an empty, visible, fully opaque drawable.
func NewDrawable() *Drawable {
	return &Drawable{opacity: 255, visible: true}
}

func (d *Drawable) Bitmap() *ebiten.Image { return d.bitmap }

// SetBitmap replaces the bitmap and resets both rects to cover all of it.
func (d *Drawable) SetBitmap(img *ebiten.Image) {
	d.bitmap = img
	if img == nil {
		d.srcRect = image.Rectangle{}
		d.spriteRect = image.Rectangle{}
		return
	}
	b := img.Bounds()
	d.spriteRect = image.Rect(0, 0, b.Dx(), b.Dy())
	d.srcRect = d.spriteRect
}

func (d *Drawable) SrcRect() image.Rectangle        { return d.srcRect }
func (d *Drawable) SetSrcRect(r image.Rectangle)    { d.srcRect = r }
func (d *Drawable) SpriteRect() image.Rectangle     { return d.spriteRect }
func (d *Drawable) SetSpriteRect(r image.Rectangle) { d.spriteRect = r }

func (d *Drawable) Origin() (int, int) { return d.ox, d.oy }

func (d *Drawable) SetOrigin(ox, oy int) {
	d.ox, d.oy = ox, oy
}

func (d *Drawable) Position() (float64, float64) { return d.x, d.y }
func (d *Drawable) SetX(x float64)               { d.x = x }
func (d *Drawable) SetY(y float64)               { d.y = y }
func (d *Drawable) Z() int                       { return d.z }
func (d *Drawable) SetZ(z int)                   { d.z = z }

func (d *Drawable) Opacity() int { return d.opacity }

// SetOpacity clamps to 0..255.
func (d *Drawable) SetOpacity(o int) {
	d.opacity = min(max(o, 0), 255)
}

func (d *Drawable) Visible() bool     { return d.visible }
func (d *Drawable) SetVisible(v bool) { d.visible = v }

func (d *Drawable) BushDepth() int { return d.bushDepth }

func (d *Drawable) SetBushDepth(depth int) {
	d.bushDepth = max(depth, 0)
}

// Height is the height of one displayed frame.
func (d *Drawable) Height() int { return d.srcRect.Dy() }

// Flash starts a flash of c fading out over frames ticks. A non-positive
// duration cancels any running flash.
func (d *Drawable) Flash(c color.RGBA, frames int) {
	if frames <= 0 {
		d.flashTween = nil
		d.flashLevel = 0
		return
	}
	d.flashColor = c
	d.flashTween = gween.New(1, 0, float32(frames), ease.Linear)
	d.flashLevel = 1
}

// FlashLevel is the current flash intensity, 1 at the start and 0 when done.
func (d *Drawable) FlashLevel() float32 { return d.flashLevel }

// Update advances the flash by one tick.
func (d *Drawable) Update() {
	if d.flashTween == nil {
		return
	}
	level, done := d.flashTween.Update(1)
	d.flashLevel = level
	if done {
		d.flashTween = nil
		d.flashLevel = 0
	}
}

// EffectiveRect is the region of the bitmap that will be drawn, in the
// bitmap's own coordinate space.
func (d *Drawable) EffectiveRect() image.Rectangle {
	r := d.srcRect.Add(d.spriteRect.Min).Intersect(d.spriteRect)
	if d.bitmap != nil {
		r = r.Add(d.bitmap.Bounds().Min).Intersect(d.bitmap.Bounds())
	}
	return r
}

// Draw renders the drawable with its origin at (x, y) shifted by offset.
func (d *Drawable) Draw(screen *ebiten.Image, offset image.Point) {
	if d.bitmap == nil || !d.visible || d.opacity == 0 {
		return
	}
	rect := d.EffectiveRect()
	if rect.Empty() {
		return
	}

	bush := min(d.bushDepth, rect.Dy())
	top := rect
	top.Max.Y -= bush
	if !top.Empty() {
		d.drawPart(screen, top, 0, 1, offset)
	}
	if bush > 0 {
		bottom := rect
		bottom.Min.Y = bottom.Max.Y - bush
		d.drawPart(screen, bottom, rect.Dy()-bush, 0.5, offset)
	}
}

func (d *Drawable) drawPart(screen *ebiten.Image, rect image.Rectangle, dy int, alphaScale float32, offset image.Point) {
	img := d.bitmap.SubImage(rect).(*ebiten.Image)
	alpha := float32(d.opacity) / 255 * alphaScale
	tx := d.x - float64(d.ox) + float64(offset.X)
	ty := d.y - float64(d.oy) + float64(dy) + float64(offset.Y)

	if d.flashLevel <= 0 {
		d.op.GeoM.Reset()
		d.op.ColorScale.Reset()
		d.op.GeoM.Translate(tx, ty)
		d.op.ColorScale.ScaleAlpha(alpha)
		screen.DrawImage(img, &d.op)
		return
	}

	// Blend towards the flash colour by the current intensity.
	l := float64(d.flashLevel) * float64(d.flashColor.A) / 255
	var cm colorm.ColorM
	cm.Scale(1-l, 1-l, 1-l, float64(alpha))
	cm.Translate(
		float64(d.flashColor.R)/255*l,
		float64(d.flashColor.G)/255*l,
		float64(d.flashColor.B)/255*l,
		0,
	)
	d.cmOp.GeoM.Reset()
	d.cmOp.GeoM.Translate(tx, ty)
	colorm.DrawImage(screen, img, cm, &d.cmOp)
}
