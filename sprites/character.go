// Package sprites mirrors logical characters into drawables.
//
// A CharacterSprite is updated once per tick. It watches the character's
// graphic identity and, when that changes, asks the async handler for the
// sheet it needs; until the sheet arrives it keeps drawing whatever it had.
// Position, frame, flash, visibility and bush occlusion are copied from the
// character every tick.
package sprites

import (
	"image"
	"image/color"

	"github.com/automoto/charsprite/assets"
	"github.com/automoto/charsprite/async"
	"github.com/automoto/charsprite/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// Character is the logical state a CharacterSprite mirrors.
type Character interface {
	TileID() int
	SpriteName() string
	SpriteIndex() int
	AnimFrame() int
	// SpriteDirection is the row in the sheet: 0 up, 1 right, 2 down, 3 left.
	SpriteDirection() int

	IsFlashPending() bool
	FlashColor() color.RGBA
	FlashTimeLeft() int
	SetFlashTimeLeft(frames int)

	Visible() bool
	Opacity() int
	BushDepth() int

	ScreenX(shift bool) float64
	ScreenY(shift bool) float64
	ScreenZ(shift bool) int
}

// MapRegistry names the chipset of the current map.
type MapRegistry interface {
	ChipsetName() string
}

// AssetCache hands out ready-to-draw images. It never returns nil.
type AssetCache interface {
	Charset(name string) *ebiten.Image
	Tile(chipset string, tileID int) *ebiten.Image
}

// FileRequester is satisfied by *async.Handler.
type FileRequester interface {
	RequestFile(category, name string) *async.FileRequest
}

// Deps are the collaborators shared by every sprite.
type Deps struct {
	Files    FileRequester
	Cache    AssetCache
	Map      MapRegistry
	TileSize int
}

// Clone marks a sprite drawn one map width and/or height away from its
// character, for maps that wrap around.
type Clone uint8

const (
	CloneX Clone = 1 << iota
	CloneY

	CloneNone Clone = 0
)

var fallbackTile *ebiten.Image

// blankTile is the 16x16 graphic used when the map has no chipset.
func blankTile() *ebiten.Image {
	if fallbackTile == nil {
		fallbackTile = ebiten.NewImage(config.BaseTileSize, config.BaseTileSize)
	}
	return fallbackTile
}

// CharacterSprite draws one Character, optionally shifted by a clone offset.
type CharacterSprite struct {
	Drawable

	character Character
	deps      Deps
	clone     Clone

	identity       Identity
	frameW, frameH int
	requestID      async.BindingID
}

// NewCharacterSprite creates a sprite bound to ch and runs its first update,
// which issues the initial asset request.
func NewCharacterSprite(ch Character, clone Clone, deps Deps) *CharacterSprite {
	if deps.TileSize <= 0 {
		deps.TileSize = config.BaseTileSize
	}
	s := &CharacterSprite{
		Drawable:  *NewDrawable(),
		character: ch,
		deps:      deps,
		clone:     clone,
		identity:  unresolved,
	}
	s.Update()
	return s
}

// Character returns the bound character.
func (s *CharacterSprite) Character() Character { return s.character }

// SetCharacter rebinds the sprite. The new character is picked up on the
// next Update; if its identity differs a new request is issued then.
func (s *CharacterSprite) SetCharacter(ch Character) { s.character = ch }

// Identity is the identity the sprite last requested assets for.
func (s *CharacterSprite) Identity() Identity { return s.identity }

// FrameSize is the charset frame size, 0x0 until a charset is ready.
func (s *CharacterSprite) FrameSize() (int, int) { return s.frameW, s.frameH }

// RequestID is the binding of the most recent asset request, 0 before any.
func (s *CharacterSprite) RequestID() async.BindingID { return s.requestID }

// Update advances the flash and synchronizes with the character.
func (s *CharacterSprite) Update() {
	s.Drawable.Update()
	s.sync()
}

func (s *CharacterSprite) sync() {
	ch := s.character
	if ch == nil {
		return
	}

	live := Identity{
		TileID:     ch.TileID(),
		SheetName:  ch.SpriteName(),
		SheetIndex: ch.SpriteIndex(),
	}
	if live != s.identity {
		s.identity = live
		s.request(live)
	}

	if s.identity.UsesCharset() {
		s.SetSrcRect(AnimRect(ch.AnimFrame(), ch.SpriteDirection(), s.frameW, s.frameH))
	}

	if ch.IsFlashPending() {
		s.Flash(ch.FlashColor(), ch.FlashTimeLeft())
		ch.SetFlashTimeLeft(0)
	}

	s.SetVisible(ch.Visible())
	if s.Visible() {
		s.SetOpacity(ch.Opacity())
	}

	shiftX := s.clone&CloneX != 0
	shiftY := s.clone&CloneY != 0
	s.SetX(ch.ScreenX(shiftX))
	s.SetY(ch.ScreenY(shiftY))
	// Z follows screen Y, so it uses the vertical shift.
	s.SetZ(ch.ScreenZ(shiftY))

	s.SetBushDepth(BushSplit(s.Height(), ch.BushDepth()))
}

// request issues the single asset request for id. The continuation may run
// inside Start when the file is already resolved.
func (s *CharacterSprite) request(id Identity) {
	if id.UsesCharset() {
		req := s.deps.Files.RequestFile(assets.CategoryCharset, id.SheetName)
		s.requestID = req.Bind(func(async.Result) { s.onCharsetReady(id) })
		req.Start()
		return
	}
	req := s.deps.Files.RequestFile(assets.CategoryChipset, s.deps.Map.ChipsetName())
	s.requestID = req.Bind(func(async.Result) { s.onTileReady(id) })
	req.Start()
}

func (s *CharacterSprite) onCharsetReady(id Identity) {
	if id != s.identity {
		return // superseded by a later identity
	}

	sheet := s.deps.Cache.Charset(id.SheetName)
	s.SetBitmap(sheet)

	b := sheet.Bounds()
	s.frameW, s.frameH = CharsetFrameSize(id.SheetName, b.Dx(), b.Dy(), s.deps.TileSize)
	s.SetOrigin(s.frameW/2, s.frameH)
	s.SetSpriteRect(CharsetBlockRect(id.SheetIndex, s.frameW, s.frameH))

	s.sync()
}

func (s *CharacterSprite) onTileReady(id Identity) {
	if id != s.identity {
		return
	}

	var tile *ebiten.Image
	if chipset := s.deps.Map.ChipsetName(); chipset != "" {
		tile = s.deps.Cache.Tile(chipset, id.TileID)
	} else {
		tile = blankTile()
	}
	s.SetBitmap(tile)

	ts := s.deps.TileSize
	s.SetSrcRect(image.Rect(0, 0, ts, ts))
	s.SetOrigin(ts/2, ts)

	s.sync()
}
