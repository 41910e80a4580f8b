package systems

import (
	"image/color"

	"github.com/automoto/charsprite/assets"
	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/yohamta/donburi"
)

// CharacterHandle exposes a character entity to its sprites. It does not own
// the entity: once the entity is removed the handle reads as an invisible,
// motionless character.
type CharacterHandle struct {
	World  donburi.World
	Entity donburi.Entity
}

func (h CharacterHandle) data() *components.CharacterData {
	if h.World == nil || !h.World.Valid(h.Entity) {
		return nil
	}
	entry := h.World.Entry(h.Entity)
	if !entry.HasComponent(components.Character) {
		return nil
	}
	return components.Character.Get(entry)
}

func (h CharacterHandle) TileID() int {
	if c := h.data(); c != nil {
		return c.TileID
	}
	return 0
}

func (h CharacterHandle) SpriteName() string {
	if c := h.data(); c != nil {
		return c.SpriteName
	}
	return ""
}

func (h CharacterHandle) SpriteIndex() int {
	if c := h.data(); c != nil {
		return c.SpriteIndex
	}
	return 0
}

func (h CharacterHandle) AnimFrame() int {
	if c := h.data(); c != nil {
		return c.AnimFrame
	}
	return 0
}

func (h CharacterHandle) SpriteDirection() int {
	if c := h.data(); c != nil {
		return c.Direction
	}
	return components.DirDown
}

func (h CharacterHandle) IsFlashPending() bool {
	c := h.data()
	return c != nil && c.FlashTimeLeft > 0
}

func (h CharacterHandle) FlashColor() color.RGBA {
	if c := h.data(); c != nil {
		return c.FlashColor
	}
	return color.RGBA{}
}

func (h CharacterHandle) FlashTimeLeft() int {
	if c := h.data(); c != nil {
		return c.FlashTimeLeft
	}
	return 0
}

func (h CharacterHandle) SetFlashTimeLeft(frames int) {
	if c := h.data(); c != nil {
		c.FlashTimeLeft = frames
	}
}

func (h CharacterHandle) Visible() bool {
	c := h.data()
	return c != nil && c.Visible
}

func (h CharacterHandle) Opacity() int {
	if c := h.data(); c != nil {
		return c.Opacity
	}
	return 0
}

func (h CharacterHandle) BushDepth() int {
	if c := h.data(); c != nil {
		return c.BushDepth
	}
	return 0
}

// ScreenX is the horizontal centre of the character's cell on screen.
func (h CharacterHandle) ScreenX(shift bool) float64 {
	c := h.data()
	if c == nil {
		return 0
	}
	ox, _ := DisplayOrigin(h.World)
	tw, _ := tileSize(h.World)
	x := c.X - ox + tw/2
	if shift {
		if level := currentLevel(h.World); level != nil {
			x += float64(level.Width)
		}
	}
	return x
}

// ScreenY is the bottom edge of the character's cell on screen.
func (h CharacterHandle) ScreenY(shift bool) float64 {
	c := h.data()
	if c == nil {
		return 0
	}
	_, oy := DisplayOrigin(h.World)
	_, th := tileSize(h.World)
	y := c.Y - oy + th
	if shift {
		if level := currentLevel(h.World); level != nil {
			y += float64(level.Height)
		}
	}
	return y
}

// ScreenZ orders the character by layer, then by screen Y within a layer.
func (h CharacterHandle) ScreenZ(shift bool) int {
	c := h.data()
	if c == nil {
		return 0
	}
	base := cfg.Z.Same
	switch c.Layer {
	case components.LayerBelow:
		base = cfg.Z.Below
	case components.LayerAbove:
		base = cfg.Z.Above
	}
	return base + int(h.ScreenY(shift))
}

// LevelRegistry answers map questions from the current level entity.
type LevelRegistry struct {
	World donburi.World
}

// ChipsetName is the chipset of the current level, "" without one.
func (r LevelRegistry) ChipsetName() string {
	if level := currentLevel(r.World); level != nil {
		return level.Chipset
	}
	return ""
}

func currentLevel(w donburi.World) *assets.Level {
	if w == nil {
		return nil
	}
	entry, ok := components.Level.First(w)
	if !ok {
		return nil
	}
	return components.Level.Get(entry).CurrentLevel
}

// tileSize is the map cell size, falling back to the configured tile size
// before a level is loaded.
func tileSize(w donburi.World) (float64, float64) {
	if level := currentLevel(w); level != nil && level.TileWidth > 0 && level.TileHeight > 0 {
		return float64(level.TileWidth), float64(level.TileHeight)
	}
	ts := float64(cfg.Sprite.TileSize)
	return ts, ts
}
