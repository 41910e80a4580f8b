package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/automoto/charsprite/fonts"
	"github.com/automoto/charsprite/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug outlines collision objects and labels every sprite with its
// identity when the debug overlay is on.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(ecs)
	if !settings.Debug {
		return
	}

	ox, oy := DisplayOrigin(ecs.World)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space := components.Space.Get(spaceEntry)

		for _, obj := range space.Objects() {
			// Cull objects outside viewport
			if obj.X+obj.W < ox || obj.X > ox+float64(width) || obj.Y+obj.H < oy || obj.Y > oy+float64(height) {
				continue
			}

			x := obj.X - ox
			y := obj.Y - oy

			c := cfg.Cyan
			if obj.HasTags(tags.ResolvSolid) {
				c = cfg.Grey
			} else if obj.HasTags(tags.ResolvBush) {
				c = cfg.Green
			}

			vector.StrokeRect(screen, float32(x), float32(y), float32(obj.W), float32(obj.H), 1, c, false)
		}
	}

	small, large := fonts.DebugSmall.Get(), fonts.Debug.Get()
	selected := SelectedEntry(ecs.World)
	components.Sprite.Each(ecs.World, func(entry *donburi.Entry) {
		s := components.Sprite.Get(entry).Main
		if s == nil {
			return
		}
		x, y := s.Position()
		id := s.Identity()

		label := fmt.Sprintf("tile %d", id.TileID)
		if id.UsesCharset() {
			label = fmt.Sprintf("%s #%d", id.SheetName, id.SheetIndex)
		}
		face := small
		var labelColor color.Color = cfg.White
		if selected != nil && selected.Entity() == entry.Entity() {
			face, labelColor = large, cfg.Yellow
		}

		_, oy := s.Origin()
		text.Draw(screen, label, face, int(x)-len(label)*3, int(y)-oy-2, labelColor)
	})
}
