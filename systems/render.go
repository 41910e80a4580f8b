package systems

import (
	"image"
	"sort"

	"github.com/automoto/charsprite/components"
	"github.com/automoto/charsprite/sprites"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Reused between frames to avoid allocations
var drawList []*sprites.CharacterSprite

// UpdateAsync delivers finished asset loads. Must run before UpdateSprites so
// sprites see their assets on the tick they arrive.
func UpdateAsync(e *ecs.ECS) {
	entry, ok := components.Assets.First(e.World)
	if !ok {
		return
	}
	if h := components.Assets.Get(entry).Handler; h != nil {
		h.Update()
	}
}

// UpdateSprites synchronizes every character sprite with its character.
func UpdateSprites(e *ecs.ECS) {
	components.Sprite.Each(e.World, func(entry *donburi.Entry) {
		for _, s := range components.Sprite.Get(entry).All() {
			s.Update()
		}
	})
}

// DrawSprites renders all character sprites, lowest Z first. Sprites with
// equal Z keep their entity order.
func DrawSprites(e *ecs.ECS, screen *ebiten.Image) {
	drawList = drawList[:0]
	components.Sprite.Each(e.World, func(entry *donburi.Entry) {
		drawList = append(drawList, components.Sprite.Get(entry).All()...)
	})
	SortByZ(drawList)

	bounds := screen.Bounds()
	for _, s := range drawList {
		if !onScreen(s, bounds) {
			continue
		}
		s.Draw(screen, image.Point{})
	}
}

// SortByZ orders sprites for drawing.
func SortByZ(list []*sprites.CharacterSprite) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Z() < list[j].Z()
	})
}

// Viewport culling with a small padding so sprites don't pop at the edges.
func onScreen(s *sprites.CharacterSprite, bounds image.Rectangle) bool {
	const padding = 64
	x, y := s.Position()
	return x > float64(bounds.Min.X-padding) && x < float64(bounds.Max.X+padding) &&
		y > float64(bounds.Min.Y-padding) && y < float64(bounds.Max.Y+padding)
}
