package systems

import (
	"context"
	"testing"

	"github.com/automoto/charsprite/async"
	"github.com/automoto/charsprite/components"
	"github.com/automoto/charsprite/sprites"
	"github.com/hajimehoshi/ebiten/v2"
)

type instantLoader struct{}

func (instantLoader) Load(context.Context, string, string) error { return nil }

type stubCache struct{ img *ebiten.Image }

func (c stubCache) Charset(string) *ebiten.Image  { return c.img }
func (c stubCache) Tile(string, int) *ebiten.Image { return c.img }

func TestInspectReportsSprite(t *testing.T) {
	e := newTestMap(t, 5, 5)
	a := addCharacter(e, "alice", 1, 1)
	selectEntity(e, a.Entity())

	h := async.NewHandler(instantLoader{})
	t.Cleanup(h.Close)
	deps := sprites.Deps{
		Files:    h,
		Cache:    stubCache{img: ebiten.NewImage(cell, cell)},
		Map:      LevelRegistry{World: e.World},
		TileSize: cell,
	}
	s := sprites.NewCharacterSprite(CharacterHandle{World: e.World, Entity: a.Entity()}, sprites.CloneNone, deps)
	components.Sprite.SetValue(a, components.SpriteData{Main: s})
	h.Wait()

	in, ok := Inspect(e.World)
	if !ok {
		t.Fatal("selection not inspected")
	}
	if in.Identity.TileID != 3 || in.Identity.UsesCharset() {
		t.Errorf("identity = %+v, want tile 3", in.Identity)
	}
	if in.Request == 0 || in.Request != s.RequestID() {
		t.Errorf("request = %d, sprite binding = %d", in.Request, s.RequestID())
	}
	if got, want := in.Lines()[8], "request #1, pending loads: 0"; got != want {
		t.Errorf("last line = %q, want %q", got, want)
	}
}
