package factory

import (
	"github.com/automoto/charsprite/archetypes"
	"github.com/automoto/charsprite/assets"
	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/automoto/charsprite/sprites"
	"github.com/automoto/charsprite/systems"
	"github.com/automoto/charsprite/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// characterInset keeps a character's collision box strictly inside its cell
// so a one-cell step only probes the neighbouring cell.
const characterInset = 2

var directions = map[string]int{
	"up":    components.DirUp,
	"right": components.DirRight,
	"down":  components.DirDown,
	"left":  components.DirLeft,
}

// CreateCharacter spawns a map character at its spawn cell and builds the
// sprites drawing it. With clones set, wrap-around clone sprites are added
// for both axes.
func CreateCharacter(ecs *ecs.ECS, spawn assets.CharacterSpawn, tileW, tileH int, deps sprites.Deps, clones bool) *donburi.Entry {
	character := archetypes.Character.Spawn(ecs)
	if spawn.Player {
		character.AddComponent(tags.Player)
	} else {
		character.AddComponent(tags.NPC)
	}

	x := float64(spawn.CellX * tileW)
	y := float64(spawn.CellY * tileH)

	dir, ok := directions[spawn.Direction]
	if !ok {
		dir = components.DirDown
	}

	components.Character.SetValue(character, components.CharacterData{
		Name:        spawn.Name,
		TileID:      spawn.TileID,
		SpriteName:  spawn.Charset,
		SpriteIndex: spawn.Index,
		Direction:   dir,
		AnimFrame:   1,
		X:           x,
		Y:           y,
		TargetX:     x,
		TargetY:     y,
		MoveSpeed:   cfg.Character.MoveSpeed,
		Intent:      components.NoIntent,
		Wander:      spawn.Wander,
		Player:      spawn.Player,
		Visible:     true,
		Opacity:     cfg.Character.DefaultOpacity,
		Layer:       components.ParseLayer(spawn.Layer),
	})

	w := float64(tileW - 2*characterInset)
	h := float64(tileH - 2*characterInset)
	obj := resolv.NewObject(x+characterInset, y+characterInset, w, h, tags.ResolvCharacter)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = character
	components.Object.SetValue(character, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	handle := systems.CharacterHandle{World: ecs.World, Entity: character.Entity()}
	spriteData := components.SpriteData{
		Main: sprites.NewCharacterSprite(handle, sprites.CloneNone, deps),
	}
	if clones {
		for _, c := range []sprites.Clone{sprites.CloneX, sprites.CloneY, sprites.CloneX | sprites.CloneY} {
			spriteData.Clones = append(spriteData.Clones, sprites.NewCharacterSprite(handle, c, deps))
		}
	}
	components.Sprite.SetValue(character, spriteData)

	return character
}
