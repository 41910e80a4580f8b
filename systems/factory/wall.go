package factory

import (
	"github.com/automoto/charsprite/archetypes"
	"github.com/automoto/charsprite/components"
	"github.com/automoto/charsprite/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateWall(ecs *ecs.ECS, x, y, w, h float64) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)

	// Create collision object
	obj := resolv.NewObject(x, y, w, h, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = wall // Link for O(1) lookup

	components.Object.SetValue(wall, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	return wall
}

// CreateBush creates a tile that hides the bottom of characters standing on
// it. depth is the character bush depth it applies (1-3).
func CreateBush(ecs *ecs.ECS, x, y, w, h float64, depth int) *donburi.Entry {
	bush := archetypes.Bush.Spawn(ecs)

	obj := resolv.NewObject(x, y, w, h, tags.ResolvBush)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = bush

	components.Object.SetValue(bush, components.ObjectData{Object: obj})
	components.Bush.SetValue(bush, components.BushData{Depth: depth})
	addToSpace(ecs, obj)

	return bush
}

func addToSpace(ecs *ecs.ECS, obj *resolv.Object) {
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}
