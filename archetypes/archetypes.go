package archetypes

import (
	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/automoto/charsprite/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Character = newArchetype(
		tags.Character,
		components.Character,
		components.Object,
		components.Sprite,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
	Bush = newArchetype(
		tags.Bush,
		components.Bush,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
		components.Selection,
	)
	Settings = newArchetype(
		components.Settings,
	)
	Assets = newArchetype(
		components.Assets,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
