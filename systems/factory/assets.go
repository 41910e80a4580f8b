package factory

import (
	"github.com/automoto/charsprite/archetypes"
	"github.com/automoto/charsprite/assets"
	"github.com/automoto/charsprite/async"
	"github.com/automoto/charsprite/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateAssets exposes the shared loader and cache to systems.
func CreateAssets(ecs *ecs.ECS, handler *async.Handler, cache *assets.Cache) *donburi.Entry {
	entry := archetypes.Assets.Spawn(ecs)
	components.Assets.SetValue(entry, components.AssetsData{Handler: handler, Cache: cache})
	return entry
}
