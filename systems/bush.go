package systems

import (
	"github.com/automoto/charsprite/components"
	"github.com/automoto/charsprite/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBush sets each character's bush depth from the bush tiles under it.
// Characters above the map are never hidden.
func UpdateBush(e *ecs.ECS) {
	tags.Character.Each(e.World, func(entry *donburi.Entry) {
		c := components.Character.Get(entry)
		c.BushDepth = 0
		if c.Layer == components.LayerAbove {
			return
		}

		// The collision object sits on the target cell while stepping.
		obj := components.Object.Get(entry)
		check := obj.Check(c.X-c.TargetX, c.Y-c.TargetY, tags.ResolvBush)
		if check == nil {
			return
		}
		for _, o := range check.ObjectsByTags(tags.ResolvBush) {
			bush, ok := o.Data.(*donburi.Entry)
			if !ok || !bush.Valid() || !bush.HasComponent(components.Bush) {
				continue
			}
			c.BushDepth = max(c.BushDepth, components.Bush.Get(bush).Depth)
		}
	})
}
