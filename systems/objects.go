package systems

import (
	"github.com/automoto/charsprite/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateObjects re-registers moved collision objects with the space.
func UpdateObjects(ecs *ecs.ECS) {
	for e := range components.Object.Iter(ecs.World) {
		obj := components.Object.Get(e)
		obj.Update()
	}
}
