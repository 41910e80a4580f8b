package factory

import (
	"github.com/automoto/charsprite/archetypes"
	"github.com/automoto/charsprite/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreateCamera spawns the camera centred on (x, y), following selected.
func CreateCamera(ecs *ecs.ECS, x, y float64, selected donburi.Entity) *donburi.Entry {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{Position: math.Vec2{X: x, Y: y}})
	components.Selection.Set(camera, &components.SelectionData{Entity: selected})
	return camera
}
