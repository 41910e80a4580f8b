package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

var levelDrawOp = &ebiten.DrawImageOptions{}

// DrawLevel draws the pre-rendered map background under the camera.
func DrawLevel(ecs *ecs.ECS, screen *ebiten.Image) {
	level := currentLevel(ecs.World)
	if level == nil || level.Background == nil {
		return
	}

	ox, oy := DisplayOrigin(ecs.World)
	levelDrawOp.GeoM.Reset()
	levelDrawOp.GeoM.Translate(-ox, -oy)
	screen.DrawImage(level.Background, levelDrawOp)
}
