package systems

import (
	"math"

	"github.com/automoto/charsprite/components"
	"github.com/automoto/charsprite/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera eases the camera towards the selected character, keeping the
// view inside the map.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	c := SelectedCharacter(e.World)
	if c == nil {
		return
	}
	level := currentLevel(e.World)
	if level == nil {
		return
	}

	tw, th := tileSize(e.World)
	targetX, targetY := clampToLevel(c.X+tw/2, c.Y+th/2, float64(level.Width), float64(level.Height))

	camera.Position.X += (targetX - camera.Position.X) * config.Camera.FollowSmoothing
	camera.Position.Y += (targetY - camera.Position.Y) * config.Camera.FollowSmoothing
}

// clampToLevel keeps a camera centre inside the level. Levels smaller than
// the screen are centred.
func clampToLevel(x, y, levelWidth, levelHeight float64) (float64, float64) {
	screenWidth := float64(config.C.Width)
	screenHeight := float64(config.C.Height)

	if levelWidth <= screenWidth {
		x = levelWidth / 2
	} else {
		x = math.Max(screenWidth/2, math.Min(levelWidth-screenWidth/2, x))
	}
	if levelHeight <= screenHeight {
		y = levelHeight / 2
	} else {
		y = math.Max(screenHeight/2, math.Min(levelHeight-screenHeight/2, y))
	}
	return x, y
}

// DisplayOrigin is the map pixel shown at the screen's top-left corner.
func DisplayOrigin(w donburi.World) (float64, float64) {
	if w == nil {
		return 0, 0
	}
	cameraEntry, ok := components.Camera.First(w)
	if !ok {
		return 0, 0
	}
	camera := components.Camera.Get(cameraEntry)
	return math.Round(camera.Position.X - float64(config.C.Width)/2),
		math.Round(camera.Position.Y - float64(config.C.Height)/2)
}

// SelectedEntry returns the selected character's entry, or nil.
func SelectedEntry(w donburi.World) *donburi.Entry {
	cameraEntry, ok := components.Selection.First(w)
	if !ok {
		return nil
	}
	selected := components.Selection.Get(cameraEntry).Entity
	if !w.Valid(selected) {
		return nil
	}
	entry := w.Entry(selected)
	if !entry.HasComponent(components.Character) {
		return nil
	}
	return entry
}

// SelectedCharacter returns the selected character's data, or nil.
func SelectedCharacter(w donburi.World) *components.CharacterData {
	entry := SelectedEntry(w)
	if entry == nil {
		return nil
	}
	return components.Character.Get(entry)
}
