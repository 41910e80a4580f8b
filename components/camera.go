package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CameraData is the centre of the view in map pixels.
type CameraData struct {
	Position math.Vec2
}

var Camera = donburi.NewComponentType[CameraData]()

// SelectionData tracks the character the camera, input and inspector act on.
type SelectionData struct {
	Entity donburi.Entity
}

var Selection = donburi.NewComponentType[SelectionData]()
