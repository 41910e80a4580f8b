package components

import (
	"github.com/automoto/charsprite/assets"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	CurrentLevel *assets.Level
	LevelIndex   int
	Levels       []*assets.Level
	// NextRequested asks the scene to switch to the following level.
	NextRequested bool
}

var Level = donburi.NewComponentType[LevelData]()
