package factory

import (
	"log"

	"github.com/automoto/charsprite/archetypes"
	"github.com/automoto/charsprite/assets"
	"github.com/automoto/charsprite/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevelAtIndex spawns the level entity for levels[levelIndex] and
// renders its background. Out of range indices fall back to the first level.
func CreateLevelAtIndex(ecs *ecs.ECS, levels []*assets.Level, levelIndex int) *donburi.Entry {
	if len(levels) == 0 {
		panic("no levels to create")
	}

	// Clamp index to valid range
	if levelIndex < 0 || levelIndex >= len(levels) {
		levelIndex = 0
	}

	current := levels[levelIndex]
	if err := current.RenderBackground(); err != nil {
		log.Printf("Warning: could not render background of %s: %v", current.Name, err)
	}

	level := archetypes.Level.Spawn(ecs)
	components.Level.Set(level, &components.LevelData{
		Levels:       levels,
		LevelIndex:   levelIndex,
		CurrentLevel: current,
	})
	return level
}

// LevelIndexByName returns the index of the level called name, or 0.
func LevelIndexByName(levels []*assets.Level, name string) int {
	for i, l := range levels {
		if l.Name == name {
			return i
		}
	}
	return 0
}
