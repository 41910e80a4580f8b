package systems

import (
	"github.com/automoto/charsprite/archetypes"
	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateSettings returns the singleton Settings component, seeding it
// from the debug config on first use.
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(e.World)
	if !ok {
		entry = archetypes.Settings.Spawn(e)
		components.Settings.SetValue(entry, components.SettingsData{
			Debug:     cfg.Debug.Overlay,
			Inspector: cfg.Debug.Inspector,
		})
	}
	return components.Settings.Get(entry)
}
