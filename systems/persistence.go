package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Debug     bool   `json:"debug"`
	Inspector bool   `json:"inspector"`
	LastLevel string `json:"lastLevel"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "charsprite",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// SaveCurrentSettings saves the viewer toggles and the open level
func SaveCurrentSettings(e *ecs.ECS, s *components.SettingsData) {
	saved := &SavedSettings{
		Debug:     s.Debug,
		Inspector: s.Inspector,
	}
	if level := currentLevel(e.World); level != nil {
		saved.LastLevel = level.Name
	}
	_ = SaveSettings(saved)
}

// ApplySavedSettingsGlobal applies settings before any scene exists. An
// explicitly requested level wins over the saved one.
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}
	cfg.Debug.Overlay = saved.Debug
	cfg.Debug.Inspector = saved.Inspector
	if cfg.C.Level == "" {
		cfg.C.Level = saved.LastLevel
	}
}
