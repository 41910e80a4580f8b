package components

import "github.com/yohamta/donburi"

// SettingsData holds viewer toggles that survive restarts.
type SettingsData struct {
	Debug     bool
	Inspector bool
}

var Settings = donburi.NewComponentType[SettingsData]()
