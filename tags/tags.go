package tags

import "github.com/yohamta/donburi"

var (
	Player    = donburi.NewTag().SetName("Player")
	NPC       = donburi.NewTag().SetName("NPC")
	Wall      = donburi.NewTag().SetName("Wall")
	Bush      = donburi.NewTag().SetName("Bush")
	Character = donburi.NewTag().SetName("Character")
)

// Resolv tags for collision queries
const (
	ResolvSolid     = "solid"
	ResolvBush      = "bush"
	ResolvCharacter = "character"
)
