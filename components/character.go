package components

import (
	"image"
	"image/color"

	"github.com/yohamta/donburi"
)

// Sheet rows, also the facing of a character.
const (
	DirUp = iota
	DirRight
	DirDown
	DirLeft
)

// NoIntent means the character has not been asked to step this tick.
const NoIntent = -1

// Layer decides how a character sorts against the map and other characters.
type Layer int

const (
	LayerBelow Layer = iota
	LayerSame
	LayerAbove
)

// ParseLayer maps a Tiled property value to a Layer. Unknown values are
// treated as "same".
func ParseLayer(s string) Layer {
	switch s {
	case "below":
		return LayerBelow
	case "above":
		return LayerAbove
	default:
		return LayerSame
	}
}

func (l Layer) String() string {
	switch l {
	case LayerBelow:
		return "below"
	case LayerAbove:
		return "above"
	default:
		return "same"
	}
}

// CharacterData is the logical state of a map character.
type CharacterData struct {
	Name string

	// Graphic identity. An empty SpriteName means TileID is drawn instead.
	TileID      int
	SpriteName  string
	SpriteIndex int
	// StashedSprite keeps the sheet name while the tile graphic is toggled on.
	StashedSprite string

	Direction int
	AnimFrame int

	// Top-left of the character's cell in map pixels, interpolated while
	// stepping from one cell to the next.
	X, Y             float64
	TargetX, TargetY float64
	Moving           bool
	MoveSpeed        float64
	AnimCounter      int
	WalkStep         int

	Intent int           // direction requested by input, NoIntent when idle
	Path   []image.Point // remaining cells of a click-to-walk route
	Wander bool
	Player bool

	FlashColor    color.RGBA
	FlashTimeLeft int

	Visible   bool
	Opacity   int
	BushDepth int
	Layer     Layer
}

var Character = donburi.NewComponentType[CharacterData]()
