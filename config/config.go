package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the single render layer used by the map scene.
const Default ecs.LayerID = 0

// Config holds general viewer configuration
type Config struct {
	Width     int
	Height    int
	AssetRoot string // directory containing CharSet/, ChipSet/ and Map/
	MapDir    string // directory (relative to AssetRoot) scanned for .tmx files
	Level     string // level stem to open first, empty = first in sorted order
}

// SpriteConfig contains sheet geometry shared by every character sprite
type SpriteConfig struct {
	// TileSize is the rendered size of one map cell in pixels. Frame
	// dimensions are scaled by TileSize/16.
	TileSize int

	// Fixed frame size of ordinary charsets at ratio 1.
	CharsetFrameWidth  int
	CharsetFrameHeight int
}

// CharacterConfig contains logical character defaults
type CharacterConfig struct {
	MoveSpeed      float64 // pixels per tick while stepping between cells
	AnimSpeed      int     // ticks per walk animation step
	WanderChance   float64 // probability per idle tick that a wandering NPC moves
	DefaultOpacity int
	OpacitySteps   []int // values cycled by the opacity key
	SheetIndexMax  int   // number of blocks in a regular charset (4x2)
}

// FlashConfig contains flash effect defaults for the flash key
type FlashConfig struct {
	Color  color.RGBA
	Frames int
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64 // How fast camera follows the selected character (0.0-1.0)
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	Overlay   bool // draw resolv shapes and identity labels
	Inspector bool // show the inspector panel
	Clones    bool // spawn wrap-around clone sprites for every character
}

// ZConfig controls draw ordering of character layers
type ZConfig struct {
	Below int
	Same  int
	Above int
}

// Global configuration instances
var C *Config
var Sprite SpriteConfig
var Character CharacterConfig
var Flash FlashConfig
var Camera CameraConfig
var Debug DebugConfig
var Z ZConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Cyan         = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Grey         = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:     640,
		Height:    480,
		AssetRoot: "assets",
		MapDir:    "Map",
	}

	Sprite = SpriteConfig{
		TileSize:           16,
		CharsetFrameWidth:  24,
		CharsetFrameHeight: 32,
	}

	Character = CharacterConfig{
		MoveSpeed:      1.0,
		AnimSpeed:      8,
		WanderChance:   0.01,
		DefaultOpacity: 255,
		OpacitySteps:   []int{255, 160, 80, 0},
		SheetIndexMax:  BlocksPerRow * BlockRows,
	}

	Flash = FlashConfig{
		Color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Frames: 30,
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.15,
	}

	Debug = DebugConfig{
		Overlay:   false,
		Inspector: true,
		Clones:    false,
	}

	// Same-layer characters sort against each other by screen Y, so the
	// layer bases are spaced wider than any screen.
	Z = ZConfig{
		Below: 0,
		Same:  1 << 16,
		Above: 2 << 16,
	}
}

// Character sheets hold BlocksPerRow x BlockRows blocks, each FramesPerBlock
// frames wide and DirectionsCount rows tall.
const (
	BaseTileSize    = 16
	BlocksPerRow    = 4
	BlockRows       = 2
	FramesPerBlock  = 3
	DirectionsCount = 4
)

// TileRatio is the scale of tileSize relative to the 16px base grid.
func TileRatio(tileSize int) int {
	return tileSize / BaseTileSize
}

// CharsetSheetSize is the size of a full ordinary charset at tileSize.
func CharsetSheetSize(tileSize int) (int, int) {
	ratio := TileRatio(tileSize)
	return Sprite.CharsetFrameWidth * ratio * FramesPerBlock * BlocksPerRow,
		Sprite.CharsetFrameHeight * ratio * DirectionsCount * BlockRows
}
