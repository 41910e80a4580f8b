package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the overridable subset of the global configuration.
// Nil fields keep their built-in defaults.
type FileConfig struct {
	Width     *int    `yaml:"width"`
	Height    *int    `yaml:"height"`
	AssetRoot *string `yaml:"assetRoot"`
	MapDir    *string `yaml:"mapDir"`
	Level     *string `yaml:"level"`

	TileSize *int `yaml:"tileSize"`

	MoveSpeed *float64 `yaml:"moveSpeed"`
	AnimSpeed *int     `yaml:"animSpeed"`

	FlashColor  *[4]uint8 `yaml:"flashColor"`
	FlashFrames *int      `yaml:"flashFrames"`

	Debug *struct {
		Overlay   *bool `yaml:"overlay"`
		Inspector *bool `yaml:"inspector"`
		Clones    *bool `yaml:"clones"`
	} `yaml:"debug"`
}

// LoadFile reads a YAML overlay from path and applies it to the globals.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config YAML from %s: %w", path, err)
	}

	if err := validate(&fc); err != nil {
		return fmt.Errorf("invalid config in %s: %w", path, err)
	}

	apply(&fc)
	return nil
}

func validate(fc *FileConfig) error {
	if fc.TileSize != nil && (*fc.TileSize < BaseTileSize || *fc.TileSize%BaseTileSize != 0) {
		return fmt.Errorf("tileSize must be a positive multiple of %d, got %d", BaseTileSize, *fc.TileSize)
	}
	if fc.Width != nil && *fc.Width <= 0 {
		return errors.New("width must be positive")
	}
	if fc.Height != nil && *fc.Height <= 0 {
		return errors.New("height must be positive")
	}
	if fc.AnimSpeed != nil && *fc.AnimSpeed <= 0 {
		return errors.New("animSpeed must be positive")
	}
	return nil
}

func apply(fc *FileConfig) {
	if fc.Width != nil {
		C.Width = *fc.Width
	}
	if fc.Height != nil {
		C.Height = *fc.Height
	}
	if fc.AssetRoot != nil {
		C.AssetRoot = *fc.AssetRoot
	}
	if fc.MapDir != nil {
		C.MapDir = *fc.MapDir
	}
	if fc.Level != nil {
		C.Level = *fc.Level
	}
	if fc.TileSize != nil {
		Sprite.TileSize = *fc.TileSize
	}
	if fc.MoveSpeed != nil {
		Character.MoveSpeed = *fc.MoveSpeed
	}
	if fc.AnimSpeed != nil {
		Character.AnimSpeed = *fc.AnimSpeed
	}
	if fc.FlashColor != nil {
		c := *fc.FlashColor
		Flash.Color.R, Flash.Color.G, Flash.Color.B, Flash.Color.A = c[0], c[1], c[2], c[3]
	}
	if fc.FlashFrames != nil {
		Flash.Frames = *fc.FlashFrames
	}
	if fc.Debug != nil {
		if fc.Debug.Overlay != nil {
			Debug.Overlay = *fc.Debug.Overlay
		}
		if fc.Debug.Inspector != nil {
			Debug.Inspector = *fc.Debug.Inspector
		}
		if fc.Debug.Clones != nil {
			Debug.Clones = *fc.Debug.Clones
		}
	}
}
