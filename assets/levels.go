package assets

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lafriks/go-tiled"
	"github.com/lafriks/go-tiled/render"
)

// Tiled layer and object group names understood by the loader.
const (
	LayerSolid        = "solid"
	LayerBush         = "bush"
	GroupCharacters   = "Characters"
	defaultBushDepth  = 1
	defaultDirection  = "down"
	propertyRender    = "render"
	propertyBushDepth = "bushDepth"
)

// Level is a parsed TMX map.
type Level struct {
	Name       string
	Chipset    string // stem of the first tileset image, "" when none
	Width      int    // pixels
	Height     int    // pixels
	TileWidth  int
	TileHeight int
	SolidTiles []Rect
	BushTiles  []BushTile
	Spawns     []CharacterSpawn
	Background *ebiten.Image // nil until RenderBackground

	tmx  *tiled.Map
	fsys fs.FS
}

// Rect is an axis-aligned area in map pixels.
type Rect struct {
	X, Y, W, H float64
}

// BushTile is a tile that partially hides characters standing on it.
type BushTile struct {
	Rect
	Depth int
}

// CharacterSpawn describes a character placed in the Characters object group.
type CharacterSpawn struct {
	Name      string
	CellX     int
	CellY     int
	Charset   string // empty = tile graphic
	Index     int
	TileID    int
	Direction string // "up", "right", "down", "left"
	Layer     string // "below", "same", "above"
	Wander    bool
	Player    bool
}

type LevelLoader struct {
	fsys fs.FS
}

func NewLevelLoader(fsys fs.FS) *LevelLoader {
	return &LevelLoader{fsys: fsys}
}

// MustLoadLevels loads every level in dir and panics if there are none.
func (l *LevelLoader) MustLoadLevels(dir string) []*Level {
	levels, err := l.LoadLevels(dir)
	if err != nil {
		panic(err)
	}
	return levels
}

// LoadLevels loads every .tmx file in dir, sorted by name.
func (l *LevelLoader) LoadLevels(dir string) ([]*Level, error) {
	pattern := path.Join(dir, "*.tmx")
	matches, err := fs.Glob(l.fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmx files found in %s", dir)
	}
	sort.Strings(matches)

	levels := make([]*Level, 0, len(matches))
	for _, p := range matches {
		level, err := l.LoadLevel(p)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// LoadLevel parses a single TMX file.
func (l *LevelLoader) LoadLevel(levelPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(levelPath, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", levelPath, err)
	}

	level := &Level{
		Name:       stem(levelPath),
		Width:      levelMap.Width * levelMap.TileWidth,
		Height:     levelMap.Height * levelMap.TileHeight,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
		tmx:        levelMap,
		fsys:       l.fsys,
	}

	if len(levelMap.Tilesets) > 0 && levelMap.Tilesets[0].Image != nil {
		level.Chipset = stem(levelMap.Tilesets[0].Image.Source)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != LayerSolid && layer.Name != LayerBush {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				rect := Rect{X: float64(x) * tileW, Y: float64(y) * tileH, W: tileW, H: tileH}

				if layer.Name == LayerSolid {
					level.SolidTiles = append(level.SolidTiles, rect)
					continue
				}

				depth := defaultBushDepth
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if d := tilesetTile.Properties.GetInt(propertyBushDepth); d > 0 {
						depth = d
					}
				}
				level.BushTiles = append(level.BushTiles, BushTile{Rect: rect, Depth: depth})
			}
		}
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != GroupCharacters {
			continue
		}
		for _, o := range og.Objects {
			spawn := CharacterSpawn{
				Name:      o.Name,
				CellX:     int(o.X) / levelMap.TileWidth,
				CellY:     int(o.Y) / levelMap.TileHeight,
				Charset:   o.Properties.GetString("charset"),
				Index:     o.Properties.GetInt("index"),
				TileID:    o.Properties.GetInt("tile"),
				Direction: o.Properties.GetString("direction"),
				Layer:     o.Properties.GetString("layer"),
				Wander:    o.Properties.GetBool("wander"),
				Player:    o.Properties.GetBool("player"),
			}
			if spawn.Direction == "" {
				spawn.Direction = defaultDirection
			}
			level.Spawns = append(level.Spawns, spawn)
		}
	}

	// Keep the player first so it is selected by default.
	sort.SliceStable(level.Spawns, func(i, j int) bool {
		return level.Spawns[i].Player && !level.Spawns[j].Player
	})

	return level, nil
}

// RenderBackground draws every tile layer marked with the "render" property
// into level.Background.
func (level *Level) RenderBackground() error {
	if level.Background != nil {
		return nil
	}
	renderer, err := render.NewRendererWithFileSystem(level.tmx, level.fsys)
	if err != nil {
		return fmt.Errorf("create renderer for %s: %w", level.Name, err)
	}

	background := ebiten.NewImage(level.Width, level.Height)
	for i, layer := range level.tmx.Layers {
		if !layer.Properties.GetBool(propertyRender) || layer.Opacity <= 0 {
			continue
		}
		if err := renderer.RenderLayer(i); err != nil {
			return fmt.Errorf("render layer %s of %s: %w", layer.Name, level.Name, err)
		}

		layerImage := ebiten.NewImageFromImage(renderer.Result)
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(layer.Opacity))
		background.DrawImage(layerImage, op)
		// Dispose temporary image to free GPU memory
		layerImage.Deallocate()
		renderer.Clear()
	}

	level.Background = background
	return nil
}

func stem(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
