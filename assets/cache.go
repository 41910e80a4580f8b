package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"log"
	"path"
	"sync"

	"github.com/automoto/charsprite/config"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/sync/singleflight"
)

// Asset categories, also the directory names under the asset root.
const (
	CategoryCharset = "CharSet"
	CategoryChipset = "ChipSet"
)

var imageExtensions = []string{".png", ".bmp"}

type tileKey struct {
	chipset string
	id      int
}

// Cache turns sheet names into ready-to-draw images. It is shared by every
// sprite.
//
// Load decodes on any goroutine; Charset and Tile create GPU images and must
// be called from the game goroutine. Neither ever returns nil: unreadable
// files degrade to transparent placeholders.
type Cache struct {
	fsys     fs.FS
	tileSize int

	mu      sync.RWMutex
	decoded map[string]image.Image
	failed  map[string]error
	images  map[string]*ebiten.Image
	tiles   map[tileKey]*ebiten.Image
	blanks  map[image.Point]*ebiten.Image

	group singleflight.Group
}

// NewCache creates a cache reading images from fsys, slicing chipsets into
// tileSize cells.
func NewCache(fsys fs.FS, tileSize int) *Cache {
	return &Cache{
		fsys:     fsys,
		tileSize: tileSize,
		decoded:  make(map[string]image.Image),
		failed:   make(map[string]error),
		images:   make(map[string]*ebiten.Image),
		tiles:    make(map[tileKey]*ebiten.Image),
		blanks:   make(map[image.Point]*ebiten.Image),
	}
}

func cacheKey(category, name string) string {
	return category + "/" + name
}

// Load decodes category/name into memory. Concurrent loads of the same file
// share one decode. A file that failed once keeps failing without being
// re-read.
func (c *Cache) Load(ctx context.Context, category, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := cacheKey(category, name)
	c.mu.RLock()
	_, ready := c.decoded[key]
	_, converted := c.images[key]
	err, failed := c.failed[key]
	c.mu.RUnlock()
	if failed {
		return err
	}
	if ready || converted {
		return nil
	}

	_, err, _ = c.group.Do(key, func() (interface{}, error) {
		img, err := c.decode(category, name)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.failed[key] = err
			return nil, err
		}
		c.decoded[key] = img
		return nil, nil
	})
	return err
}

func (c *Cache) decode(category, name string) (image.Image, error) {
	candidates := []string{path.Join(category, name)}
	if path.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range imageExtensions {
			candidates = append(candidates, path.Join(category, name+ext))
		}
	}

	var lastErr error
	for _, p := range candidates {
		data, err := fs.ReadFile(c.fsys, p)
		if err != nil {
			lastErr = err
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
		}
		return applyColorKey(img), nil
	}
	return nil, fmt.Errorf("failed to open image %s/%s: %w", category, name, lastErr)
}

// applyColorKey makes palette index 0 transparent, the RPG Maker convention
// for paletted sheets.
func applyColorKey(img image.Image) image.Image {
	p, ok := img.(*image.Paletted)
	if !ok || len(p.Palette) == 0 {
		return img
	}
	pal := make(color.Palette, len(p.Palette))
	copy(pal, p.Palette)
	pal[0] = color.Transparent
	return &image.Paletted{Pix: p.Pix, Stride: p.Stride, Rect: p.Rect, Palette: pal}
}

// image returns the GPU image for category/name, decoding synchronously if
// no async load ran first. Returns nil when the file is unusable.
func (c *Cache) image(category, name string) *ebiten.Image {
	key := cacheKey(category, name)

	c.mu.RLock()
	img, ok := c.images[key]
	c.mu.RUnlock()
	if ok {
		return img
	}

	if err := c.Load(context.Background(), category, name); err != nil {
		c.mu.Lock()
		_, warned := c.images[key]
		c.images[key] = nil
		c.mu.Unlock()
		if !warned {
			log.Printf("Warning: [assets] using placeholder for %s: %v", key, err)
		}
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[key]; ok {
		return img
	}
	img = ebiten.NewImageFromImage(c.decoded[key])
	c.images[key] = img
	delete(c.decoded, key)
	return img
}

// Charset returns the character sheet called name.
func (c *Cache) Charset(name string) *ebiten.Image {
	if img := c.image(CategoryCharset, name); img != nil {
		return img
	}
	return c.Blank(config.CharsetSheetSize(c.tileSize))
}

// Tile returns the tileSize cell tileID of chipset, counted row-major.
func (c *Cache) Tile(chipset string, tileID int) *ebiten.Image {
	key := tileKey{chipset: chipset, id: tileID}

	c.mu.RLock()
	tile, ok := c.tiles[key]
	c.mu.RUnlock()
	if ok {
		return tile
	}

	sheet := c.image(CategoryChipset, chipset)
	if sheet == nil {
		return c.Blank(c.tileSize, c.tileSize)
	}

	rect, ok := TileRect(sheet.Bounds(), c.tileSize, tileID)
	if !ok {
		return c.Blank(c.tileSize, c.tileSize)
	}
	tile = sheet.SubImage(rect).(*ebiten.Image)

	c.mu.Lock()
	c.tiles[key] = tile
	c.mu.Unlock()
	return tile
}

// TileRect locates tileID inside a chipset with the given bounds.
func TileRect(bounds image.Rectangle, tileSize, tileID int) (image.Rectangle, bool) {
	if tileSize <= 0 || tileID < 0 {
		return image.Rectangle{}, false
	}
	cols := bounds.Dx() / tileSize
	rows := bounds.Dy() / tileSize
	if cols == 0 || tileID >= cols*rows {
		return image.Rectangle{}, false
	}
	x := bounds.Min.X + (tileID%cols)*tileSize
	y := bounds.Min.Y + (tileID/cols)*tileSize
	return image.Rect(x, y, x+tileSize, y+tileSize), true
}

// Blank returns a shared transparent image of the given size.
func (c *Cache) Blank(w, h int) *ebiten.Image {
	size := image.Pt(w, h)

	c.mu.RLock()
	img, ok := c.blanks[size]
	c.mu.RUnlock()
	if ok {
		return img
	}

	img = ebiten.NewImage(w, h)
	c.mu.Lock()
	c.blanks[size] = img
	c.mu.Unlock()
	return img
}
