package sprites

import (
	"image"
	"strings"

	"github.com/automoto/charsprite/config"
)

const bigSheetMarker = "$"

// Identity is what decides which image a sprite shows.
type Identity struct {
	TileID     int
	SheetName  string
	SheetIndex int
}

// unresolved never matches a live character, so the first sync always loads.
var unresolved = Identity{TileID: -1}

// UsesCharset reports whether the identity is drawn from a character sheet
// rather than a chipset tile.
func (id Identity) UsesCharset() bool {
	return id.SheetName != ""
}

// CharsetFrameSize computes one frame's size for sheet name with the given
// bitmap dimensions. Names starting with "$" are single-character sheets laid
// out like a full one, so frames scale with the bitmap; others use the
// configured base frame size.
func CharsetFrameSize(name string, bitmapW, bitmapH, tileSize int) (int, int) {
	ratio := config.TileRatio(tileSize)
	if strings.HasPrefix(name, bigSheetMarker) {
		return bitmapW / config.BlocksPerRow / config.FramesPerBlock * ratio,
			bitmapH / config.BlockRows / config.DirectionsCount * ratio
	}
	return config.Sprite.CharsetFrameWidth * ratio, config.Sprite.CharsetFrameHeight * ratio
}

// CharsetBlockRect is the block of sheet index inside a character sheet.
func CharsetBlockRect(index, frameW, frameH int) image.Rectangle {
	x := (index % config.BlocksPerRow) * frameW * config.FramesPerBlock
	y := (index / config.BlocksPerRow) * frameH * config.DirectionsCount
	return image.Rect(x, y, x+frameW*config.FramesPerBlock, y+frameH*config.DirectionsCount)
}

// AnimRect is the frame rect relative to a block.
func AnimRect(frame, direction, frameW, frameH int) image.Rectangle {
	x := frame * frameW
	y := direction * frameH
	return image.Rect(x, y, x+frameW, y+frameH)
}

// BushSplit converts a character's bush depth into the number of occluded
// pixels for a frame of the given height.
func BushSplit(height, bushDepth int) int {
	divisor := 4 - bushDepth
	if divisor > 3 {
		return 0
	}
	if divisor <= 0 {
		return height
	}
	return height / divisor
}
