package config

import "testing"

func TestCharsetSheetSize(t *testing.T) {
	tests := []struct {
		tileSize, wantW, wantH int
	}{
		{16, 288, 256},
		{32, 576, 512},
		{48, 864, 768},
	}
	for _, tt := range tests {
		w, h := CharsetSheetSize(tt.tileSize)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("CharsetSheetSize(%d) = %dx%d, want %dx%d", tt.tileSize, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestTileRatio(t *testing.T) {
	if TileRatio(BaseTileSize) != 1 || TileRatio(64) != 4 {
		t.Errorf("TileRatio(16) = %d, TileRatio(64) = %d", TileRatio(BaseTileSize), TileRatio(64))
	}
}
