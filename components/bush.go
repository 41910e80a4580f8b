package components

import "github.com/yohamta/donburi"

// BushData marks a tile that hides the lower part of characters on it.
type BushData struct {
	Depth int
}

var Bush = donburi.NewComponentType[BushData]()
