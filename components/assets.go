package components

import (
	"github.com/automoto/charsprite/assets"
	"github.com/automoto/charsprite/async"
	"github.com/yohamta/donburi"
)

// AssetsData gives systems access to the shared loader and image cache.
type AssetsData struct {
	Handler *async.Handler
	Cache   *assets.Cache
}

var Assets = donburi.NewComponentType[AssetsData]()
