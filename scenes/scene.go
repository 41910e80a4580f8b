package scenes

import (
	"github.com/automoto/charsprite/assets"
	"github.com/automoto/charsprite/async"
)

type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Resources outlive a single map scene so sheets stay cached across levels.
type Resources struct {
	Handler *async.Handler
	Cache   *assets.Cache
	Levels  []*assets.Level
}
