package systems

import (
	"fmt"

	"github.com/automoto/charsprite/async"
	"github.com/automoto/charsprite/components"
	"github.com/automoto/charsprite/sprites"
	"github.com/yohamta/donburi"
)

// Inspection is what the inspector panel shows about the selected character.
type Inspection struct {
	Name      string
	Identity  sprites.Identity
	FrameW    int
	FrameH    int
	AnimFrame int
	Direction int
	X, Y      float64
	Z         int
	BushDepth int
	Occlusion int
	Opacity   int
	Visible   bool
	Flash     float32
	Clones    int
	Level     string
	Chipset   string
	Pending   int
	Request   async.BindingID
}

// Inspect collects the selected character's state. ok is false when nothing
// is selected.
func Inspect(w donburi.World) (Inspection, bool) {
	entry := SelectedEntry(w)
	if entry == nil {
		return Inspection{}, false
	}
	c := components.Character.Get(entry)

	in := Inspection{
		Name:      c.Name,
		AnimFrame: c.AnimFrame,
		Direction: c.Direction,
		BushDepth: c.BushDepth,
		Opacity:   c.Opacity,
		Visible:   c.Visible,
	}
	if entry.HasComponent(components.Sprite) {
		sd := components.Sprite.Get(entry)
		if s := sd.Main; s != nil {
			in.Identity = s.Identity()
			in.FrameW, in.FrameH = s.FrameSize()
			in.X, in.Y = s.Position()
			in.Z = s.Z()
			in.Occlusion = s.BushDepth()
			in.Flash = s.FlashLevel()
			in.Request = s.RequestID()
		}
		in.Clones = len(sd.Clones)
	}
	if level := currentLevel(w); level != nil {
		in.Level = level.Name
		in.Chipset = level.Chipset
	}
	if assetsEntry, ok := components.Assets.First(w); ok {
		if h := components.Assets.Get(assetsEntry).Handler; h != nil {
			in.Pending = h.Pending()
		}
	}
	return in, true
}

var directionNames = [...]string{"up", "right", "down", "left"}

// Lines formats the inspection for display, one fact per line.
func (in Inspection) Lines() []string {
	graphic := fmt.Sprintf("tile %d", in.Identity.TileID)
	if in.Identity.UsesCharset() {
		graphic = fmt.Sprintf("%s #%d", in.Identity.SheetName, in.Identity.SheetIndex)
	}
	dir := "?"
	if in.Direction >= 0 && in.Direction < len(directionNames) {
		dir = directionNames[in.Direction]
	}
	visible := "shown"
	if !in.Visible {
		visible = "hidden"
	}

	return []string{
		in.Name,
		"graphic: " + graphic,
		fmt.Sprintf("frame: %d %s (%dx%d)", in.AnimFrame, dir, in.FrameW, in.FrameH),
		fmt.Sprintf("screen: %.0f,%.0f z=%d", in.X, in.Y, in.Z),
		fmt.Sprintf("bush: %d (%dpx)", in.BushDepth, in.Occlusion),
		fmt.Sprintf("opacity: %d %s", in.Opacity, visible),
		fmt.Sprintf("flash: %.2f clones: %d", in.Flash, in.Clones),
		fmt.Sprintf("map: %s [%s]", in.Level, in.Chipset),
		fmt.Sprintf("request #%d, pending loads: %d", in.Request, in.Pending),
	}
}
