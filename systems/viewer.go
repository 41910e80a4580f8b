package systems

import (
	"image"
	"sort"

	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/automoto/charsprite/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var moveActions = [...]cfg.ActionID{
	components.DirUp:    cfg.ActionMoveUp,
	components.DirRight: cfg.ActionMoveRight,
	components.DirDown:  cfg.ActionMoveDown,
	components.DirLeft:  cfg.ActionMoveLeft,
}

// UpdateViewer applies input actions to the selected character and the
// viewer settings. Must run AFTER UpdateInput and BEFORE UpdateCharacters.
func UpdateViewer(e *ecs.ECS) {
	input := getOrCreateInput(e)
	settings := GetOrCreateSettings(e)

	settingsChanged := false
	if GetAction(input, cfg.ActionToggleDebug).JustPressed {
		settings.Debug = !settings.Debug
		settingsChanged = true
	}
	if GetAction(input, cfg.ActionToggleInspector).JustPressed {
		settings.Inspector = !settings.Inspector
		settingsChanged = true
	}
	if settingsChanged {
		SaveCurrentSettings(e, settings)
	}

	if GetAction(input, cfg.ActionNextLevel).JustPressed {
		if levelEntry, ok := components.Level.First(e.World); ok {
			components.Level.Get(levelEntry).NextRequested = true
		}
	}

	if GetAction(input, cfg.ActionSelectNext).JustPressed {
		SelectNext(e.World)
	}

	c := SelectedCharacter(e.World)
	if c == nil {
		return
	}

	for dir, action := range moveActions {
		if GetAction(input, action).Pressed {
			c.Intent = dir
			c.Path = nil
			break
		}
	}

	if input.Clicked {
		walkTo(e.World, c, input.ClickX, input.ClickY)
	}

	if GetAction(input, cfg.ActionFlash).JustPressed {
		c.FlashColor = cfg.Flash.Color
		c.FlashTimeLeft = cfg.Flash.Frames
	}
	if GetAction(input, cfg.ActionToggleVisible).JustPressed {
		c.Visible = !c.Visible
	}
	if GetAction(input, cfg.ActionCycleOpacity).JustPressed {
		c.Opacity = nextOpacity(c.Opacity)
	}
	if GetAction(input, cfg.ActionNextSheetIndex).JustPressed {
		c.SpriteIndex = (c.SpriteIndex + 1) % cfg.Character.SheetIndexMax
	}
	if GetAction(input, cfg.ActionToggleGraphic).JustPressed {
		ToggleGraphic(c)
	}
}

// ToggleGraphic switches c between its character sheet and its tile graphic.
func ToggleGraphic(c *components.CharacterData) {
	if c.SpriteName != "" {
		c.StashedSprite = c.SpriteName
		c.SpriteName = ""
		return
	}
	c.SpriteName = c.StashedSprite
	c.StashedSprite = ""
}

func nextOpacity(current int) int {
	steps := cfg.Character.OpacitySteps
	if len(steps) == 0 {
		return current
	}
	for i, o := range steps {
		if o == current {
			return steps[(i+1)%len(steps)]
		}
	}
	return steps[0]
}

// SelectNext moves the selection to the next character by name, wrapping.
func SelectNext(w donburi.World) {
	cameraEntry, ok := components.Selection.First(w)
	if !ok {
		return
	}
	selection := components.Selection.Get(cameraEntry)

	type named struct {
		name   string
		entity donburi.Entity
	}
	var all []named
	tags.Character.Each(w, func(entry *donburi.Entry) {
		all = append(all, named{name: components.Character.Get(entry).Name, entity: entry.Entity()})
	})
	if len(all) == 0 {
		return
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].name < all[j].name })

	next := 0
	for i, n := range all {
		if n.entity == selection.Entity {
			next = (i + 1) % len(all)
			break
		}
	}
	selection.Entity = all[next].entity
}

// walkTo routes c to the map cell under the screen point (sx, sy).
func walkTo(w donburi.World, c *components.CharacterData, sx, sy int) {
	grid := getOrCreateNavGrid(w)
	if grid == nil {
		return
	}
	ox, oy := DisplayOrigin(w)
	tw, th := tileSize(w)

	goal := image.Pt(int((float64(sx)+ox)/tw), int((float64(sy)+oy)/th))
	from := image.Pt(int(c.TargetX/tw), int(c.TargetY/th))
	c.Path = grid.FindPath(from, goal)
}
