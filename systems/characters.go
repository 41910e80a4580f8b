package systems

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/automoto/charsprite/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// walkCycle is the frame sequence of a walking character; frame 1 is the
// standing pose.
var walkCycle = [...]int{1, 2, 1, 0}

const standingFrame = 1

var directionDeltas = [...]image.Point{
	components.DirUp:    {X: 0, Y: -1},
	components.DirRight: {X: 1, Y: 0},
	components.DirDown:  {X: 0, Y: 1},
	components.DirLeft:  {X: -1, Y: 0},
}

// UpdateCharacters steps characters between cells. Idle characters start a
// step from, in order: input intent, a click-to-walk route, or wandering.
func UpdateCharacters(e *ecs.ECS) {
	tw, th := tileSize(e.World)

	tags.Character.Each(e.World, func(entry *donburi.Entry) {
		c := components.Character.Get(entry)
		obj := components.Object.Get(entry).Object

		if c.Moving {
			stepCharacter(c)
			return
		}

		dir := c.Intent
		c.Intent = components.NoIntent
		fromPath := false
		if dir == components.NoIntent && len(c.Path) > 0 {
			dir = nextPathDirection(c, tw, th)
			fromPath = dir != components.NoIntent
		}
		if dir == components.NoIntent && c.Wander && rand.Float64() < cfg.Character.WanderChance {
			dir = rand.IntN(len(directionDeltas))
		}

		if dir == components.NoIntent {
			stand(c)
			return
		}
		if TryMove(e.World, c, obj, dir) {
			if fromPath {
				c.Path = c.Path[1:]
			}
			stepCharacter(c)
			return
		}
		c.Path = nil
		stand(c)
	})
}

// TryMove turns c towards dir and starts a one-cell step if the target cell
// is inside the level and free of walls and other characters.
func TryMove(w donburi.World, c *components.CharacterData, obj *resolv.Object, dir int) bool {
	if dir < 0 || dir >= len(directionDeltas) {
		return false
	}
	c.Direction = dir

	tw, th := tileSize(w)
	d := directionDeltas[dir]
	dx, dy := float64(d.X)*tw, float64(d.Y)*th
	tx, ty := c.X+dx, c.Y+dy

	if level := currentLevel(w); level != nil {
		if tx < 0 || ty < 0 || tx+tw > float64(level.Width) || ty+th > float64(level.Height) {
			return false
		}
	}
	if check := obj.Check(dx, dy, tags.ResolvSolid, tags.ResolvCharacter); check != nil {
		return false
	}

	// Reserve the target cell right away so nobody else steps into it.
	obj.X += dx
	obj.Y += dy
	obj.Update()

	c.TargetX, c.TargetY = tx, ty
	c.Moving = true
	return true
}

func stepCharacter(c *components.CharacterData) {
	c.X = approach(c.X, c.TargetX, c.MoveSpeed)
	c.Y = approach(c.Y, c.TargetY, c.MoveSpeed)

	c.AnimCounter++
	if c.AnimCounter >= cfg.Character.AnimSpeed {
		c.AnimCounter = 0
		c.WalkStep = (c.WalkStep + 1) % len(walkCycle)
		c.AnimFrame = walkCycle[c.WalkStep]
	}

	if c.X == c.TargetX && c.Y == c.TargetY {
		c.Moving = false
	}
}

func stand(c *components.CharacterData) {
	c.AnimFrame = standingFrame
	c.AnimCounter = 0
	c.WalkStep = 0
}

func approach(v, target, speed float64) float64 {
	if math.Abs(target-v) <= speed {
		return target
	}
	if target > v {
		return v + speed
	}
	return v - speed
}

// nextPathDirection returns the direction of the next route cell, or
// NoIntent (dropping the route) if that cell is not adjacent.
func nextPathDirection(c *components.CharacterData, tw, th float64) int {
	cur := image.Pt(int(c.X/tw), int(c.Y/th))
	delta := c.Path[0].Sub(cur)
	for dir, d := range directionDeltas {
		if d == delta {
			return dir
		}
	}
	c.Path = nil
	return components.NoIntent
}
