package systems

import (
	"image"
	"math"

	astar "github.com/beefsack/go-astar"
	"github.com/solarlune/resolv"

	"github.com/automoto/charsprite/components"
	"github.com/automoto/charsprite/tags"
	"github.com/yohamta/donburi"
)

// NavGrid represents the walkable cells of the level
type NavGrid struct {
	Width, Height int
	CellW, CellH  float64
	Nodes         [][]*NavNode // 2D grid of nodes
}

// NavNode represents a single cell in the navigation grid
// Implements astar.Pather interface
type NavNode struct {
	X, Y     int
	Walkable bool
	Grid     *NavGrid
}

// PathNeighbors returns adjacent walkable nodes (implements astar.Pather).
// Characters step in four directions only.
func (n *NavNode) PathNeighbors() []astar.Pather {
	var neighbors []astar.Pather
	for _, d := range directionDeltas {
		nx, ny := n.X+d.X, n.Y+d.Y
		if nx < 0 || nx >= n.Grid.Width || ny < 0 || ny >= n.Grid.Height {
			continue
		}
		if neighbor := n.Grid.Nodes[ny][nx]; neighbor.Walkable {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

// PathNeighborCost returns the movement cost between adjacent nodes (implements astar.Pather)
func (n *NavNode) PathNeighborCost(to astar.Pather) float64 {
	return 1
}

// PathEstimatedCost returns the Manhattan distance to the target (implements astar.Pather)
func (n *NavNode) PathEstimatedCost(to astar.Pather) float64 {
	toNode := to.(*NavNode)
	return math.Abs(float64(toNode.X-n.X)) + math.Abs(float64(toNode.Y-n.Y))
}

// CreateNavGrid builds navigation grid from the solid objects in a resolv Space
func CreateNavGrid(space *resolv.Space, levelWidth, levelHeight int, cellW, cellH float64) *NavGrid {
	gridW := int(float64(levelWidth) / cellW)
	gridH := int(float64(levelHeight) / cellH)

	grid := &NavGrid{
		Width:  gridW,
		Height: gridH,
		CellW:  cellW,
		CellH:  cellH,
		Nodes:  make([][]*NavNode, gridH),
	}

	for y := 0; y < gridH; y++ {
		grid.Nodes[y] = make([]*NavNode, gridW)
		for x := 0; x < gridW; x++ {
			worldX := float64(x) * cellW
			worldY := float64(y) * cellH

			// Probe the cell with a slightly smaller object
			testObj := resolv.NewObject(worldX+2, worldY+2, cellW-4, cellH-4)
			space.Add(testObj)
			walkable := testObj.Check(0, 0, tags.ResolvSolid) == nil
			space.Remove(testObj)

			grid.Nodes[y][x] = &NavNode{X: x, Y: y, Walkable: walkable, Grid: grid}
		}
	}

	return grid
}

// FindPath returns the cells from start (exclusive) to goal (inclusive), or
// nil when goal is unreachable or outside the grid.
func (g *NavGrid) FindPath(start, goal image.Point) []image.Point {
	if !g.contains(start) || !g.contains(goal) || start == goal {
		return nil
	}
	startNode := g.Nodes[start.Y][start.X]
	goalNode := g.Nodes[goal.Y][goal.X]
	if !goalNode.Walkable {
		return nil
	}

	path, _, found := astar.Path(startNode, goalNode)
	if !found {
		return nil
	}

	cells := make([]image.Point, 0, len(path))
	for _, p := range path {
		node := p.(*NavNode)
		cells = append(cells, image.Pt(node.X, node.Y))
	}
	// The route may come back goal-first.
	if cells[0] != start {
		for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
			cells[i], cells[j] = cells[j], cells[i]
		}
	}
	return cells[1:]
}

func (g *NavGrid) contains(p image.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

var cachedNavGrid *NavGrid
var navGridLevel string

// getOrCreateNavGrid returns the nav grid of the current level, building it
// on first use.
func getOrCreateNavGrid(w donburi.World) *NavGrid {
	level := currentLevel(w)
	if level == nil {
		return nil
	}
	if cachedNavGrid != nil && navGridLevel == level.Name {
		return cachedNavGrid
	}
	spaceEntry, ok := components.Space.First(w)
	if !ok {
		return nil
	}
	tw, th := tileSize(w)
	cachedNavGrid = CreateNavGrid(components.Space.Get(spaceEntry), level.Width, level.Height, tw, th)
	navGridLevel = level.Name
	return cachedNavGrid
}

// ResetNavGrid drops the cached grid; the next lookup rebuilds it.
func ResetNavGrid() {
	cachedNavGrid = nil
	navGridLevel = ""
}
