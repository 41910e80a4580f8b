package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/charsprite/components"
	cfg "github.com/automoto/charsprite/config"
	"github.com/automoto/charsprite/sprites"
	"github.com/automoto/charsprite/systems"
	"github.com/automoto/charsprite/systems/factory"
	"github.com/automoto/charsprite/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// MapScene shows one level and its characters.
type MapScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	res          Resources
	levelIndex   int
	inspector    *ui.InspectorUI
	once         sync.Once
}

func NewMapScene(sc SceneChanger, res Resources, levelIndex int) *MapScene {
	return &MapScene{sceneChanger: sc, res: res, levelIndex: levelIndex}
}

func (ms *MapScene) Update() {
	ms.once.Do(ms.configure)
	ms.ecs.Update()

	settings := systems.GetOrCreateSettings(ms.ecs)
	if settings.Inspector {
		ms.inspector.Refresh(ms.ecs.World)
		ms.inspector.Update()
	}

	if levelEntry, ok := components.Level.First(ms.ecs.World); ok {
		level := components.Level.Get(levelEntry)
		if level.NextRequested {
			next := (level.LevelIndex + 1) % len(level.Levels)
			systems.ResetNavGrid()
			ms.sceneChanger.ChangeScene(NewMapScene(ms.sceneChanger, ms.res, next))
		}
	}
}

func (ms *MapScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ms.ecs == nil {
		return
	}
	ms.ecs.Draw(screen)

	if systems.GetOrCreateSettings(ms.ecs).Inspector {
		ms.inspector.Draw(screen)
	}
}

func (ms *MapScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateViewer) // Must run before UpdateCharacters
	ecs.AddSystem(systems.UpdateCharacters)
	ecs.AddSystem(systems.UpdateObjects)
	ecs.AddSystem(systems.UpdateBush)
	ecs.AddSystem(systems.UpdateCamera)

	// Loads finished since the last tick are delivered before sprites sync
	ecs.AddSystem(systems.UpdateAsync)
	ecs.AddSystem(systems.UpdateSprites)

	ecs.AddRenderer(cfg.Default, systems.DrawLevel)
	ecs.AddRenderer(cfg.Default, systems.DrawSprites)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)

	ms.ecs = ecs
	ms.inspector = ui.NewInspectorUI()

	// Create the level entity first; everything else is sized from it.
	levelEntry := factory.CreateLevelAtIndex(ms.ecs, ms.res.Levels, ms.levelIndex)
	level := components.Level.Get(levelEntry).CurrentLevel
	log.Printf("Opened map %s (%dx%d, chipset %q)", level.Name, level.Width, level.Height, level.Chipset)

	factory.CreateSpace(ms.ecs, level.Width, level.Height, level.TileWidth, level.TileHeight)

	for _, r := range level.SolidTiles {
		factory.CreateWall(ms.ecs, r.X, r.Y, r.W, r.H)
	}
	for _, b := range level.BushTiles {
		factory.CreateBush(ms.ecs, b.X, b.Y, b.W, b.H, b.Depth)
	}

	factory.CreateAssets(ms.ecs, ms.res.Handler, ms.res.Cache)

	deps := sprites.Deps{
		Files:    ms.res.Handler,
		Cache:    ms.res.Cache,
		Map:      systems.LevelRegistry{World: ms.ecs.World},
		TileSize: cfg.Sprite.TileSize,
	}

	selected := donburi.Null
	camX, camY := float64(level.Width)/2, float64(level.Height)/2
	for _, spawn := range level.Spawns {
		character := factory.CreateCharacter(ms.ecs, spawn, level.TileWidth, level.TileHeight, deps, cfg.Debug.Clones)
		if spawn.Player && selected == donburi.Null {
			selected = character.Entity()
			c := components.Character.Get(character)
			camX, camY = c.X, c.Y
		}
	}
	if selected == donburi.Null && len(level.Spawns) > 0 {
		log.Printf("Warning: map %s has no player spawn, selecting the first character", level.Name)
	}

	if len(level.Spawns) == 0 {
		log.Printf("Warning: map %s has no characters", level.Name)
	}

	factory.CreateCamera(ms.ecs, camX, camY, selected)
	if selected == donburi.Null {
		systems.SelectNext(ms.ecs.World)
	}
}
