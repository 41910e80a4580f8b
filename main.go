package main

import (
	"flag"
	"image"
	"log"
	"os"

	"github.com/automoto/charsprite/assets"
	"github.com/automoto/charsprite/async"
	"github.com/automoto/charsprite/config"
	"github.com/automoto/charsprite/fonts"
	"github.com/automoto/charsprite/scenes"
	"github.com/automoto/charsprite/systems"
	"github.com/automoto/charsprite/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(res scenes.Resources) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	start := factory.LevelIndexByName(res.Levels, config.C.Level)
	g.scene = scenes.NewMapScene(g, res, start)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in defaults")
	assetRoot := flag.String("assets", "", "directory holding CharSet/, ChipSet/ and Map/")
	level := flag.String("level", "", "map to open first (file name without .tmx)")
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	clones := flag.Bool("clones", false, "draw wrap-around clone sprites")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettingsGlobal(saved)
	}

	// Command line flags win over saved settings
	if *assetRoot != "" {
		config.C.AssetRoot = *assetRoot
	}
	if *level != "" {
		config.C.Level = *level
	}
	if *debug {
		config.Debug.Overlay = true
	}
	if *clones {
		config.Debug.Clones = true
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	fsys := os.DirFS(config.C.AssetRoot)
	cache := assets.NewCache(fsys, config.Sprite.TileSize)
	handler := async.NewHandler(cache)
	defer handler.Close()

	levels := assets.NewLevelLoader(fsys).MustLoadLevels(config.C.MapDir)

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("charsprite")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	res := scenes.Resources{Handler: handler, Cache: cache, Levels: levels}
	if err := ebiten.RunGame(NewGame(res)); err != nil {
		log.Printf("Game exited with error: %v", err)
	}
}
