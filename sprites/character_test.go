package sprites

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/automoto/charsprite/async"
	"github.com/hajimehoshi/ebiten/v2"
)

type fakeCharacter struct {
	tileID    int
	name      string
	index     int
	frame     int
	direction int

	flashColor color.RGBA
	flashLeft  int

	visible   bool
	opacity   int
	bushDepth int

	x, y float64
	z    int
}

func newFakeCharacter(name string, index int) *fakeCharacter {
	return &fakeCharacter{name: name, index: index, visible: true, opacity: 255, frame: 1, direction: 2}
}

func (c *fakeCharacter) TileID() int                 { return c.tileID }
func (c *fakeCharacter) SpriteName() string          { return c.name }
func (c *fakeCharacter) SpriteIndex() int            { return c.index }
func (c *fakeCharacter) AnimFrame() int              { return c.frame }
func (c *fakeCharacter) SpriteDirection() int        { return c.direction }
func (c *fakeCharacter) IsFlashPending() bool        { return c.flashLeft > 0 }
func (c *fakeCharacter) FlashColor() color.RGBA      { return c.flashColor }
func (c *fakeCharacter) FlashTimeLeft() int          { return c.flashLeft }
func (c *fakeCharacter) SetFlashTimeLeft(frames int) { c.flashLeft = frames }
func (c *fakeCharacter) Visible() bool               { return c.visible }
func (c *fakeCharacter) Opacity() int                { return c.opacity }
func (c *fakeCharacter) BushDepth() int              { return c.bushDepth }

func (c *fakeCharacter) ScreenX(shift bool) float64 {
	if shift {
		return c.x + 1000
	}
	return c.x
}

func (c *fakeCharacter) ScreenY(shift bool) float64 {
	if shift {
		return c.y + 1000
	}
	return c.y
}

func (c *fakeCharacter) ScreenZ(shift bool) int {
	if shift {
		return c.z + 1000
	}
	return c.z
}

type fakeMap struct{ chipset string }

func (m *fakeMap) ChipsetName() string { return m.chipset }

type fakeCache struct {
	charsets map[string]*ebiten.Image
	tile     *ebiten.Image

	charsetCalls []string
	tileCalls    []int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		charsets: map[string]*ebiten.Image{
			"Hero":   ebiten.NewImage(288, 256),
			"Guard":  ebiten.NewImage(288, 256),
			"$Big":   ebiten.NewImage(576, 512),
			"$Small": ebiten.NewImage(72, 128),
		},
		tile: ebiten.NewImage(16, 16),
	}
}

func (c *fakeCache) Charset(name string) *ebiten.Image {
	c.charsetCalls = append(c.charsetCalls, name)
	if img, ok := c.charsets[name]; ok {
		return img
	}
	return ebiten.NewImage(288, 256)
}

func (c *fakeCache) Tile(chipset string, tileID int) *ebiten.Image {
	c.tileCalls = append(c.tileCalls, tileID)
	return c.tile
}

// gatedLoader blocks every load until release is called.
type gatedLoader struct {
	mu    sync.Mutex
	gate  chan struct{}
	calls []string
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{gate: make(chan struct{})}
}

func (l *gatedLoader) Load(ctx context.Context, category, name string) error {
	l.mu.Lock()
	l.calls = append(l.calls, category+"/"+name)
	gate := l.gate
	l.mu.Unlock()

	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *gatedLoader) release() { close(l.gate) }

func (l *gatedLoader) requested() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// countingFiles records every file request a sprite makes.
type countingFiles struct {
	files    FileRequester
	requests []string
}

func (c *countingFiles) RequestFile(category, name string) *async.FileRequest {
	c.requests = append(c.requests, category+"/"+name)
	return c.files.RequestFile(category, name)
}

type fixture struct {
	loader  *gatedLoader
	handler *async.Handler
	cache   *fakeCache
	level   *fakeMap
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loader := newGatedLoader()
	h := async.NewHandler(loader)
	t.Cleanup(h.Close)
	return &fixture{loader: loader, handler: h, cache: newFakeCache(), level: &fakeMap{chipset: "World"}}
}

func (f *fixture) deps() Deps {
	return Deps{Files: f.handler, Cache: f.cache, Map: f.level, TileSize: 16}
}

func TestCharsetSpriteResolves(t *testing.T) {
	f := newFixture(t)
	ch := newFakeCharacter("Hero", 5)

	s := NewCharacterSprite(ch, CloneNone, f.deps())

	if got := s.Identity(); got != (Identity{TileID: 0, SheetName: "Hero", SheetIndex: 5}) {
		t.Fatalf("identity not adopted: %+v", got)
	}
	if s.Bitmap() != nil {
		t.Fatal("bitmap must stay empty while the sheet is pending")
	}
	if w, h := s.FrameSize(); w != 0 || h != 0 {
		t.Fatalf("frame size should be 0x0 while pending, got %dx%d", w, h)
	}

	f.loader.release()
	f.handler.Wait()

	if s.Bitmap() != f.cache.charsets["Hero"] {
		t.Fatal("charset bitmap not bound")
	}
	if w, h := s.FrameSize(); w != 24 || h != 32 {
		t.Errorf("frame size = %dx%d, want 24x32", w, h)
	}
	if ox, oy := s.Origin(); ox != 12 || oy != 32 {
		t.Errorf("origin = %d,%d, want 12,32", ox, oy)
	}
	// Index 5: second row, second column of blocks.
	if got, want := s.SpriteRect(), image.Rect(72, 128, 144, 256); got != want {
		t.Errorf("sprite rect = %v, want %v", got, want)
	}
	// Frame 1 facing down (row 2).
	if got, want := s.SrcRect(), image.Rect(24, 64, 48, 96); got != want {
		t.Errorf("src rect = %v, want %v", got, want)
	}
	if got, want := s.EffectiveRect(), image.Rect(96, 192, 120, 224); got != want {
		t.Errorf("effective rect = %v, want %v", got, want)
	}
}

func TestFrameTracksCharacterEveryUpdate(t *testing.T) {
	f := newFixture(t)
	f.loader.release()
	ch := newFakeCharacter("Hero", 0)
	s := NewCharacterSprite(ch, CloneNone, f.deps())
	f.handler.Wait()

	ch.frame, ch.direction = 2, 3
	s.Update()

	if got, want := s.SrcRect(), image.Rect(48, 96, 72, 128); got != want {
		t.Errorf("src rect = %v, want %v", got, want)
	}
	if n := len(f.loader.requested()); n != 1 {
		t.Errorf("frame changes must not issue requests, got %d loads", n)
	}
}

func TestBigSheetFrameSize(t *testing.T) {
	tests := []struct {
		name     string
		tileSize int
		wantW    int
		wantH    int
	}{
		{"$Big", 16, 48, 64},
		{"$Small", 16, 6, 16},
		{"Hero", 32, 48, 64},
		{"$Big", 32, 96, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.loader.release()
			deps := f.deps()
			deps.TileSize = tt.tileSize

			s := NewCharacterSprite(newFakeCharacter(tt.name, 0), CloneNone, deps)
			f.handler.Wait()

			if w, h := s.FrameSize(); w != tt.wantW || h != tt.wantH {
				t.Errorf("frame size = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTileSpriteResolves(t *testing.T) {
	f := newFixture(t)
	ch := newFakeCharacter("", 0)
	ch.tileID = 7

	s := NewCharacterSprite(ch, CloneNone, f.deps())
	f.loader.release()
	f.handler.Wait()

	if got := f.loader.requested(); len(got) != 1 || got[0] != "ChipSet/World" {
		t.Fatalf("expected one ChipSet/World request, got %v", got)
	}
	if len(f.cache.tileCalls) != 1 || f.cache.tileCalls[0] != 7 {
		t.Errorf("expected Tile(World, 7), got %v", f.cache.tileCalls)
	}
	if s.Bitmap() != f.cache.tile {
		t.Error("tile bitmap not bound")
	}
	if got := s.SrcRect(); got != image.Rect(0, 0, 16, 16) {
		t.Errorf("src rect = %v", got)
	}
	if ox, oy := s.Origin(); ox != 8 || oy != 16 {
		t.Errorf("origin = %d,%d, want 8,16", ox, oy)
	}
}

func TestTileSpriteWithoutChipset(t *testing.T) {
	f := newFixture(t)
	f.level.chipset = ""
	ch := newFakeCharacter("", 0)
	ch.tileID = 3

	s := NewCharacterSprite(ch, CloneNone, f.deps())

	// Empty names complete inside Start, so nothing is pending.
	if s.Bitmap() == nil {
		t.Fatal("expected the blank fallback tile")
	}
	if w, h := s.Bitmap().Bounds().Dx(), s.Bitmap().Bounds().Dy(); w != 16 || h != 16 {
		t.Errorf("fallback tile is %dx%d, want 16x16", w, h)
	}
	if len(f.cache.tileCalls) != 0 {
		t.Errorf("cache must not be consulted without a chipset, got %v", f.cache.tileCalls)
	}
	if len(f.loader.requested()) != 0 {
		t.Error("loader must not run for an empty chipset name")
	}
}

func TestIdentityChangeIssuesOneRequest(t *testing.T) {
	f := newFixture(t)
	f.loader.release()
	ch := newFakeCharacter("Hero", 0)
	s := NewCharacterSprite(ch, CloneNone, f.deps())
	f.handler.Wait()

	for i := 0; i < 3; i++ {
		s.Update()
	}
	if n := len(f.loader.requested()); n != 1 {
		t.Fatalf("unchanged identity re-requested: %d loads", n)
	}

	ch.index = 2
	s.Update()
	s.Update()
	f.handler.Wait()

	if got := s.SpriteRect(); got != image.Rect(144, 0, 216, 128) {
		t.Errorf("sprite rect after index change = %v", got)
	}
	// Same sheet file, so the handler resolves it from the completed request.
	if n := len(f.loader.requested()); n != 1 {
		t.Errorf("expected the sheet to be loaded once, got %d loads", n)
	}
}

func TestStaleContinuationIsDropped(t *testing.T) {
	f := newFixture(t)
	ch := newFakeCharacter("Hero", 0)
	s := NewCharacterSprite(ch, CloneNone, f.deps())

	// Switch to a tile graphic before the charset arrives.
	ch.name = ""
	ch.tileID = 4
	s.Update()

	f.loader.release()
	f.handler.Wait()

	if s.Bitmap() != f.cache.tile {
		t.Fatal("sprite should show the tile, not the superseded charset")
	}
	for _, name := range f.cache.charsetCalls {
		if name == "Hero" {
			t.Error("stale charset continuation touched the drawable")
		}
	}
	if w, h := s.FrameSize(); w != 0 || h != 0 {
		t.Errorf("frame size changed by a stale continuation: %dx%d", w, h)
	}
}

func TestPendingSheetKeepsPreviousBitmap(t *testing.T) {
	f := newFixture(t)
	f.loader.release()
	ch := newFakeCharacter("Hero", 0)
	s := NewCharacterSprite(ch, CloneNone, f.deps())
	f.handler.Wait()
	hero := s.Bitmap()

	// A new loader gate keeps the next sheet pending.
	f.loader.mu.Lock()
	f.loader.gate = make(chan struct{})
	f.loader.mu.Unlock()

	ch.name = "Guard"
	s.Update()
	f.handler.Update()

	if s.Bitmap() != hero {
		t.Error("bitmap should not change until the new sheet is ready")
	}
	if s.Identity().SheetName != "Guard" {
		t.Error("identity should be adopted immediately")
	}

	f.loader.release()
	f.handler.Wait()
	if s.Bitmap() != f.cache.charsets["Guard"] {
		t.Error("new sheet not bound after it resolved")
	}
}

func TestFlashIsConsumed(t *testing.T) {
	f := newFixture(t)
	f.loader.release()
	ch := newFakeCharacter("Hero", 0)
	s := NewCharacterSprite(ch, CloneNone, f.deps())
	f.handler.Wait()

	ch.flashColor = color.RGBA{R: 255, A: 255}
	ch.flashLeft = 4
	s.Update()

	if ch.flashLeft != 0 {
		t.Errorf("flash time left should be reset, got %d", ch.flashLeft)
	}
	if s.FlashLevel() != 1 {
		t.Errorf("flash should start at full intensity, got %v", s.FlashLevel())
	}

	s.Update()
	if lvl := s.FlashLevel(); lvl <= 0 || lvl >= 1 {
		t.Errorf("flash should decay, got %v", lvl)
	}
	for i := 0; i < 4; i++ {
		s.Update()
	}
	if s.FlashLevel() != 0 {
		t.Errorf("flash should end after its duration, got %v", s.FlashLevel())
	}
}

func TestVisibilityAndOpacity(t *testing.T) {
	f := newFixture(t)
	f.loader.release()
	ch := newFakeCharacter("Hero", 0)
	s := NewCharacterSprite(ch, CloneNone, f.deps())

	ch.opacity = 100
	s.Update()
	if s.Opacity() != 100 {
		t.Errorf("opacity = %d, want 100", s.Opacity())
	}

	ch.visible = false
	ch.opacity = 20
	s.Update()
	if s.Visible() {
		t.Error("sprite should be hidden")
	}
	if s.Opacity() != 100 {
		t.Errorf("opacity must not change while hidden, got %d", s.Opacity())
	}
}

func TestPositionAndClones(t *testing.T) {
	tests := []struct {
		name  string
		clone Clone
		wantX float64
		wantY float64
		wantZ int
	}{
		{"main", CloneNone, 10, 20, 30},
		{"x clone", CloneX, 1010, 20, 30},
		{"y clone", CloneY, 10, 1020, 1030},
		{"xy clone", CloneX | CloneY, 1010, 1020, 1030},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ch := newFakeCharacter("Hero", 0)
			ch.x, ch.y, ch.z = 10, 20, 30

			s := NewCharacterSprite(ch, tt.clone, f.deps())

			x, y := s.Position()
			if x != tt.wantX || y != tt.wantY || s.Z() != tt.wantZ {
				t.Errorf("got (%v, %v, %d), want (%v, %v, %d)", x, y, s.Z(), tt.wantX, tt.wantY, tt.wantZ)
			}
		})
	}
}

func TestBushDepthFromCharacter(t *testing.T) {
	f := newFixture(t)
	f.loader.release()
	ch := newFakeCharacter("Hero", 0)
	s := NewCharacterSprite(ch, CloneNone, f.deps())
	f.handler.Wait()

	tests := []struct {
		depth int
		want  int
	}{
		{0, 0},
		{1, 10},
		{2, 16},
		{3, 32},
	}
	for _, tt := range tests {
		ch.bushDepth = tt.depth
		s.Update()
		if got := s.BushDepth(); got != tt.want {
			t.Errorf("bush depth %d: occlusion = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestSetCharacter(t *testing.T) {
	f := newFixture(t)
	f.loader.release()
	hero := newFakeCharacter("Hero", 0)
	s := NewCharacterSprite(hero, CloneNone, f.deps())
	f.handler.Wait()

	guard := newFakeCharacter("Guard", 0)
	guard.x = 99
	s.SetCharacter(guard)
	if s.Character() != Character(guard) {
		t.Fatal("character not rebound")
	}

	s.Update()
	f.handler.Wait()

	if s.Bitmap() != f.cache.charsets["Guard"] {
		t.Error("rebound character's sheet not loaded")
	}
	if x, _ := s.Position(); x != 99 {
		t.Errorf("position should follow the new character, got %v", x)
	}
}

// countedDeps routes requests through a counter. Loads complete at once, so
// every request after the first is answered inside Start.
func countedDeps(t *testing.T) (*fixture, *countingFiles, Deps) {
	t.Helper()
	f := newFixture(t)
	f.loader.release()
	files := &countingFiles{files: f.handler}
	deps := f.deps()
	deps.Files = files
	return f, files, deps
}

func TestTileIDChangeIssuesOneRequest(t *testing.T) {
	f, files, deps := countedDeps(t)
	ch := newFakeCharacter("", 0)
	ch.tileID = 7
	s := NewCharacterSprite(ch, CloneNone, deps)
	f.handler.Wait()

	if len(files.requests) != 1 || files.requests[0] != "ChipSet/World" {
		t.Fatalf("initial requests = %v", files.requests)
	}
	firstBinding := s.RequestID()

	ch.tileID = 8
	s.Update()

	if len(files.requests) != 2 {
		t.Fatalf("tile id change made %d requests, want 1", len(files.requests)-1)
	}
	if s.RequestID() != firstBinding+1 {
		t.Errorf("tile id change bound %d callbacks, want 1", s.RequestID()-firstBinding)
	}
	if got := f.cache.tileCalls; len(got) != 2 || got[1] != 8 {
		t.Errorf("tile lookups = %v, want the last one for tile 8", got)
	}
	if s.Identity() != (Identity{TileID: 8}) {
		t.Errorf("identity = %+v", s.Identity())
	}
}

func TestUnchangedIdentityIssuesNoRequest(t *testing.T) {
	tests := []struct {
		name string
		ch   func() *fakeCharacter
	}{
		{"charset", func() *fakeCharacter { return newFakeCharacter("Hero", 3) }},
		{"tile", func() *fakeCharacter {
			ch := newFakeCharacter("", 0)
			ch.tileID = 7
			return ch
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, files, deps := countedDeps(t)
			ch := tt.ch()
			s := NewCharacterSprite(ch, CloneNone, deps)
			f.handler.Wait()
			binding := s.RequestID()

			// Frame, direction and position changes are not identity changes.
			for i := 0; i < 5; i++ {
				ch.frame = i % 3
				ch.direction = i % 4
				ch.x += 4
				s.Update()
			}

			if len(files.requests) != 1 {
				t.Errorf("requests = %v, want only the initial one", files.requests)
			}
			if s.RequestID() != binding {
				t.Errorf("binding moved from %d to %d", binding, s.RequestID())
			}
		})
	}
}

func TestSetCharacterRequestsOnlyOnIdentityChange(t *testing.T) {
	f, files, deps := countedDeps(t)
	hero := newFakeCharacter("Hero", 1)
	s := NewCharacterSprite(hero, CloneNone, deps)
	f.handler.Wait()
	binding := s.RequestID()

	twin := newFakeCharacter("Hero", 1)
	twin.x = 40
	s.SetCharacter(twin)
	s.Update()

	if len(files.requests) != 1 || s.RequestID() != binding {
		t.Fatalf("rebinding to the same identity requested again: %v", files.requests)
	}
	if x, _ := s.Position(); x != 40 {
		t.Errorf("position should follow the new character, got %v", x)
	}

	s.SetCharacter(newFakeCharacter("Hero", 2))
	s.Update()

	if len(files.requests) != 2 || files.requests[1] != "CharSet/Hero" {
		t.Fatalf("requests = %v, want exactly one more for the new index", files.requests)
	}
	if s.RequestID() != binding+1 {
		t.Errorf("bound %d callbacks, want 1", s.RequestID()-binding)
	}
	if got, want := s.SpriteRect(), image.Rect(144, 0, 216, 128); got != want {
		t.Errorf("sprite rect = %v, want %v", got, want)
	}
}
