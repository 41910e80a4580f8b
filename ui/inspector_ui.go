package ui

import (
	"bytes"

	cfg "github.com/automoto/charsprite/config"
	"github.com/automoto/charsprite/systems"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/yohamta/donburi"
	"golang.org/x/image/font/gofont/goregular"
)

const inspectorLines = 9

// InspectorUI is the panel describing the selected character.
type InspectorUI struct {
	UI *ebitenui.UI

	panel  *widget.Container
	labels [inspectorLines]*widget.Label
	face   text.Face
}

// NewInspectorUI creates the inspector panel with ebitenui
func NewInspectorUI() *InspectorUI {
	iu := &InspectorUI{}
	iu.loadFonts()
	iu.buildUI()
	return iu
}

func (iu *InspectorUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	iu.face = &text.GoTextFace{
		Source: fontSource,
		Size:   11,
	}
}

func (iu *InspectorUI) buildUI() {
	// Root container with AnchorLayout; transparent so the map shows through
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	iu.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.BlackOverlay)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
			widget.RowLayoutOpts.Spacing(2),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	for i := range iu.labels {
		labelColor := cfg.White
		if i == 0 {
			labelColor = cfg.Yellow
		}
		iu.labels[i] = widget.NewLabel(
			widget.LabelOpts.Text("", &iu.face, &widget.LabelColor{
				Idle: labelColor,
			}),
		)
		iu.panel.AddChild(iu.labels[i])
	}

	rootContainer.AddChild(iu.panel)

	iu.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

// Refresh copies the selected character's state into the labels.
func (iu *InspectorUI) Refresh(w donburi.World) {
	in, ok := systems.Inspect(w)
	lines := []string{"no selection"}
	if ok {
		lines = in.Lines()
	}
	for i, label := range iu.labels {
		label.Label = ""
		if i < len(lines) {
			label.Label = lines[i]
		}
	}
}

func (iu *InspectorUI) Update() {
	iu.UI.Update()
}

func (iu *InspectorUI) Draw(screen *ebiten.Image) {
	iu.UI.Draw(screen)
}
