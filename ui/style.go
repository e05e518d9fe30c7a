package ui

import (
	"bytes"
	"image/color"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// faces are the text faces every screen draws with, stored as text.Face
// for ebitenui.
type faces struct {
	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

func (f *faces) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	f.titleFace = &text.GoTextFace{Source: fontSource, Size: 28}
	f.normalFace = &text.GoTextFace{Source: fontSource, Size: 16}
	f.smallFace = &text.GoTextFace{Source: fontSource, Size: 13}
}

var (
	panelColor   = color.RGBA{20, 20, 40, 255}
	rowColor     = color.RGBA{30, 30, 55, 255}
	statusColor  = color.RGBA{255, 200, 100, 255}
	disabledText = color.RGBA{100, 100, 100, 255}
)

// screenRoot is the full-screen backdrop with a centred vertical column.
func screenRoot() (root, content *widget.Container) {
	root = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.Menu.BackgroundColor)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	content = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	root.AddChild(content)
	return root, content
}

func rowContainer(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
	)
}

func buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.RGBA{40, 50, 90, 255}),
		Hover:    image.NewNineSliceColor(color.RGBA{60, 80, 130, 255}),
		Pressed:  image.NewNineSliceColor(color.RGBA{30, 35, 70, 255}),
		Disabled: image.NewNineSliceColor(color.RGBA{35, 35, 45, 255}),
	}
}

func startButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.RGBA{20, 100, 100, 255}),
		Hover:    image.NewNineSliceColor(color.RGBA{30, 140, 140, 255}),
		Pressed:  image.NewNineSliceColor(color.RGBA{15, 80, 80, 255}),
		Disabled: image.NewNineSliceColor(color.RGBA{35, 45, 45, 255}),
	}
}

func buttonText() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     cfg.White,
		Hover:    cfg.LightBlue,
		Pressed:  cfg.DarkBlue,
		Disabled: disabledText,
	}
}

func (f *faces) button(label string, w, h int, img *widget.ButtonImage, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(w, h)),
		widget.ButtonOpts.Image(img),
		widget.ButtonOpts.Text(label, &f.normalFace, buttonText()),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func (f *faces) label(s string, face *text.Face, clr color.Color) *widget.Label {
	return widget.NewLabel(widget.LabelOpts.Text(s, face, &widget.LabelColor{Idle: clr}))
}
