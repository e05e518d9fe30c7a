package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Render layers of a scene.
const (
	Default ecs.LayerID = iota
	HUD
)

// MenuConfig contains the layout of the menu style screens.
type MenuConfig struct {
	TitleY         float64
	MenuStartY     float64
	MenuItemHeight float64
	MenuItemGap    float64

	BackgroundColor   color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
}

// HUDConfig contains the in-match overlay layout.
type HUDConfig struct {
	ScoreY     float64
	LabelY     float64
	CenterDash float32 // Length of one dash of the centre line
}

var Menu MenuConfig
var HUDLayout HUDConfig

func init() {
	Menu = MenuConfig{
		TitleY:            110,
		MenuStartY:        170,
		MenuItemHeight:    24,
		MenuItemGap:       14,
		BackgroundColor:   Palette.Background,
		TitleColor:        Palette.Left,
		TextColorNormal:   DarkBlue,
		TextColorSelected: LightBlue,
	}

	HUDLayout = HUDConfig{
		ScoreY:     56,
		LabelY:     24,
		CenterDash: 12,
	}
}
