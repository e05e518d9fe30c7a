package config

import (
	"image/color"
	"time"
)

// RectConfig contains the classic two-paddle arena tuning values.
type RectConfig struct {
	// Paddles
	PaddleHeight float64
	PaddleWidth  float64
	PaddleInset  float64 // Distance from the side wall to the paddle face
	PaddleSpeed  float64 // Pixels per frame

	// Ball
	BallSize         float64
	InitialBallSpeed float64
	MaxBallSpeed     float64
	SpeedUp          float64 // Multiplier applied on every paddle hit
	Deflection       float64 // Vertical velocity at the paddle tip (hit offset ±0.5)

	WinScore int
}

// PolyConfig contains the battle royale polygon arena tuning values.
type PolyConfig struct {
	Margin           float64 // Arena radius is min(w, h)/2 - Margin
	PaddleLength     float64
	PaddleWidth      float64
	PaddleStep       float64 // Normalised position change per frame
	BallSize         float64
	InitialBallSpeed float64
	MaxBallSpeed     float64
	SpeedUp          float64
	HitBand          float64 // How far past an edge (negative distance) a hit still counts
	Nudge            float64 // Push along the edge normal after a bounce
	MinSides         int
	MinPlayers       int
	MaxPlayers       int
}

// NetConfig contains party sync configuration.
type NetConfig struct {
	ServerAddr     string
	PaddleInterval time.Duration // Minimum spacing between paddle publishes
	BallInterval   time.Duration // Minimum spacing between ball publishes
	RequestTimeout time.Duration
	CodeAttempts   int
	SmoothGuest    bool          // Ease the guest ball toward snapshots
	SmoothDuration time.Duration // Tween length for guest smoothing
}

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
	TPS    int
}

// Global configuration instances
var C *Config
var Rect RectConfig
var Poly PolyConfig
var Net NetConfig
var Palette PaletteConfig
var Debug DebugConfig

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	LogLevel string
}

// PaletteConfig holds the neon colors used by the match scenes.
type PaletteConfig struct {
	Background color.RGBA
	Left       color.RGBA
	Right      color.RGBA
	Ball       color.RGBA
	Arena      color.RGBA
	Text       color.RGBA
	Dim        color.RGBA
	Players    []color.RGBA
}

func init() {
	C = &Config{
		Width:  800,
		Height: 500,
		TPS:    60,
	}

	Rect = RectConfig{
		PaddleHeight:     100,
		PaddleWidth:      12,
		PaddleInset:      30,
		PaddleSpeed:      8,
		BallSize:         14,
		InitialBallSpeed: 6,
		MaxBallSpeed:     12,
		SpeedUp:          1.05,
		Deflection:       10,
		WinScore:         5,
	}

	Poly = PolyConfig{
		Margin:           40,
		PaddleLength:     60,
		PaddleWidth:      10,
		PaddleStep:       0.05,
		BallSize:         12,
		InitialBallSpeed: 4,
		MaxBallSpeed:     10,
		SpeedUp:          1.05,
		HitBand:          20,
		Nudge:            10,
		MinSides:         3,
		MinPlayers:       3,
		MaxPlayers:       5,
	}

	Net = NetConfig{
		ServerAddr:     "localhost:7373",
		PaddleInterval: 50 * time.Millisecond,
		BallInterval:   30 * time.Millisecond,
		RequestTimeout: 5 * time.Second,
		CodeAttempts:   5,
		SmoothDuration: 30 * time.Millisecond,
	}

	Palette = PaletteConfig{
		Background: color.RGBA{R: 10, G: 10, B: 26, A: 255},
		Left:       color.RGBA{R: 0, G: 255, B: 255, A: 255},
		Right:      color.RGBA{R: 255, G: 0, B: 255, A: 255},
		Ball:       White,
		Arena:      color.RGBA{R: 60, G: 60, B: 120, A: 255},
		Text:       White,
		Dim:        DarkBlue,
		Players: []color.RGBA{
			{R: 0, G: 255, B: 255, A: 255},
			{R: 255, G: 0, B: 255, A: 255},
			{R: 255, G: 255, B: 0, A: 255},
			{R: 0, G: 255, B: 100, A: 255},
			{R: 255, G: 140, B: 0, A: 255},
		},
	}

	Debug = DebugConfig{LogLevel: "info"}
}

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255} // Selected menu items
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}  // Unselected menu items
)
