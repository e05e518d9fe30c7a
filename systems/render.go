package systems

import (
	"image/color"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/fonts"
	"github.com/Olle-svg/ponggamebyolle/shared/physics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawMatch renders the board of a view; DrawMatchHUD goes on top.
func DrawMatch(screen *ebiten.Image, v View) {
	b := screen.Bounds()
	vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), cfg.Palette.Background, false)

	switch {
	case v.Rect != nil:
		drawRect(screen, v.Rect)
	case v.Poly != nil:
		drawPoly(screen, v.Poly)
	}
}

func drawRect(screen *ebiten.Image, r *RectView) {
	a := r.Arena
	rc := a.Config()

	// Centre line
	x := float32(a.Width / 2)
	dash := cfg.HUDLayout.CenterDash
	for y := float32(0); y < float32(a.Height); y += 2 * dash {
		vector.StrokeLine(screen, x, y, x, y+dash, 2, cfg.Palette.Dim, false)
	}

	colors := [2]color.RGBA{cfg.Palette.Left, cfg.Palette.Right}
	for _, side := range []physics.Side{physics.SideLeft, physics.SideRight} {
		vector.FillRect(screen,
			float32(a.PaddleX(side)), float32(r.Paddles[side]),
			float32(rc.PaddleWidth), float32(rc.PaddleHeight),
			colors[side], false)
	}

	vector.FillCircle(screen, float32(r.Ball.X), float32(r.Ball.Y), float32(rc.BallSize/2), cfg.Palette.Ball, true)
}

func playerColor(slot int) color.RGBA {
	return cfg.Palette.Players[slot%len(cfg.Palette.Players)]
}

func drawPoly(screen *ebiten.Image, p *PolyView) {
	a := p.Arena
	pc := a.Config()

	owners := make(map[int]PolyPlayer, len(p.Players))
	for _, pl := range p.Players {
		if pl.Edge >= 0 {
			owners[pl.Edge] = pl
		}
	}

	label := fonts.Small.Get()
	for i, e := range a.Edges {
		pl, owned := owners[i]
		if !owned {
			vector.StrokeLine(screen, float32(e.A.X), float32(e.A.Y), float32(e.B.X), float32(e.B.Y), 3, cfg.Palette.Arena, true)
			continue
		}

		clr := playerColor(pl.Slot)
		vector.StrokeLine(screen, float32(e.A.X), float32(e.A.Y), float32(e.B.X), float32(e.B.Y), 1, clr, true)

		start, end := a.PaddleSpan(e, pl.Paddle)
		ps, pe := e.PointAt(start), e.PointAt(end)
		width := float32(pc.PaddleWidth)
		if pl.Self {
			width += 2
		}
		vector.StrokeLine(screen, float32(ps.X), float32(ps.Y), float32(pe.X), float32(pe.Y), width, clr, true)

		name := pl.ID
		if pl.Self {
			name = "YOU"
		}
		at := e.Midpoint().Add(e.Normal.Scale(-18))
		text.Draw(screen, name, label, int(at.X)-fonts.Width(label, name)/2, int(at.Y), clr)
	}

	vector.FillCircle(screen, float32(p.Ball.X), float32(p.Ball.Y), float32(pc.BallSize/2), cfg.Palette.Ball, true)
}
