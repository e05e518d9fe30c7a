package systems

import (
	"fmt"
	"image/color"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/fonts"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawMatchHUD renders scores, the participant list and the status overlay.
// code is shown in online matches; empty hides it.
func DrawMatchHUD(screen *ebiten.Image, v View, code string) {
	switch {
	case v.Rect != nil:
		drawMatchScores(screen, v.Rect)
	case v.Poly != nil:
		drawRoster(screen, v.Poly)
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())
	if code != "" {
		text.Draw(screen, "PARTY "+code, fonts.Small.Get(), 8, int(height)-8, cfg.Palette.Dim)
	}

	switch v.Status {
	case party.StatusPaused:
		drawOverlay(screen, "PAUSED", "P: Resume (host)   Esc: Leave", width, height)
	case party.StatusWaiting:
		drawOverlay(screen, "WAITING", "Waiting for the host to start", width, height)
	}
}

func drawMatchScores(screen *ebiten.Image, r *RectView) {
	width := float64(screen.Bounds().Dx())
	scoreFont := fonts.Score.Get()
	labelFont := fonts.Small.Get()
	colors := [2]color.RGBA{cfg.Palette.Left, cfg.Palette.Right}

	for i := range 2 {
		center := width / 4
		if i == 1 {
			center = width * 3 / 4
		}
		score := fmt.Sprintf("%d", r.Scores[i])
		text.Draw(screen, score, scoreFont, int(center)-fonts.Width(scoreFont, score)/2, int(cfg.HUDLayout.ScoreY), colors[i])
		text.Draw(screen, r.Labels[i], labelFont, int(center)-fonts.Width(labelFont, r.Labels[i])/2, int(cfg.HUDLayout.LabelY), colors[i])
	}
}

func drawRoster(screen *ebiten.Image, p *PolyView) {
	face := fonts.Small.Get()
	alive := 0
	for _, pl := range p.Players {
		if !pl.Eliminated {
			alive++
		}
	}
	text.Draw(screen, fmt.Sprintf("%d / %d LEFT", alive, len(p.Players)), face, 8, int(cfg.HUDLayout.LabelY), cfg.Palette.Text)

	for i, pl := range p.Players {
		name := pl.ID
		if pl.Self {
			name += " (you)"
		}
		clr := playerColor(pl.Slot)
		if pl.Eliminated {
			name += "  OUT"
			clr = cfg.Palette.Dim
		}
		text.Draw(screen, name, face, 8, int(cfg.HUDLayout.LabelY)+18*(i+1), clr)
	}
}

func drawOverlay(screen *ebiten.Image, title, hint string, width, height float64) {
	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.BlackOverlay, false)
	drawCentered(screen, title, fonts.Title.Get(), width, int(height/2), cfg.Yellow)
	drawCentered(screen, hint, fonts.Regular.Get(), width, int(height/2)+36, cfg.Palette.Text)
}
