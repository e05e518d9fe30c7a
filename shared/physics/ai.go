package physics

import (
	"github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/gamemath"
)

// AI drives the right paddle in single player.
type AI struct {
	Tuning config.BotDifficultyConfig
}

// NewAI returns a tracker for the given difficulty.
func NewAI(d config.BotDifficulty) *AI {
	return &AI{Tuning: config.BotSettings(d)}
}

// Update returns the new top Y of the AI paddle. While the ball approaches the
// paddle centre follows it with a deadband; otherwise it drifts home at a
// reduced speed.
func (ai *AI) Update(arena *RectArena, paddleY float64, ball Ball) float64 {
	cfg := arena.Config()
	speed := cfg.PaddleSpeed * ai.Tuning.SpeedFactor
	center := paddleY + cfg.PaddleHeight/2

	if ball.VX > 0 {
		switch {
		case center < ball.Y-ai.Tuning.Deadband:
			paddleY += speed
		case center > ball.Y+ai.Tuning.Deadband:
			paddleY -= speed
		}
		return arena.ClampPaddle(paddleY)
	}

	home := arena.CenterPaddleY()
	if paddleY < home-ai.Tuning.ReturnTolerance || paddleY > home+ai.Tuning.ReturnTolerance {
		paddleY = gamemath.MoveToward(paddleY, home, speed*ai.Tuning.ReturnFactor)
	}
	return paddleY
}
