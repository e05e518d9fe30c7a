// Package physics simulates the ball and paddles for both arena shapes.
// Integration is frame-coupled: one Step advances one rendered frame.
package physics

import (
	"math"

	"github.com/Olle-svg/ponggamebyolle/shared/gamemath"
)

// Rand is the random source used for serves. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Ball is the single ball of a match. Speed is the scalar the velocity is
// rescaled to after every paddle bounce.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Speed  float64
}

// Pos returns the ball centre.
func (b *Ball) Pos() gamemath.Vec2 { return gamemath.V(b.X, b.Y) }

// Vel returns the ball velocity.
func (b *Ball) Vel() gamemath.Vec2 { return gamemath.V(b.VX, b.VY) }

func (b *Ball) setVel(v gamemath.Vec2) {
	b.VX, b.VY = v.X, v.Y
}

// Advance integrates the ball by one frame.
func (b *Ball) Advance() {
	b.X += b.VX
	b.Y += b.VY
}

// Magnitude is the current length of the velocity vector.
func (b *Ball) Magnitude() float64 {
	return math.Hypot(b.VX, b.VY)
}

// SpeedUp multiplies the scalar speed by factor, caps it at max and rescales
// the velocity to the new speed. A zero velocity is left alone.
func (b *Ball) SpeedUp(factor, max float64) {
	b.Speed = math.Min(b.Speed*factor, max)
	if b.Magnitude() == 0 {
		return
	}
	b.setVel(b.Vel().WithLen(b.Speed))
}

// ServeRect places the ball at centre heading left or right at speed, with a
// random vertical component of up to half the horizontal one.
func ServeRect(b *Ball, center gamemath.Vec2, speed float64, rng Rand) {
	dir := 1.0
	if rng.Float64() <= 0.5 {
		dir = -1
	}
	v := gamemath.V(speed*dir, speed*(rng.Float64()-0.5))
	*b = Ball{X: center.X, Y: center.Y, Speed: speed}
	b.setVel(v.WithLen(speed))
}

// ServeRadial places the ball at centre heading in a uniformly random direction.
func ServeRadial(b *Ball, center gamemath.Vec2, speed float64, rng Rand) {
	angle := rng.Float64() * 2 * math.Pi
	*b = Ball{X: center.X, Y: center.Y, Speed: speed}
	b.setVel(gamemath.FromAngle(angle, speed))
}
