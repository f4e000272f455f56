package sim

import (
	"math"

	"github.com/vovakirdan/tap-ninja/internal/config"
)

// JumpKind tells which impulse a jump request applied.
type JumpKind int

const (
	JumpNone JumpKind = iota
	JumpPrimary
	JumpDouble
)

// Integrate applies gravity to an airborne body, clamped to the terminal
// fall speed, then moves it vertically by its velocity. scale is the
// fraction of a 60 Hz step being simulated. Horizontal position and the
// contact flags are left to the caller.
func Integrate(b *Body, p config.RunnerPhysics, scale float64) {
	if !b.Grounded {
		b.VelY = math.Min(b.VelY+p.Gravity*scale, p.MaxFallSpeed)
	}
	b.Y += b.VelY * scale
}

// Jump applies the primary impulse from the ground or the double-jump
// impulse in the air while the charge remains.
func Jump(b *Body, p config.RunnerPhysics) JumpKind {
	switch {
	case b.Grounded:
		b.VelY = p.JumpImpulse
		b.Grounded = false
		b.CanDoubleJump = true
		return JumpPrimary
	case b.CanDoubleJump:
		b.VelY = p.DoubleJumpImpulse
		b.CanDoubleJump = false
		return JumpDouble
	default:
		return JumpNone
	}
}
