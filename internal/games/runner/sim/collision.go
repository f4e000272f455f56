package sim

import "math"

// Window is a closed horizontal range of world x used to skip entities far
// from the camera.
type Window struct {
	Min, Max float64
}

// Everything is a window that admits every entity.
var Everything = Window{Min: -math.MaxFloat64, Max: math.MaxFloat64}

// Admits reports whether any part of r lies inside the window.
func (w Window) Admits(r Rect) bool {
	return r.Right() >= w.Min && r.X <= w.Max
}

// ResolveLanding lands the body on the first platform, in slice order, whose
// top it reached this tick. The bottom edge must sit within tolerance below
// the top, unless prevBottom (the bottom edge before the tick moved it) was
// at or above the top, in which case the sweep crossed the top and a fast
// fall lands too. It returns the index of the platform landed on, or -1.
//
// A landing snaps the body's bottom onto the platform top, zeroes the
// vertical velocity and restores the double-jump charge.
func ResolveLanding(b *Body, platforms []Platform, w Window, tolerance, prevBottom float64) int {
	if b.VelY < 0 {
		return -1
	}
	bottom := b.Bottom()
	for i := range platforms {
		p := &platforms[i]
		if !w.Admits(p.Rect) {
			continue
		}
		if b.X >= p.Right() || b.Right() <= p.X {
			continue
		}
		if bottom < p.Y {
			continue
		}
		if bottom > p.Y+tolerance && prevBottom > p.Y {
			continue
		}
		b.Y = p.Y - b.H
		b.VelY = 0
		b.Grounded = true
		b.CanDoubleJump = true
		return i
	}
	return -1
}

// CollectCoin marks the first uncollected coin overlapping body as
// collected and returns its index, or -1 when nothing was picked up.
func CollectCoin(body Rect, coins []Coin, w Window) int {
	for i := range coins {
		c := &coins[i]
		if c.Collected || !w.Admits(c.Rect) {
			continue
		}
		if body.Intersects(c.Rect) {
			c.Collected = true
			return i
		}
	}
	return -1
}
