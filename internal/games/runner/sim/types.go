package sim

// Rect is an axis-aligned rectangle in world units. Y grows downward.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether r and o strictly overlap on both axes.
// Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Body is the player: a box with vertical velocity and contact flags.
type Body struct {
	Rect
	VelY          float64
	Grounded      bool
	CanDoubleJump bool
	Running       bool // set once the run has started; the body only advances while true
}

// Platform is a rooftop the body can land on.
type Platform struct {
	Rect
	ID int
}

// Coin is a pickup floating above a platform.
type Coin struct {
	Rect
	ID        int
	Collected bool
}
