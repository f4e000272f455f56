// Package scene turns a simulation snapshot into a flat list of filled
// rectangles in window pixels. The window host only has to paint them.
package scene

import (
	"image/color"
	"math"

	"github.com/vovakirdan/tap-ninja/internal/core"
	"github.com/vovakirdan/tap-ninja/internal/games/runner/sim"
)

// Logical window size. One world unit is one pixel.
const (
	Width  = 1200
	Height = 600
)

// Rect is a filled rectangle.
type Rect struct {
	X, Y, W, H float32
	Color      color.RGBA
}

// Palette
var (
	Sky      = color.RGBA{0x1b, 0x1f, 0x3b, 0xff}
	Skyline  = color.RGBA{0x2c, 0x33, 0x5c, 0xff}
	Roof     = color.RGBA{0xd8, 0xd8, 0xe0, 0xff}
	Wall     = color.RGBA{0x4a, 0x4e, 0x5a, 0xff}
	Lit      = color.RGBA{0xf2, 0xd0, 0x6b, 0xff}
	Ninja    = color.RGBA{0xd9, 0x3b, 0xc8, 0xff}
	NinjaAir = color.RGBA{0xa3, 0x2b, 0x96, 0xff}
	Band     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	CoinDim  = color.RGBA{0xc9, 0x9a, 0x1e, 0xff}
	CoinLit  = color.RGBA{0xff, 0xe0, 0x5a, 0xff}
	Shade    = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

const (
	roofHeight  = 6
	blockWidth  = 90.0
	windowSize  = 8
	windowPitch = 20
)

// Build lays out one frame. Order is back to front: skyline, rooftops,
// coins, then the ninja. glint in [0, 1] brightens the coins.
func Build(s sim.Snapshot, glint float32) []Rect {
	out := make([]Rect, 0, 256)
	out = appendSkyline(out, s.BackgroundX)

	for _, p := range s.Platforms {
		out = appendRooftop(out, p, s.CameraX)
	}

	coin := lerpRGBA(CoinDim, CoinLit, glint)
	for _, c := range s.Coins {
		if c.Collected {
			continue
		}
		if r, ok := visible(c.Rect, s.CameraX, coin); ok {
			out = append(out, r)
		}
	}

	body := Ninja
	if !s.Body.Grounded {
		body = NinjaAir
	}
	if r, ok := visible(s.Body.Rect, s.CameraX, body); ok {
		out = append(out, r)
		// Headband
		out = append(out, Rect{X: r.X, Y: r.Y + 6, W: r.W, H: 4, Color: Band})
	}
	return out
}

// visible converts a world rectangle to window space, dropping it when it
// lies fully outside the window horizontally.
func visible(w sim.Rect, cameraX float64, c color.RGBA) (Rect, bool) {
	x := w.X - cameraX
	if x+w.W < 0 || x > Width {
		return Rect{}, false
	}
	return Rect{X: float32(x), Y: float32(w.Y), W: float32(w.W), H: float32(w.H), Color: c}, true
}

func appendRooftop(out []Rect, p sim.Platform, cameraX float64) []Rect {
	// The building extends from the roof to the bottom of the window.
	wall := sim.Rect{X: p.X, Y: p.Y, W: p.W, H: math.Max(Height-p.Y, p.H)}
	r, ok := visible(wall, cameraX, Wall)
	if !ok {
		return out
	}
	out = append(out, r)
	out = append(out, Rect{X: r.X, Y: r.Y, W: r.W, H: roofHeight, Color: Roof})

	seed := hash32(uint32(p.ID))
	for y := r.Y + 2*roofHeight; y+windowSize < Height; y += windowPitch {
		for x := r.X + windowSize; x+2*windowSize <= r.X+r.W; x += windowPitch {
			seed = hash32(seed)
			if seed%3 == 0 {
				out = append(out, Rect{X: x, Y: y, W: windowSize, H: windowSize, Color: Lit})
			}
		}
	}
	return out
}

func appendSkyline(out []Rect, offset float64) []Rect {
	first := math.Floor(offset / blockWidth)
	for i := 0; ; i++ {
		block := first + float64(i)
		x := block*blockWidth - offset
		if x > Width {
			return out
		}
		h := float64(hash32(uint32(int64(block)))%(Height/2)) + Height/6
		out = append(out, Rect{
			X: float32(x), Y: float32(Height - h),
			W: blockWidth - 4, H: float32(h),
			Color: Skyline,
		})
	}
}

// RGBA maps a terminal colour to the window palette, for overlay text
// boxes shared with the terminal renderer.
func RGBA(c core.Color) color.RGBA {
	switch c {
	case core.ColorRed, core.ColorBrightRed:
		return color.RGBA{0xe0, 0x4b, 0x4b, 0xff}
	case core.ColorGreen, core.ColorBrightGreen:
		return color.RGBA{0x5b, 0xd0, 0x6a, 0xff}
	case core.ColorYellow, core.ColorBrightYellow:
		return CoinLit
	case core.ColorCyan, core.ColorBrightCyan:
		return color.RGBA{0x52, 0xd6, 0xe0, 0xff}
	case core.ColorMagenta, core.ColorBrightMagenta:
		return Ninja
	case core.ColorGray:
		return Wall
	default:
		return Roof
	}
}

func lerpRGBA(a, b color.RGBA, t float32) color.RGBA {
	t = float32(core.ClampF(float64(t), 0, 1))
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
