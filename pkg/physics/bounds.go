// pkg/physics/bounds.go
package physics

import "math"

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// NewScreenRect returns a rect of the given dimensions centered on the
// origin, the coordinate space the simulation runs in.
func NewScreenRect(width, height float64) Rect {
	return Rect{Center: Vector2D{}, Width: width, Height: height}
}

// Valid reports whether the rect has positive, finite dimensions.
// Wrapping against an invalid rect is undefined, so callers must check
// before calling Wrap.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0 &&
		!math.IsInf(r.Width, 0) && !math.IsInf(r.Height, 0) &&
		!math.IsNaN(r.Width) && !math.IsNaN(r.Height)
}

// Contains reports whether the point lies inside the rect. Both edges
// are inclusive so that a freshly wrapped coordinate, which can land
// exactly on the boundary, still counts as inside.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X <= r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y <= r.Center.Y+r.Height/2
}

// Wrap maps a point that left the rect back in through the opposite
// edge, one full dimension per axis at most. A point that moved farther
// than one dimension in a single step is not fully recovered; callers
// keep per-step displacement below the rect size.
func (r Rect) Wrap(point Vector2D) Vector2D {
	halfW := r.Width / 2
	halfH := r.Height / 2

	if point.X > r.Center.X+halfW {
		point.X -= r.Width
	} else if point.X < r.Center.X-halfW {
		point.X += r.Width
	}

	if point.Y > r.Center.Y+halfH {
		point.Y -= r.Height
	} else if point.Y < r.Center.Y-halfH {
		point.Y += r.Height
	}

	return point
}
