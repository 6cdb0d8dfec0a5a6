// apps/go-server/internal/placement/placement.go
//
// Random-rejection placement of rectangles inside a bounded area.
// A candidate is rejected when it intersects an already placed rectangle or
// crosses any of the area's four edges. Sampling is capped; dense layouts
// return ErrNoRoom together with the last candidate instead of spinning.

package placement

import (
	"errors"
	"math/rand/v2"
)

// DefaultMaxAttempts bounds sampling when Placer.MaxAttempts is zero.
const DefaultMaxAttempts = 256

var ErrNoRoom = errors.New("placement: no free position found")

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Centered returns a w×h rectangle centered on p.
func Centered(p Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Intersects reports whether r and o overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return !(r.Right() < o.X || r.X > o.Right() || r.Bottom() < o.Y || r.Y > o.Bottom())
}

// RandomPoint samples a point uniformly inside r.
func (r Rect) RandomPoint(rng *rand.Rand) Point {
	return Point{X: r.X + rng.Float64()*r.W, Y: r.Y + rng.Float64()*r.H}
}

// Edges returns the four border segments: top, right, bottom, left.
func (r Rect) Edges() [4]Segment {
	tl := Point{r.X, r.Y}
	tr := Point{r.Right(), r.Y}
	br := Point{r.Right(), r.Bottom()}
	bl := Point{r.X, r.Bottom()}
	return [4]Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

// Segment is a straight line between two points. Area edges are always
// axis-aligned, which keeps the intersection test simple.
type Segment struct {
	A, B Point
}

// Crosses reports whether an axis-aligned segment touches r.
func (s Segment) Crosses(r Rect) bool {
	minX, maxX := min(s.A.X, s.B.X), max(s.A.X, s.B.X)
	minY, maxY := min(s.A.Y, s.B.Y), max(s.A.Y, s.B.Y)
	if maxX < r.X || minX > r.Right() || maxY < r.Y || minY > r.Bottom() {
		return false
	}
	return true
}

// Overlaps reports whether c intersects any placed rectangle or any edge of
// area.
func Overlaps(area, c Rect, placed []Rect) bool {
	for _, e := range area.Edges() {
		if e.Crosses(c) {
			return true
		}
	}
	for _, p := range placed {
		if p.Intersects(c) {
			return true
		}
	}
	return false
}

// Placer samples positions with a bounded number of attempts.
type Placer struct {
	Rand        *rand.Rand
	MaxAttempts int
}

// Place finds a w×h rectangle centered on a random point of area that does
// not overlap placed. On exhaustion it returns the last candidate and
// ErrNoRoom.
func (p Placer) Place(area Rect, w, h float64, placed []Rect) (Rect, error) {
	limit := p.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}
	var c Rect
	for i := 0; i < limit; i++ {
		c = Centered(area.RandomPoint(p.Rand), w, h)
		if !Overlaps(area, c, placed) {
			return c, nil
		}
	}
	return c, ErrNoRoom
}
