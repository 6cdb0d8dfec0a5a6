package placement

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	cases := []struct {
		b    Rect
		want bool
	}{
		{Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{Rect{X: 10, Y: 0, W: 5, H: 5}, true}, // touching edge
		{Rect{X: 11, Y: 0, W: 5, H: 5}, false},
		{Rect{X: 0, Y: -6, W: 5, H: 5}, false},
		{Rect{X: 2, Y: 2, W: 2, H: 2}, true}, // contained
	}
	for _, c := range cases {
		if got := a.Intersects(c.b); got != c.want {
			t.Errorf("%+v: got %v, want %v", c.b, got, c.want)
		}
	}
}

func TestOverlapsEdges(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 100, H: 100}
	if !Overlaps(area, Centered(Point{2, 50}, 10, 10), nil) {
		t.Error("candidate crossing the left edge accepted")
	}
	if !Overlaps(area, Centered(Point{50, 99}, 10, 10), nil) {
		t.Error("candidate crossing the bottom edge accepted")
	}
	if Overlaps(area, Centered(Point{50, 50}, 10, 10), nil) {
		t.Error("interior candidate rejected")
	}
	placed := []Rect{Centered(Point{50, 50}, 10, 10)}
	if !Overlaps(area, Centered(Point{55, 55}, 10, 10), placed) {
		t.Error("candidate overlapping a placed rect accepted")
	}
}

func TestPlaceFindsFreeSpots(t *testing.T) {
	p := Placer{Rand: rand.New(rand.NewPCG(7, 7))}
	area := Rect{X: 0, Y: 0, W: 400, H: 400}
	var placed []Rect
	for i := 0; i < 6; i++ {
		r, err := p.Place(area, 40, 40, placed)
		if err != nil {
			t.Fatalf("place %d: %v", i, err)
		}
		if Overlaps(area, r, placed) {
			t.Fatalf("place %d overlaps", i)
		}
		placed = append(placed, r)
	}
}

func TestPlaceGivesUp(t *testing.T) {
	p := Placer{Rand: rand.New(rand.NewPCG(1, 1)), MaxAttempts: 10}
	area := Rect{X: 0, Y: 0, W: 50, H: 50}
	// Anything 60 wide must cross an edge.
	r, err := p.Place(area, 60, 10, nil)
	if !errors.Is(err, ErrNoRoom) {
		t.Fatalf("got %v, want ErrNoRoom", err)
	}
	if r.W != 60 || r.H != 10 {
		t.Errorf("last candidate %+v", r)
	}
}
