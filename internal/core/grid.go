package core

// Point addresses a cell by column and row.
type Point struct {
	X, Y int
}

// Index returns the linear slice index of p in a row-major grid of width w.
func (p Point) Index(w int) int { return p.Y*w + p.X }

// In reports whether p lies inside a w*h grid.
func (p Point) In(w, h int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

// PointOf converts a linear index back to coordinates for a grid of width w.
func PointOf(i, w int) Point { return Point{X: i % w, Y: i / w} }

// Vec2 is a world-space position.
type Vec2 struct {
	X, Y float32
}

// Rect is a half-open rectangle of cells [Min, Max).
type Rect struct {
	Min, Max Point
}

// Dx returns the rectangle width.
func (r Rect) Dx() int { return r.Max.X - r.Min.X }

// Dy returns the rectangle height.
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Center returns the cell at the middle of r, rounding toward Min.
func (r Rect) Center() Point {
	return Point{X: r.Min.X + r.Dx()/2, Y: r.Min.Y + r.Dy()/2}
}
