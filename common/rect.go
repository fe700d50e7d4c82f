package common

// Rect is an axis-aligned bounding box with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectAt builds the collision box of something at pos with the given size.
func RectAt(pos, size Vector2) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y}
}

// Intersects reports strict overlap. Boxes that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
