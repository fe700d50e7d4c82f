package common

import "github.com/jakecoffman/cp"

// Vector2 is the value type used for positions, velocities, sizes and offsets.
// Treat it as immutable: the cp arithmetic helpers return new values.
type Vector2 = cp.Vector

// Vec builds a Vector2.
func Vec(x, y float64) Vector2 {
	return cp.Vector{X: x, Y: y}
}
