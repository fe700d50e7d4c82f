package common

const (
	// WorldWidth and WorldHeight are the logical size of every level and of the screen.
	WorldWidth  = 1024
	WorldHeight = 576

	// MaxStep caps the simulation timestep in seconds to bound integration error.
	MaxStep = 1.0 / 60.0
)
