package obj

import "github.com/milk9111/darkdepths/common"

const defaultCameraSmooth = 0.1

// Camera tracks the top-left corner of the view in world space and follows a
// target with per-tick smoothing, clamped so the view never leaves the world.
type Camera struct {
	Pos common.Vector2

	viewW, viewH   float64
	worldW, worldH float64
	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
}

func NewCamera(viewW, viewH, worldW, worldH float64) *Camera {
	return &Camera{viewW: viewW, viewH: viewH, worldW: worldW, worldH: worldH, smooth: defaultCameraSmooth}
}

// Follow moves the view toward centering target.
func (c *Camera) Follow(target common.Vector2) {
	want := common.Vec(target.X-c.viewW/2, target.Y-c.viewH/2)
	if c.smooth <= 0 {
		c.Pos = want
	} else {
		c.Pos = c.Pos.Lerp(want, c.smooth)
	}
	c.clamp()
}

// SnapTo centers the view on target immediately.
func (c *Camera) SnapTo(target common.Vector2) {
	c.Pos = common.Vec(target.X-c.viewW/2, target.Y-c.viewH/2)
	c.clamp()
}

func (c *Camera) clamp() {
	c.Pos.X = common.Clamp(c.Pos.X, 0, max(0, c.worldW-c.viewW))
	c.Pos.Y = common.Clamp(c.Pos.Y, 0, max(0, c.worldH-c.viewH))
}
