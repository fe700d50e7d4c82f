package obj

import "github.com/milk9111/darkdepths/common"

// PlatformKind selects per-platform behavior.
type PlatformKind string

const (
	PlatformNormal    PlatformKind = "normal"
	PlatformCrumbling PlatformKind = "crumbling"
	PlatformMystical  PlatformKind = "mystical"
)

const (
	crumblingStability = 3.0
	solidStability     = 100.0
)

// Platform is static level geometry. Crumbling platforms lose stability while
// stood on and deactivate for good once it runs out.
type Platform struct {
	Position  common.Vector2
	Size      common.Vector2
	Kind      PlatformKind
	Active    bool
	Stability float64
}

func NewPlatform(x, y, w, h float64, kind PlatformKind) *Platform {
	if kind == "" {
		kind = PlatformNormal
	}
	stability := solidStability
	if kind == PlatformCrumbling {
		stability = crumblingStability
	}
	return &Platform{
		Position:  common.Vec(x, y),
		Size:      common.Vec(w, h),
		Kind:      kind,
		Active:    true,
		Stability: stability,
	}
}

func (p *Platform) Rect() common.Rect {
	return common.RectAt(p.Position, p.Size)
}

// Crumble removes stability from a crumbling platform.
func (p *Platform) Crumble(amount float64) {
	if p.Kind != PlatformCrumbling || !p.Active {
		return
	}
	p.Stability -= amount
}

// Depleted reports whether a crumbling platform has run out of stability.
func (p *Platform) Depleted() bool {
	return p.Kind == PlatformCrumbling && p.Stability <= 0
}

// Valid reports whether the platform kind is known.
func (k PlatformKind) Valid() bool {
	switch k {
	case PlatformNormal, PlatformCrumbling, PlatformMystical:
		return true
	}
	return false
}
