package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
)

//go:embed *.json
var LevelsFS embed.FS

// Layouts is the json layout tree, overridable from levels/ on disk.
var Layouts = prefabs.Source{Dir: "levels", FS: LevelsFS}

var ErrInvalidLevel = errors.New("levels: invalid level")

// Layout is the authored shape of one level.
type Layout struct {
	Name      string     `json:"name"`
	Platforms []Platform `json:"platforms"`
	Enemies   []Enemy    `json:"enemies,omitempty"`
}

type Platform struct {
	X    float64          `json:"x"`
	Y    float64          `json:"y"`
	W    float64          `json:"w"`
	H    float64          `json:"h"`
	Type obj.PlatformKind `json:"type,omitempty"`
}

type Enemy struct {
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	PatrolStart float64 `json:"patrol_start"`
	PatrolEnd   float64 `json:"patrol_end"`
}

// LoadLayout reads a layout from levels/ on disk if present, otherwise from
// the embedded copy, and validates it.
func LoadLayout(name string) (*Layout, error) {
	data, err := Layouts.Load(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	var lvl Layout
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Layout) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidLevel)
	}
	if len(l.Platforms) == 0 {
		return fmt.Errorf("%w: %q has no platforms", ErrInvalidLevel, l.Name)
	}
	for i, p := range l.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("%w: %q platform %d has no area", ErrInvalidLevel, l.Name, i)
		}
		if p.Type != "" && !p.Type.Valid() {
			return fmt.Errorf("%w: %q platform %d has unknown type %q", ErrInvalidLevel, l.Name, i, p.Type)
		}
	}
	for i, e := range l.Enemies {
		if e.PatrolEnd < e.PatrolStart {
			return fmt.Errorf("%w: %q enemy %d patrols backwards", ErrInvalidLevel, l.Name, i)
		}
	}
	return nil
}

// Build creates a fresh runtime level from the layout.
func (l *Layout) Build() *obj.GameLevel {
	lvl := obj.NewGameLevel(l.Name)
	for _, p := range l.Platforms {
		lvl.AddPlatform(p.X, p.Y, p.W, p.H, p.Type)
	}
	for _, e := range l.Enemies {
		lvl.AddEnemy(e.X, e.Y, e.PatrolStart, e.PatrolEnd)
	}
	return lvl
}

// LoadAll loads and builds every named layout in order.
func LoadAll(names []string) ([]*obj.GameLevel, error) {
	out := make([]*obj.GameLevel, 0, len(names))
	for _, name := range names {
		layout, err := LoadLayout(name)
		if err != nil {
			return nil, err
		}
		out = append(out, layout.Build())
	}
	return out, nil
}
