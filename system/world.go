package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/darkdepths/levels"
	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
)

// World owns the ordered level list and which one is being played.
type World struct {
	Levels  []*obj.GameLevel
	Current int

	build func() ([]*obj.GameLevel, error)
}

// NewWorld wraps already-built levels.
func NewWorld(lvls []*obj.GameLevel) (*World, error) {
	if len(lvls) == 0 {
		return nil, errors.New("system: world needs at least one level")
	}
	return &World{Levels: lvls}, nil
}

// LoadWorld builds every level the story names.
func LoadWorld(story *prefabs.StorySpec) (*World, error) {
	if story == nil {
		return nil, fmt.Errorf("system: load world: %w", ErrMissingContent)
	}
	build := func() ([]*obj.GameLevel, error) {
		return levels.LoadAll(story.Levels)
	}
	lvls, err := build()
	if err != nil {
		return nil, fmt.Errorf("system: load world: %w", err)
	}
	w, err := NewWorld(lvls)
	if err != nil {
		return nil, err
	}
	w.build = build
	return w, nil
}

// Level is the level being played, or nil once the list is exhausted.
func (w *World) Level() *obj.GameLevel {
	if w == nil || w.Current < 0 || w.Current >= len(w.Levels) {
		return nil
	}
	return w.Levels[w.Current]
}

// Advance marks the current level completed and moves to the next one. It
// reports false when there is none; the index is left one past the end.
func (w *World) Advance() (*obj.GameLevel, bool) {
	if lvl := w.Level(); lvl != nil {
		lvl.Completed = true
	}
	w.Current++
	lvl := w.Level()
	return lvl, lvl != nil
}

// Restart goes back to the first level. A world loaded from layouts is
// rebuilt from them so collapsed platforms and corruption start over; if the
// layouts no longer load, the current levels are kept.
func (w *World) Restart() {
	w.Current = 0
	if w.build == nil {
		return
	}
	lvls, err := w.build()
	if err != nil || len(lvls) == 0 {
		log.Printf("system: rebuild levels: %v; keeping the current ones", err)
		return
	}
	w.Levels = lvls
}
