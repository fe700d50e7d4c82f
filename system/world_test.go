package system

import (
	"testing"
	"time"

	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
)

func TestWorldAdvance(t *testing.T) {
	if _, err := NewWorld(nil); err == nil {
		t.Fatalf("empty world should be rejected")
	}

	w, err := NewWorld([]*obj.GameLevel{obj.NewGameLevel("a"), obj.NewGameLevel("b")})
	if err != nil {
		t.Fatal(err)
	}
	if w.Level().Name != "a" {
		t.Fatalf("first level = %q", w.Level().Name)
	}
	if lvl, ok := w.Advance(); !ok || lvl.Name != "b" {
		t.Fatalf("advance = %v %v", lvl, ok)
	}
	if !w.Levels[0].Completed || w.Levels[1].Completed {
		t.Fatalf("only the level left behind should be completed")
	}
	if lvl, ok := w.Advance(); ok || lvl != nil {
		t.Fatalf("advance past the end = %v %v", lvl, ok)
	}
	if w.Current != 2 || w.Level() != nil {
		t.Fatalf("index past the end should stay there, got %d", w.Current)
	}
	w.Restart()
	if w.Level().Name != "a" {
		t.Fatalf("restart did not return to the first level")
	}
}

func TestRestartRebuildsLevels(t *testing.T) {
	story, err := prefabs.LoadStorySpec()
	if err != nil {
		t.Fatal(err)
	}
	w, err := LoadWorld(story)
	if err != nil {
		t.Fatal(err)
	}

	var crumbling *obj.Platform
	for _, lvl := range w.Levels {
		for _, p := range lvl.Platforms {
			if p.Kind == obj.PlatformCrumbling && crumbling == nil {
				crumbling = p
			}
		}
	}
	if crumbling == nil {
		t.Fatalf("content has no crumbling platform")
	}
	crumbling.Crumble(100)
	crumbling.Active = false
	w.Levels[0].Corruption = 5
	w.Advance()

	w.Restart()
	if w.Current != 0 {
		t.Fatalf("restart index = %d", w.Current)
	}
	for _, lvl := range w.Levels {
		if lvl.Corruption != 0 || lvl.Completed {
			t.Fatalf("level %q kept state: corruption=%v completed=%v", lvl.Name, lvl.Corruption, lvl.Completed)
		}
		for _, p := range lvl.Platforms {
			if p == crumbling || !p.Active {
				t.Fatalf("level %q kept a collapsed platform", lvl.Name)
			}
		}
	}
}

func TestViewFollowsState(t *testing.T) {
	h := newHarness(t, false)
	h.start(obj.CharacterSteve)

	b := h.waitBeat()
	v := h.game.View()
	if v.State != StateIntro || v.ShowLevelName() {
		t.Fatalf("intro view = %+v", v)
	}
	if v.Dialogue == nil || v.Dialogue.Text != b.Text {
		t.Fatalf("dialogue not exposed: %+v", v.Dialogue)
	}

	h.game.dialogue.Reset()
	h.game.setState(StatePlaying)
	h.run(2 * time.Second)

	v = h.game.View()
	if !v.ShowLevelName() || v.Level.Name != "The Dark Cave Entrance" {
		t.Fatalf("playing view = %+v", v)
	}
	if v.Overlay <= 0 || v.Dialogue != nil {
		t.Fatalf("overlay=%v dialogue=%v", v.Overlay, v.Dialogue)
	}
	if v.Camera.X != 0 || v.Camera.Y != 0 {
		t.Fatalf("camera should clamp to the origin when the view is the world, got %v", v.Camera)
	}
	if !Visible(v.Player.Position.Y) || Visible(OffscreenY) {
		t.Fatalf("visibility bound wrong")
	}
}

func TestSecondEndingDoesNotCancelFirst(t *testing.T) {
	h := newHarness(t, true)
	h.start(obj.CharacterSteve)

	h.game.beginEnding(EndingSelfSacrificed)
	h.run(time.Second)
	h.game.beginEnding(EndingCompanionSacrificed)
	h.run(EndingClosingAt + time.Second)

	if got := len(h.ui.kinds(NoticeTheEnd)); got != 2 {
		t.Fatalf("expected both timelines to fire, got %d THE END notices", got)
	}
	if got := len(h.ui.kinds(NoticeClosing)); got != 2 {
		t.Fatalf("expected two closing notices, got %d", got)
	}
	if h.game.Ending() != EndingCompanionSacrificed {
		t.Fatalf("ending = %s", h.game.Ending())
	}
}
