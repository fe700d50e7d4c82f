package prefabs

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/darkdepths/narrative"
	"github.com/milk9111/darkdepths/obj"
)

func TestCharacterPresets(t *testing.T) {
	spec, err := LoadCharacterSpec()
	if err != nil {
		t.Fatalf("LoadCharacterSpec: %v", err)
	}

	cases := []struct {
		name string
		want obj.Stats
	}{
		{"steve", obj.Stats{Speed: 200, JumpPower: 400, MaxHealth: 100}},
		{"alex", obj.Stats{Speed: 220, JumpPower: 380, MaxHealth: 90}},
		{"creeper", obj.Stats{Speed: 160, JumpPower: 350, MaxHealth: 120}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := spec.Preset(obj.CharacterType(c.name))
			if err != nil {
				t.Fatalf("Preset: %v", err)
			}
			if p.Stats() != c.want {
				t.Fatalf("stats = %+v, want %+v", p.Stats(), c.want)
			}
			if p.Body == nil || p.Body.Color == nil {
				t.Fatalf("missing body color")
			}
		})
	}

	if spec.DefaultType() != obj.CharacterSteve {
		t.Fatalf("default = %q", spec.DefaultType())
	}
	if _, err := spec.Preset("enderman"); !errors.Is(err, ErrUnknownCharacter) {
		t.Fatalf("unknown preset error = %v", err)
	}
}

func TestCharacterSpecValidate(t *testing.T) {
	cases := []struct {
		name string
		spec CharacterSpec
		want error
	}{
		{"empty", CharacterSpec{}, ErrInvalidSpec},
		{"zero_speed", CharacterSpec{Characters: []CharacterPreset{{Type: "steve", JumpPower: 1, MaxHealth: 1}}}, ErrInvalidSpec},
		{"duplicate", CharacterSpec{Characters: []CharacterPreset{
			{Type: "steve", Speed: 1, JumpPower: 1, MaxHealth: 1},
			{Type: "steve", Speed: 1, JumpPower: 1, MaxHealth: 1},
		}}, ErrInvalidSpec},
		{"bad_default", CharacterSpec{Default: "alex", Characters: []CharacterPreset{{Type: "steve", Speed: 1, JumpPower: 1, MaxHealth: 1}}}, ErrUnknownCharacter},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.spec.Validate(); !errors.Is(err, c.want) {
				t.Fatalf("Validate() = %v, want %v", err, c.want)
			}
		})
	}
}

func TestStorySpecContent(t *testing.T) {
	story, err := LoadStorySpec()
	if err != nil {
		t.Fatalf("LoadStorySpec: %v", err)
	}
	if len(story.Levels) != 3 {
		t.Fatalf("levels = %v", story.Levels)
	}
	if len(story.Intro) != 4 || story.Intro[0].Duration != 3*time.Second || story.Intro[3].Kind() != narrative.KindManual {
		t.Fatalf("unexpected intro: %+v", story.Intro)
	}

	ev, ok := story.EventFor(1)
	if !ok || !ev.WeakenCompanion || ev.Beats[0].Kind() != narrative.KindManual {
		t.Fatalf("level 1 event = %+v", ev)
	}
	ev, ok = story.EventFor(2)
	if !ok || ev.Beats[0].Kind() != narrative.KindChoice || len(ev.Beats[0].Options) != 2 {
		t.Fatalf("level 2 event = %+v", ev)
	}
	if _, ok := story.EventFor(0); ok {
		t.Fatalf("no event expected for the first level")
	}

	if got := story.Ending(narrative.ConsequenceSelfSacrifice).Title; got != "THE ULTIMATE SACRIFICE" {
		t.Fatalf("self ending title = %q", got)
	}
	if story.Popups["game_over"].Title != "GAME OVER" {
		t.Fatalf("popups = %+v", story.Popups)
	}
}

func TestStorySpecValidate(t *testing.T) {
	base := func() StorySpec {
		return StorySpec{
			Levels:      []string{"a.json", "b.json"},
			Progression: ProgressionSpec{ExitX: 900},
			Finale: []narrative.Beat{{
				Speaker: "You",
				Text:    "choose",
				Options: []narrative.Option{{Text: "me", Consequence: narrative.ConsequenceSelfSacrifice}},
			}},
			Endings: map[string]EndingSpec{"self_sacrificed": {Title: "END"}},
		}
	}

	cases := []struct {
		name   string
		mutate func(s *StorySpec)
		want   error
	}{
		{"valid", func(s *StorySpec) {}, nil},
		{"no_levels", func(s *StorySpec) { s.Levels = nil }, ErrInvalidSpec},
		{"malformed_intro", func(s *StorySpec) {
			s.Intro = []narrative.Beat{{Text: "x", AutoAdvance: true}}
		}, narrative.ErrMalformedBeat},
		{"event_out_of_range", func(s *StorySpec) {
			s.LevelEvents = []LevelEventSpec{{Level: 5, Beats: []narrative.Beat{{Text: "x"}}}}
		}, ErrInvalidSpec},
		{"event_offers_ending", func(s *StorySpec) {
			s.LevelEvents = []LevelEventSpec{{Level: 1, Beats: s.Finale}}
		}, ErrInvalidSpec},
		{"finale_without_choice", func(s *StorySpec) {
			s.Finale = []narrative.Beat{{Text: "bye"}}
		}, ErrInvalidSpec},
		{"missing_ending_text", func(s *StorySpec) { s.Endings = nil }, ErrInvalidSpec},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := base()
			c.mutate(&s)
			err := s.Validate()
			if c.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("Validate() = %v, want %v", err, c.want)
			}
		})
	}
}

func TestIsContentFile(t *testing.T) {
	cases := map[string]bool{
		"prefabs/story.yaml":  true,
		"characters.YML":      true,
		"levels/deep.json":    true,
		"prefabs/.story.swp":  false,
		"scripts/enemy.tengo": false,
		"README":              false,
	}
	for path, want := range cases {
		if got := IsContentFile(path); got != want {
			t.Errorf("IsContentFile(%q) = %v, want %v", path, got, want)
		}
	}
}
