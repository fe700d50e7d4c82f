package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/darkdepths/narrative"
	"github.com/milk9111/darkdepths/obj"
)

var (
	ErrUnknownCharacter = errors.New("prefabs: unknown character")
	ErrInvalidSpec      = errors.New("prefabs: invalid spec")
)

const (
	CharactersFile = "characters.yaml"
	StoryFile      = "story.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CharacterSpec struct {
	Default    obj.CharacterType `yaml:"default"`
	Characters []CharacterPreset `yaml:"characters"`
}

type CharacterPreset struct {
	Type        obj.CharacterType `yaml:"type"`
	Title       string            `yaml:"title"`
	Description []string          `yaml:"description"`
	Speed       float64           `yaml:"speed"`
	JumpPower   float64           `yaml:"jump_power"`
	MaxHealth   float64           `yaml:"max_health"`
	Body        *YAMLColor        `yaml:"body"`
	Head        *YAMLColor        `yaml:"head"`
	Hair        *YAMLColor        `yaml:"hair"`
}

func (p CharacterPreset) Stats() obj.Stats {
	return obj.Stats{Speed: p.Speed, JumpPower: p.JumpPower, MaxHealth: p.MaxHealth}
}

func LoadCharacterSpec() (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](CharactersFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", CharactersFile, err)
	}
	return &spec, nil
}

func (s *CharacterSpec) Validate() error {
	if len(s.Characters) == 0 {
		return fmt.Errorf("%w: no characters", ErrInvalidSpec)
	}
	seen := make(map[obj.CharacterType]bool, len(s.Characters))
	for i, c := range s.Characters {
		if c.Type == "" {
			return fmt.Errorf("%w: character %d has no type", ErrInvalidSpec, i)
		}
		if seen[c.Type] {
			return fmt.Errorf("%w: character %q declared twice", ErrInvalidSpec, c.Type)
		}
		seen[c.Type] = true
		if c.Speed <= 0 || c.JumpPower <= 0 || c.MaxHealth <= 0 {
			return fmt.Errorf("%w: character %q needs positive speed, jump_power and max_health", ErrInvalidSpec, c.Type)
		}
	}
	if s.Default != "" && !seen[s.Default] {
		return fmt.Errorf("%w: default %q", ErrUnknownCharacter, s.Default)
	}
	return nil
}

// Preset looks up a character by type.
func (s *CharacterSpec) Preset(t obj.CharacterType) (CharacterPreset, error) {
	if s != nil {
		for _, c := range s.Characters {
			if c.Type == t {
				return c, nil
			}
		}
	}
	return CharacterPreset{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, t)
}

// DefaultType is the preselected character on the selection screen.
func (s *CharacterSpec) DefaultType() obj.CharacterType {
	if s.Default != "" {
		return s.Default
	}
	return s.Characters[0].Type
}

type StorySpec struct {
	Levels      []string              `yaml:"levels"`
	Progression ProgressionSpec       `yaml:"progression"`
	Intro       []narrative.Beat      `yaml:"intro"`
	LevelEvents []LevelEventSpec      `yaml:"level_events"`
	Finale      []narrative.Beat      `yaml:"finale"`
	Endings     map[string]EndingSpec `yaml:"endings"`
	Closing     ClosingSpec           `yaml:"closing"`
	Popups      map[string]PopupSpec  `yaml:"popups"`
}

type ProgressionSpec struct {
	ExitX     float64 `yaml:"exit_x"`
	EntranceX float64 `yaml:"entrance_x"`
	EntranceY float64 `yaml:"entrance_y"`
	SpawnX    float64 `yaml:"spawn_x"`
	SpawnY    float64 `yaml:"spawn_y"`
}

// LevelEventSpec is scripted content played on entering a level index.
type LevelEventSpec struct {
	Level           int              `yaml:"level"`
	WeakenCompanion bool             `yaml:"weaken_companion"`
	Beats           []narrative.Beat `yaml:"beats"`
}

type EndingSpec struct {
	Title string   `yaml:"title"`
	Text  []string `yaml:"text"`
}

type ClosingSpec struct {
	Quote       string   `yaml:"quote"`
	Attribution string   `yaml:"attribution"`
	Lines       []string `yaml:"lines"`
}

type PopupSpec struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

func LoadStorySpec() (*StorySpec, error) {
	spec, err := LoadSpec[StorySpec](StoryFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", StoryFile, err)
	}
	return &spec, nil
}

// Validate rejects content that cannot be played: malformed beats, events
// for levels that do not exist, or a finale that never offers an ending.
func (s *StorySpec) Validate() error {
	if len(s.Levels) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidSpec)
	}
	if s.Progression.ExitX <= 0 {
		return fmt.Errorf("%w: progression.exit_x must be positive", ErrInvalidSpec)
	}
	if err := narrative.ValidateAll(s.Intro); err != nil {
		return fmt.Errorf("intro: %w", err)
	}

	seen := make(map[int]bool, len(s.LevelEvents))
	for _, ev := range s.LevelEvents {
		if ev.Level <= 0 || ev.Level >= len(s.Levels) {
			return fmt.Errorf("%w: level event for level %d out of range", ErrInvalidSpec, ev.Level)
		}
		if seen[ev.Level] {
			return fmt.Errorf("%w: two events for level %d", ErrInvalidSpec, ev.Level)
		}
		seen[ev.Level] = true
		if len(ev.Beats) == 0 {
			return fmt.Errorf("%w: level event %d has no beats", ErrInvalidSpec, ev.Level)
		}
		if err := narrative.ValidateAll(ev.Beats); err != nil {
			return fmt.Errorf("level event %d: %w", ev.Level, err)
		}
		for _, b := range ev.Beats {
			for _, o := range b.Options {
				if o.Consequence.Ends() {
					return fmt.Errorf("%w: level event %d offers an ending", ErrInvalidSpec, ev.Level)
				}
			}
		}
	}

	if len(s.Finale) == 0 {
		return fmt.Errorf("%w: no finale", ErrInvalidSpec)
	}
	if err := narrative.ValidateAll(s.Finale); err != nil {
		return fmt.Errorf("finale: %w", err)
	}
	last := s.Finale[len(s.Finale)-1]
	if last.Kind() != narrative.KindChoice {
		return fmt.Errorf("%w: finale must end with a choice", ErrInvalidSpec)
	}
	for _, o := range last.Options {
		if !o.Consequence.Ends() {
			return fmt.Errorf("%w: finale option %q does not end the story", ErrInvalidSpec, o.Text)
		}
		if _, ok := s.Endings[endingKey(o.Consequence)]; !ok {
			return fmt.Errorf("%w: no ending text for %q", ErrInvalidSpec, o.Consequence)
		}
	}
	return nil
}

// EventFor returns the scripted event for a level index.
func (s *StorySpec) EventFor(level int) (LevelEventSpec, bool) {
	for _, ev := range s.LevelEvents {
		if ev.Level == level {
			return ev, true
		}
	}
	return LevelEventSpec{}, false
}

// Ending returns the closing text for an ending consequence.
func (s *StorySpec) Ending(c narrative.Consequence) EndingSpec {
	return s.Endings[endingKey(c)]
}

func endingKey(c narrative.Consequence) string {
	switch c {
	case narrative.ConsequenceCompanionSacrifice:
		return "companion_sacrificed"
	case narrative.ConsequenceSelfSacrifice:
		return "self_sacrificed"
	}
	return string(c)
}

type YAMLColor struct {
	color.Color
}

// RGBA8 converts to the 8-bit color the renderer draws with.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	r, g, b, a := c.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
