package assets

import (
	"bytes"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/darkdepths/assets/tone"
	"github.com/milk9111/darkdepths/component"
)

const SampleRate = 44100

const (
	sfxVolume   = 0.4
	musicVolume = 0.2
	musicLoop   = 16.0
)

var melodyNotes = []float64{220, 247, 277, 330, 370}

// cueClips are the procedural recipes for each gameplay cue.
var cueClips = map[component.Cue]tone.Clip{
	component.CueJump: {Duration: 0.2, Voices: []tone.Voice{
		{Wave: tone.Sine, From: 400, To: 600, ExpSweep: true, Length: 0.2, Attack: 0.01, Peak: sfxVolume * 0.3},
	}},
	component.CueLanding: {Duration: 0.15, Voices: []tone.Voice{
		{Wave: tone.Triangle, From: 200, To: 100, ExpSweep: true, Length: 0.15, Attack: 0.01, Peak: sfxVolume * 0.2},
	}},
	component.CueDamage: {Duration: 0.3, Voices: []tone.Voice{
		{Wave: tone.Sawtooth, From: 800, To: 200, ExpSweep: true, Length: 0.3, Attack: 0.01, Peak: sfxVolume * 0.4},
	}},
	component.CueSacrifice: {Duration: 2.5, Echo: 0.35, EchoDelay: 0.12, Voices: []tone.Voice{
		{Wave: tone.Sine, From: 440, To: 220, Length: 2, Attack: 0.5, Peak: sfxVolume * 0.3, Fade: tone.FadeLinear},
		{Wave: tone.Sine, From: 660, To: 330, Length: 2, Attack: 0.5, Peak: sfxVolume * 0.3, Fade: tone.FadeLinear},
	}},
	component.CueCompanionWeaken: {Duration: 1, Voices: []tone.Voice{
		{Wave: tone.Sine, From: 880, To: 440, ExpSweep: true, Length: 1, Attack: 0.1, Peak: sfxVolume * 0.2, VibratoRate: 5, VibratoDepth: 20},
	}},
}

// Sounds plays procedurally generated cues and a looping ambient track on
// ebiten's audio context. A missing player is skipped silently.
type Sounds struct {
	ctx   *audio.Context
	cues  map[component.Cue]*audio.Player
	music *audio.Player
	muted bool
}

// NewSounds renders every cue and the music loop. The seed fixes the melody.
func NewSounds(seed uint64, muted bool) *Sounds {
	s := &Sounds{cues: make(map[component.Cue]*audio.Player), muted: muted}
	if muted {
		return s
	}

	s.ctx = audio.CurrentContext()
	if s.ctx == nil {
		s.ctx = audio.NewContext(SampleRate)
	}

	for cue, clip := range cueClips {
		pcm := tone.PCM16Stereo(tone.Render(clip, SampleRate))
		s.cues[cue] = s.ctx.NewPlayerFromBytes(pcm)
	}

	pcm := tone.PCM16Stereo(tone.Render(ambientClip(seed), SampleRate))
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	music, err := s.ctx.NewPlayer(loop)
	if err != nil {
		log.Printf("assets: music player: %v", err)
		return s
	}
	s.music = music
	return s
}

// ambientClip is a low drone with a few scattered melody notes.
func ambientClip(seed uint64) tone.Clip {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	voices := []tone.Voice{
		{Wave: tone.Triangle, From: 55, To: 55, Length: musicLoop, Attack: 2, Peak: musicVolume * 0.1, Fade: tone.FadeLinear},
	}
	voices = append(voices, tone.Melody(rng, melodyNotes, 5, 2, 12, musicVolume*0.15)...)
	return tone.Clip{Duration: musicLoop, Voices: voices, Echo: 0.3, EchoDelay: 0.25}
}

func (s *Sounds) Play(cue component.Cue) {
	if s == nil || s.muted {
		return
	}
	p := s.cues[cue]
	if p == nil {
		return
	}
	if p.IsPlaying() {
		return
	}
	if err := p.SetPosition(0); err != nil {
		return
	}
	p.Play()
}

func (s *Sounds) StartMusic() {
	if s == nil || s.muted || s.music == nil || s.music.IsPlaying() {
		return
	}
	s.music.Play()
}

func (s *Sounds) StopMusic() {
	if s == nil || s.music == nil {
		return
	}
	s.music.Pause()
}
