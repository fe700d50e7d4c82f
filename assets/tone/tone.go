// Package tone renders short procedural sound clips to PCM.
package tone

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
)

type Wave int

const (
	Sine Wave = iota
	Triangle
	Sawtooth
)

type Fade int

const (
	// FadeExp decays exponentially to silence at the end of the voice.
	FadeExp Fade = iota
	// FadeLinear ramps linearly to silence at the end of the voice.
	FadeLinear
)

// silence is the floor an exponential fade reaches at the end of a voice.
const silence = 0.001

// Voice is one oscillator with a pitch sweep and an attack/fade envelope.
// Times are seconds from the start of the clip.
type Voice struct {
	Wave Wave
	// From and To are the start and end frequencies in Hz.
	From, To float64
	// ExpSweep sweeps pitch exponentially instead of linearly.
	ExpSweep bool

	Start  float64
	Length float64
	Attack float64
	Peak   float64
	Fade   Fade

	VibratoRate  float64
	VibratoDepth float64
}

type Clip struct {
	Duration float64
	Voices   []Voice
	// Echo mixes a decaying delayed copy back in. Zero disables it.
	Echo      float64
	EchoDelay float64
}

func (v Voice) freq(t float64) float64 {
	p := t / v.Length
	var f float64
	if v.ExpSweep && v.From > 0 && v.To > 0 {
		f = v.From * math.Pow(v.To/v.From, p)
	} else {
		f = v.From + (v.To-v.From)*p
	}
	if v.VibratoDepth != 0 {
		f += v.VibratoDepth * math.Sin(2*math.Pi*v.VibratoRate*t)
	}
	return f
}

func (v Voice) gain(t float64) float64 {
	if t < 0 || t >= v.Length {
		return 0
	}
	if v.Attack > 0 && t < v.Attack {
		return v.Peak * t / v.Attack
	}
	rest := v.Length - v.Attack
	if rest <= 0 {
		return v.Peak
	}
	p := (t - v.Attack) / rest
	if v.Fade == FadeLinear {
		return v.Peak * (1 - p)
	}
	return v.Peak * math.Pow(silence/v.Peak, p)
}

func sample(w Wave, phase float64) float64 {
	x := phase - math.Floor(phase)
	switch w {
	case Triangle:
		return 4*math.Abs(x-0.5) - 1
	case Sawtooth:
		return 2*x - 1
	default:
		return math.Sin(2 * math.Pi * x)
	}
}

// Render mixes the clip into mono samples in [-1, 1].
func Render(c Clip, sampleRate int) []float64 {
	n := int(c.Duration * float64(sampleRate))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	dt := 1 / float64(sampleRate)

	for _, v := range c.Voices {
		if v.Length <= 0 || v.Peak <= 0 {
			continue
		}
		first := int(v.Start * float64(sampleRate))
		phase := 0.0
		for i := max(first, 0); i < n; i++ {
			t := float64(i-first) * dt
			if t >= v.Length {
				break
			}
			out[i] += v.gain(t) * sample(v.Wave, phase)
			phase += v.freq(t) * dt
		}
	}

	if c.Echo > 0 && c.EchoDelay > 0 {
		d := int(c.EchoDelay * float64(sampleRate))
		for i := d; i < n; i++ {
			out[i] += out[i-d] * c.Echo
		}
	}

	for i, s := range out {
		out[i] = math.Max(-1, math.Min(1, s))
	}
	return out
}

// Melody scatters notes over a clip. Each note starts at a random offset in
// [from, to) seconds and picks a random pitch from notes.
func Melody(rng *rand.Rand, notes []float64, count int, from, to, peak float64) []Voice {
	if rng == nil || len(notes) == 0 {
		return nil
	}
	out := make([]Voice, 0, count)
	for i := 0; i < count; i++ {
		f := notes[rng.IntN(len(notes))]
		out = append(out, Voice{
			Wave:   Sine,
			From:   f,
			To:     f,
			Start:  from + rng.Float64()*(to-from),
			Length: 3,
			Attack: 0.5,
			Peak:   peak,
		})
	}
	return out
}

// PCM16Stereo encodes mono samples as interleaved signed 16-bit little-endian
// stereo, the format ebiten's audio players consume.
func PCM16Stereo(samples []float64) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], v)
		binary.LittleEndian.PutUint16(buf[i*4+2:], v)
	}
	return buf
}
