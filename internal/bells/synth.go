package bells

import (
	"math"
	"sync"
)

const (
	SampleRate = 44100
	BufferSize = 512

	// voices beyond this steal the oldest, like a mixer running out of channels
	maxVoices = 24
	// seconds for the nominal to fall by 1/e
	decay = 1.2
	// below this envelope a voice is dropped
	silence = 1e-3
)

// Partials of a tuned bell relative to its nominal, with relative amplitude
// and how much faster than the nominal each dies away.
var partials = [...]struct {
	ratio, amp, damp float64
}{
	{0.25, 0.35, 0.6}, // hum
	{0.5, 0.45, 1.0},  // prime
	{0.6, 0.40, 1.4},  // tierce
	{0.75, 0.20, 1.6}, // quint
	{1.0, 0.60, 1.0},  // nominal
	{1.5, 0.15, 2.5},
	{2.0, 0.10, 3.0},
}

type voice struct {
	freq float64
	t    float64
}

// Mixer sums decaying bell strikes into a stereo stream.
type Mixer struct {
	mu     sync.Mutex
	voices []voice
	Volume float64
}

func NewMixer() *Mixer {
	return &Mixer{voices: make([]voice, 0, maxVoices), Volume: 0.25}
}

// Strike starts a new voice at freq Hz.
func (m *Mixer) Strike(freq float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.voices) == maxVoices {
		m.voices = m.voices[1:]
	}
	m.voices = append(m.voices, voice{freq: freq})
}

func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Process fills out with the next len(out[0]) frames. It matches the
// portaudio output-only callback signature.
func (m *Mixer) Process(out [][]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	for i := range out[0] {
		var sample float64
		for v := range m.voices {
			sample += m.voices[v].sample()
			m.voices[v].t += dt
		}
		s := float32(math.Tanh(sample * m.Volume))
		for ch := range out {
			out[ch][i] = s
		}
	}

	live := m.voices[:0]
	for _, v := range m.voices {
		if math.Exp(-v.t/decay) > silence {
			live = append(live, v)
		}
	}
	m.voices = live
}

func (v voice) sample() float64 {
	var s float64
	for _, p := range partials {
		env := math.Exp(-v.t * p.damp / decay)
		s += p.amp * env * math.Sin(2*math.Pi*v.freq*p.ratio*v.t)
	}
	return s
}
