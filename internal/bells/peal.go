package bells

import "math"

// Peal is a set of tuned bells in one key, treble first.
type Peal struct {
	Key    string `yaml:"key"`
	Sounds int    `yaml:"sounds"`
	// Tonic is the tenor's strike note in Hz.
	Tonic float64 `yaml:"tonic"`
}

// DefaultPeals lists the peals the sample set can play, lowest first.
var DefaultPeals = []Peal{
	{Key: "D", Sounds: 12, Tonic: 146.83},
	{Key: "E", Sounds: 12, Tonic: 164.81},
	{Key: "F#", Sounds: 10, Tonic: 185.00},
	{Key: "G", Sounds: 9, Tonic: 196.00},
	{Key: "G#", Sounds: 8, Tonic: 207.65},
	{Key: "A", Sounds: 8, Tonic: 220.00},
	{Key: "A#", Sounds: 8, Tonic: 233.08},
	{Key: "B", Sounds: 8, Tonic: 246.94},
	{Key: "C", Sounds: 6, Tonic: 261.63},
	{Key: "C#", Sounds: 6, Tonic: 277.18},
	{Key: "D", Sounds: 6, Tonic: 293.66},
}

var majorScale = [...]int{0, 2, 4, 5, 7, 9, 11}

// Frequency is the strike note of sound index i, where the last index is the
// tenor and the bells above it climb a major scale.
func (p Peal) Frequency(i int) float64 {
	degree := p.Sounds - 1 - i
	semis := 12*(degree/len(majorScale)) + majorScale[degree%len(majorScale)]
	return p.Tonic * math.Pow(2, float64(semis)/12)
}
