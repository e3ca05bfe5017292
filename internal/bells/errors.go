package bells

import "errors"

var (
	// ErrNoPeal indicates an empty peal list or an out of range key.
	ErrNoPeal = errors.New("bells: no such peal")

	// ErrInvalidBell indicates a bell number outside 1..12.
	ErrInvalidBell = errors.New("bells: bell out of range")

	// ErrAudioUnavailable indicates the audio device could not be opened.
	ErrAudioUnavailable = errors.New("bells: audio output unavailable")
)
