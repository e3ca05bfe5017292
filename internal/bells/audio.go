package bells

import (
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

// AudioSounder plays synthesised bells through the default output device.
type AudioSounder struct {
	ctx    *Context
	mixer  *Mixer
	log    *slog.Logger
	stream *portaudio.Stream
}

func NewAudioSounder(ctx *Context, log *slog.Logger) *AudioSounder {
	return &AudioSounder{ctx: ctx, mixer: NewMixer(), log: log}
}

// Start opens an output-only stream.
func (a *AudioSounder) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.mixer.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("%w: open stream: %v", ErrAudioUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("%w: start stream: %v", ErrAudioUnavailable, err)
	}
	a.stream = stream
	a.log.Info("audio started", "sample_rate", SampleRate, "buffer", BufferSize)
	return nil
}

func (a *AudioSounder) Stop() {
	if a.stream == nil {
		return
	}
	a.stream.Stop()
	a.stream.Close()
	portaudio.Terminate()
	a.stream = nil
}

func (a *AudioSounder) Ring(bell int) {
	freq, ok := a.ctx.Frequency(bell)
	if !ok {
		return
	}
	a.log.Debug("strike", "bell", bell, "hz", freq)
	a.mixer.Strike(freq)
}
