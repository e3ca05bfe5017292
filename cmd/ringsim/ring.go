package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/ringsim/internal/bells"
	"github.com/san-kum/ringsim/internal/config"
	"github.com/san-kum/ringsim/internal/notation"
	"github.com/san-kum/ringsim/internal/playback"
	"github.com/san-kum/ringsim/internal/ringing"
	"github.com/san-kum/ringsim/internal/tui"
	"github.com/spf13/cobra"
)

// parseDelay accepts a Go duration or a bare number of milliseconds.
func parseDelay(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q: %w", s, err)
	}
	return d, nil
}

// looksLikeNotation reports whether every character of s is a place symbol
// or one of the notation operators.
func looksLikeNotation(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'x', 'X', '.', '-':
			continue
		}
		if _, ok := notation.PositionOf(s[i]); !ok {
			return false
		}
	}
	return true
}

// resolveMethod turns the optional argument into a method spec. Names and
// slot numbers come first; anything else that reads as place notation is
// rung as given.
func resolveMethod(cmd *cobra.Command, args []string) (config.MethodSpec, error) {
	name := cfg.Method
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return config.MethodSpec{}, errNoMethod
	}

	var spec config.MethodSpec
	if raw {
		spec = config.MethodSpec{Name: "custom", Title: name, Notation: name}
	} else {
		found, err := cfg.Lookup(name)
		switch {
		case err == nil:
			spec = found
		case errors.Is(err, config.ErrUnknownMethod) && looksLikeNotation(name):
			spec = config.MethodSpec{Name: "custom", Title: name, Notation: name}
		default:
			return config.MethodSpec{}, err
		}
	}
	if cmd.Flags().Lookup("cover") != nil && cmd.Flags().Changed("cover") {
		spec.Cover = cover
	}
	if spec.Title == "" {
		spec.Title = spec.Name
	}
	return spec, nil
}

func parseMethod(cmd *cobra.Command, args []string) (config.MethodSpec, *notation.Method, error) {
	spec, err := resolveMethod(cmd, args)
	if err != nil {
		return spec, nil, err
	}
	m := notation.ParseWith(logger, spec.Notation, spec.Cover)
	logger.Debug("method parsed", "name", spec.Name, "bells", m.Bells, "lead", m.LeadLength(), "tenor_added", m.TenorAdded)
	return spec, m, nil
}

// newBellContext builds the sounding context. A configured tenor of 0
// follows the method's stage.
func newBellContext(m *notation.Method) (*bells.Context, error) {
	tenor := cfg.Peal.Tenor
	if tenor == 0 {
		tenor = min(m.Bells, notation.MaxBells)
	}
	ctx, err := bells.NewContext(bells.DefaultPeals, cfg.Peal.Key, tenor)
	if err != nil {
		return nil, err
	}
	for _, b := range cfg.Peal.Muted {
		if err := ctx.SetMuted(b, true); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// changeLimit signals once the driver has completed the given number of
// changes. It runs under the driver lock so it only ever does a
// non-blocking send.
type changeLimit struct {
	limit int
	done  chan struct{}
}

func (c *changeLimit) OnStep(step ringing.Step, snap ringing.Snapshot) {
	if c.limit <= 0 || step.IsPause() || snap.Position != 0 || snap.Changes < c.limit {
		return
	}
	select {
	case c.done <- struct{}{}:
	default:
	}
}

func runRing(cmd *cobra.Command, args []string) error {
	spec, method, err := parseMethod(cmd, args)
	if err != nil {
		return err
	}
	bctx, err := newBellContext(method)
	if err != nil {
		return err
	}

	limit := &changeLimit{limit: changes, done: make(chan struct{}, 1)}
	opts := []playback.Option{playback.WithLogger(logger), playback.WithObserver(limit)}

	var sounder playback.Sounder
	switch cfg.Sound {
	case config.SoundAudio:
		audio := bells.NewAudioSounder(bctx, logger)
		if err := audio.Start(); err != nil {
			return err
		}
		defer audio.Stop()
		sounder = audio
	case config.SoundText:
		text := bells.NewTextSounder(os.Stdout, bctx)
		opts = append(opts, playback.WithObserver(text))
		sounder = text
	default:
		sounder = bells.Silent{}
	}

	fmt.Printf("Ringing %s (%s) on %d bells, delay %v\n", spec.Title, orRounds(method.String()), method.Bells, cfg.Delay)

	seq := ringing.NewSequencer(method)
	driver := playback.New(seq, sounder, cfg.Delay, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver.Start()
	select {
	case <-ctx.Done():
	case <-limit.done:
	}
	driver.Stop()

	fmt.Printf("\nStood after %d changes\n", seq.Changes())
	logger.Info("stood", "method", spec.Name, "changes", seq.Changes(), "ticks", driver.Ticks())
	return nil
}

// runLive rings the method in the terminal UI. Text output would fight the
// UI for the terminal, so it falls back to silence.
func runLive(cmd *cobra.Command, args []string) error {
	spec, method, err := parseMethod(cmd, args)
	if err != nil {
		return err
	}
	bctx, err := newBellContext(method)
	if err != nil {
		return err
	}

	var sounder playback.Sounder = bells.Silent{}
	if cfg.Sound == config.SoundAudio {
		audio := bells.NewAudioSounder(bctx, logger)
		if err := audio.Start(); err != nil {
			logger.Warn("audio unavailable, ringing silently", "err", err)
		} else {
			defer audio.Stop()
			sounder = audio
		}
	}

	feed := tui.NewFeed(256)
	driver := playback.New(ringing.NewSequencer(method), sounder, cfg.Delay,
		playback.WithLogger(logger), playback.WithObserver(feed))
	driver.Start()
	defer driver.Stop()

	model := tui.NewModel(driver, feed, method, spec.Title, bctx)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	if n := feed.Dropped(); n > 0 {
		logger.Warn("ui fell behind", "dropped_steps", n)
	}
	return nil
}

func orRounds(s string) string {
	if s == "" {
		return "rounds"
	}
	return s
}
