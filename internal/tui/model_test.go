package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ringsim/internal/bells"
	"github.com/san-kum/ringsim/internal/notation"
	"github.com/san-kum/ringsim/internal/ringing"
)

type fakePlayer struct {
	starts, stops int
	running       bool
}

func (p *fakePlayer) Start()        { p.starts++; p.running = true }
func (p *fakePlayer) Stop()         { p.stops++; p.running = false }
func (p *fakePlayer) Running() bool { return p.running }

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ring feeds n ticks of a real sequencer through the model.
func ring(m Model, seq *ringing.Sequencer, n int) Model {
	for i := 0; i < n; i++ {
		step := seq.Advance()
		next, _ := m.Update(StepMsg{Step: step, Snap: seq.Snapshot()})
		m = next.(Model)
	}
	return m
}

var _ = Describe("Model", func() {
	var (
		player *fakePlayer
		feed   *Feed
		method *notation.Method
		ctx    *bells.Context
		model  Model
		seq    *ringing.Sequencer
	)

	BeforeEach(func() {
		player = &fakePlayer{running: true}
		feed = NewFeed(8)
		method = notation.Parse("x16x16x16x16x16x16", false)
		var err error
		ctx, err = bells.NewContext(bells.DefaultPeals, 0, method.Bells)
		Expect(err).NotTo(HaveOccurred())
		model = NewModel(player, feed, method, "Plain Hunt on Six", ctx)
		seq = ringing.NewSequencer(method)
	})

	It("collects completed rows", func() {
		model = ring(model, seq, 1+6+6+1+6)

		Expect(model.rows).To(Equal([][]int{
			{1, 2, 3, 4, 5, 6},
			{1, 2, 3, 4, 5, 6},
			{2, 1, 4, 3, 6, 5},
		}))
		Expect(model.changes).To(Equal(3))
		Expect(model.pauses).To(Equal(2))
		Expect(model.current).To(BeEmpty())
	})

	It("caps its history", func() {
		model = ring(model, seq, 7*(historyCapacity+20))

		Expect(model.rows).To(HaveLen(historyCapacity))
	})

	It("renders rows and the blue line", func() {
		model = ring(model, seq, 7*10)

		view := model.View()
		Expect(view).To(ContainSubstring("PLAIN HUNT ON SIX"))
		Expect(view).To(ContainSubstring("RINGING"))
		Expect(view).To(ContainSubstring("place of 2"))
	})

	It("stands and restarts on space", func() {
		next, _ := model.Update(key(" "))
		model = next.(Model)
		Expect(player.stops).To(Equal(1))
		Expect(model.running).To(BeFalse())
		Expect(model.View()).To(ContainSubstring("STOOD"))

		feed.OnStep(ringing.Bell(3), ringing.Snapshot{})
		next, _ = model.Update(key(" "))
		model = next.(Model)
		Expect(player.starts).To(Equal(1))
		Expect(model.running).To(BeTrue())
		Expect(feed.C()).To(BeEmpty())
	})

	It("clears the rows when rung from rounds again", func() {
		model = ring(model, seq, 7*5)
		next, _ := model.Update(key("r"))
		model = next.(Model)

		Expect(model.rows).To(BeEmpty())
		Expect(model.changes).To(BeZero())
		Expect(player.running).To(BeTrue())
	})

	It("toggles mutes by place symbol", func() {
		next, _ := model.Update(key("3"))
		model = next.(Model)
		Expect(ctx.Muted(3)).To(BeTrue())

		next, _ = model.Update(key("3"))
		model = next.(Model)
		Expect(ctx.Muted(3)).To(BeFalse())

		next, _ = model.Update(key("9"))
		model = next.(Model)
		Expect(ctx.Muted(9)).To(BeFalse())
	})

	It("changes key and line bell", func() {
		next, _ := model.Update(key("+"))
		model = next.(Model)
		Expect(ctx.Key()).To(Equal(1))

		next, _ = model.Update(key("tab"))
		model = next.(Model)
		Expect(model.lineBell).To(Equal(3))
	})

	It("stops the player on quit", func() {
		_, cmd := model.Update(key("q"))
		Expect(player.stops).To(Equal(1))
		Expect(cmd).NotTo(BeNil())
	})

	It("never blocks the driver when the feed is full", func() {
		for i := 0; i < 20; i++ {
			feed.OnStep(ringing.Bell(1), ringing.Snapshot{})
		}
		Expect(feed.Dropped()).To(BeEquivalentTo(12))
	})
})
