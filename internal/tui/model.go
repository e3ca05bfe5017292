package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ringsim/internal/bells"
	"github.com/san-kum/ringsim/internal/notation"
	"github.com/san-kum/ringsim/internal/ringing"
)

const (
	historyCapacity = 240
	visibleRows     = 14
	lineWindow      = 28
)

var (
	rowsStyle   = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	trebleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	lineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	runStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	stopStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)
)

// Player is the part of the playback driver the UI controls.
type Player interface {
	Start()
	Stop()
	Running() bool
}

// Model shows the rows as they are rung, with a blue line for one bell.
type Model struct {
	player Player
	feed   *Feed
	method *notation.Method
	title  string
	ctx    *bells.Context

	rows     [][]int
	current  []int
	changes  int
	pauses   int
	lineBell int
	running  bool
	showHelp bool
}

func NewModel(player Player, feed *Feed, method *notation.Method, title string, ctx *bells.Context) Model {
	return Model{
		player:   player,
		feed:     feed,
		method:   method,
		title:    title,
		ctx:      ctx,
		rows:     make([][]int, 0, historyCapacity),
		lineBell: min(2, method.Bells),
		running:  player.Running(),
	}
}

// Init only listens; the caller starts the player before running the
// program so that key handling never races a first Start.
func (m Model) Init() tea.Cmd {
	return m.wait()
}

func (m Model) wait() tea.Cmd {
	return func() tea.Msg { return <-m.feed.C() }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case StepMsg:
		m.apply(msg)
		return m, m.wait()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.player.Stop()
		return m, tea.Quit
	case " ":
		if m.running {
			m.player.Stop()
			m.running = false
			return m, nil
		}
		m.restart()
	case "r":
		m.restart()
	case "tab":
		m.lineBell = m.lineBell%m.method.Bells + 1
	case "+", "=":
		m.ctx.SelectPeal(m.ctx.Key() + 1)
	case "-", "_":
		m.ctx.SelectPeal(m.ctx.Key() - 1)
	case "?":
		m.showHelp = !m.showHelp
	default:
		if len(key) == 1 {
			if pos, ok := notation.PositionOf(key[0]); ok && pos < m.method.Bells {
				m.ctx.SetMuted(pos+1, !m.ctx.Muted(pos+1))
			}
		}
	}
	return m, nil
}

// restart rings again from rounds, discarding ticks left over from the
// previous session.
func (m *Model) restart() {
	m.player.Stop()
	for drained := false; !drained; {
		select {
		case <-m.feed.C():
		default:
			drained = true
		}
	}
	m.rows = m.rows[:0]
	m.current = nil
	m.changes = 0
	m.pauses = 0
	m.player.Start()
	m.running = true
}

func (m *Model) apply(msg StepMsg) {
	if msg.Step.IsPause() {
		m.pauses++
		return
	}
	m.current = append(m.current, msg.Step.Bell)
	if msg.Snap.Position != 0 {
		return
	}
	if len(m.rows) == historyCapacity {
		m.rows = append(m.rows[:0], m.rows[1:]...)
	}
	m.rows = append(m.rows, m.current)
	m.current = nil
	m.changes = msg.Snap.Changes
}

func (m Model) renderRow(row []int) string {
	var b strings.Builder
	for _, bell := range row {
		sym := string(notation.SymbolOf(bell - 1))
		switch {
		case m.ctx.Muted(bell):
			b.WriteString(mutedStyle.Render(sym))
		case bell == m.lineBell:
			b.WriteString(lineStyle.Render(sym))
		case bell == 1:
			b.WriteString(trebleStyle.Render(sym))
		default:
			b.WriteString(sym)
		}
	}
	return b.String()
}

func (m Model) View() string {
	var rows strings.Builder
	start := max(0, len(m.rows)-visibleRows)
	for i, row := range m.rows[start:] {
		fmt.Fprintf(&rows, "%4d  %s\n", m.changes-len(m.rows)+start+i, m.renderRow(row))
	}
	fmt.Fprintf(&rows, "      %s", m.renderRow(m.current))
	rowsView := rowsStyle.Render(rows.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	if m.running {
		s.WriteString(runStyle.Render("RINGING") + "\n\n")
	} else {
		s.WriteString(stopStyle.Render("STOOD") + "\n\n")
	}

	stage := fmt.Sprintf("%d", m.method.Bells)
	if m.method.TenorAdded {
		stage += " (covered)"
	}
	peal := m.ctx.Peal()
	s.WriteString(labelStyle.Render("Notation") + valueStyle.Render(orRounds(m.method.Notation)) + "\n")
	s.WriteString(labelStyle.Render("Bells") + valueStyle.Render(stage) + "\n")
	s.WriteString(labelStyle.Render("Lead") + valueStyle.Render(fmt.Sprintf("%d rows", m.method.LeadLength())) + "\n")
	s.WriteString(labelStyle.Render("Changes") + valueStyle.Render(fmt.Sprintf("%d", m.changes)) + "\n")
	s.WriteString(labelStyle.Render("Key") + valueStyle.Render(fmt.Sprintf("%s (%d bells)", peal.Key, peal.Sounds)) + "\n")
	s.WriteString(labelStyle.Render("Tenor") + valueStyle.Render(fmt.Sprintf("%d", m.ctx.Tenor())) + "\n")

	if line := m.blueLine(); line != "" {
		s.WriteString(graphStyle.Render(line) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("SP:Stand/Go  R:Rounds  Q:Quit\nTAB:Line bell  +/-:Key\n1-9,0,E,T:Mute bell  ?:Help"))
	} else {
		s.WriteString(helpStyle.Render("?:Help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rowsView, statsStyle.Render(s.String()))
}

func (m Model) blueLine() string {
	if m.method.Bells < 2 || len(m.rows) < 2 {
		return ""
	}
	window := m.rows[max(0, len(m.rows)-lineWindow):]
	return asciigraph.Plot(ringing.PlaceOf(window, m.lineBell),
		asciigraph.Height(m.method.Bells),
		asciigraph.LowerBound(1),
		asciigraph.UpperBound(float64(m.method.Bells)),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("place of %c", notation.SymbolOf(m.lineBell-1))),
	)
}

func orRounds(s string) string {
	if s == "" {
		return "rounds"
	}
	return s
}
