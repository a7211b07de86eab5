// Package tui is a terminal front-end over the widget core. It keeps its
// state in process and uses tea.Tick for auto-generate.
package tui

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"number_generator/internal/widget"
)

const (
	fieldMin = iota
	fieldMax
	fieldCount
	fieldTotal
)

// Config holds the knobs the terminal front-end reads from config.
type Config struct {
	MaxCount   int
	AutoPeriod time.Duration
}

// autoTickMsg fires one auto-generate step. Ticks carrying an old epoch are
// dropped, so nothing is generated after auto-generate is switched off.
type autoTickMsg struct{ epoch int }

// Model implements tea.Model.
type Model struct {
	cfg   Config
	rng   *rand.Rand
	state widget.State

	inputs  []textinput.Model
	focus   int
	editing bool
	errMsg  string

	epoch  int
	width  int
	height int
}

// NewModel builds a model with default parameters.
func NewModel(rng *rand.Rand, cfg Config) *Model {
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = widget.DefaultMaxCount
	}
	if cfg.AutoPeriod <= 0 {
		cfg.AutoPeriod = 3 * time.Second
	}
	m := &Model{cfg: cfg, rng: rng, state: widget.NewState()}
	m.inputs = make([]textinput.Model, fieldTotal)
	for i, label := range []string{"min", "max", "count"} {
		in := textinput.New()
		in.Prompt = label + ": "
		in.CharLimit = 20
		in.Width = 12
		m.inputs[i] = in
	}
	m.syncInputs()
	return m
}

// State returns the current widget state.
func (m *Model) State() widget.State { return m.state }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case autoTickMsg:
		if !m.state.AutoGenerate || msg.epoch != m.epoch {
			return m, nil
		}
		m.generate()
		return m, m.scheduleTick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateCommand(msg)
	}
	return m, nil
}

func (m *Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "g", " ":
		m.generate()
	case "c":
		m.state = m.state.Cleared()
	case "f":
		m.cycleFilter()
	case "t":
		m.state = m.state.ToggledTheme()
	case "a":
		return m, m.setAuto(!m.state.AutoGenerate)
	case "e", "tab":
		m.editing = true
		m.focusField(fieldMin)
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopEditing()
		m.syncInputs()
		m.errMsg = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyInputs(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.stopEditing()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.focusField((m.focus + 1) % fieldTotal)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusField((m.focus + fieldTotal - 1) % fieldTotal)
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) generate() {
	m.state, _ = m.state.Generate(m.rng)
}

func (m *Model) cycleFilter() {
	next := map[widget.Filter]widget.Filter{
		widget.FilterAll:  widget.FilterEven,
		widget.FilterEven: widget.FilterOdd,
		widget.FilterOdd:  widget.FilterAll,
	}
	p := m.state.Params
	p.Filter = next[p.Filter]
	if st, err := m.state.WithParams(p, m.cfg.MaxCount); err == nil {
		m.state = st
	}
}

// setAuto flips auto-generate. Enabling schedules the first tick; disabling
// bumps the epoch so a tick already in flight is ignored.
func (m *Model) setAuto(on bool) tea.Cmd {
	m.state = m.state.WithAutoGenerate(on)
	m.epoch++
	if !on {
		return nil
	}
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(m.cfg.AutoPeriod, func(time.Time) tea.Msg {
		return autoTickMsg{epoch: epoch}
	})
}

func (m *Model) applyInputs() error {
	p := m.state.Params
	var err error
	if p.Min, err = parseInt(m.inputs[fieldMin].Value()); err != nil {
		return err
	}
	if p.Max, err = parseInt(m.inputs[fieldMax].Value()); err != nil {
		return err
	}
	count, err := parseInt(m.inputs[fieldCount].Value())
	if err != nil {
		return err
	}
	p.Count = int(count)
	st, err := m.state.WithParams(p, m.cfg.MaxCount)
	if err != nil {
		return err
	}
	m.state = st
	return nil
}

func (m *Model) focusField(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[i].Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.inputs[m.focus].Blur()
}

func (m *Model) syncInputs() {
	p := m.state.Params
	m.inputs[fieldMin].SetValue(strconv.FormatInt(p.Min, 10))
	m.inputs[fieldMax].SetValue(strconv.FormatInt(p.Max, 10))
	m.inputs[fieldCount].SetValue(strconv.Itoa(p.Count))
}

type parseError string

func (e parseError) Error() string { return string(e) }

func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, parseError("not a whole number: " + strconv.Quote(s))
	}
	return v, nil
}
