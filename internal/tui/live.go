// Package tui drives a live terminal view of a spectrum computation:
// a progress bar over the wavenumber grid while the solver works, then
// the spectral parameters once it is done.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/spectrum"
	"github.com/san-kum/primordial/internal/viz"
)

type TickMsg time.Time

type progressMsg struct {
	done, total int
}

type doneMsg struct {
	res *spectrum.Result
	err error
}

// Model tracks the state of the live view.
type Model struct {
	kind  string
	frame int

	done, total int

	res      *spectrum.Result
	err      error
	finished bool
	started  time.Time
}

func NewModel(kind string) Model {
	return Model{kind: kind, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/15, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.err = context.Canceled
			return m, tea.Quit
		}
	case progressMsg:
		m.done, m.total = msg.done, msg.total
	case doneMsg:
		m.res, m.err = msg.res, msg.err
		m.finished = true
		return m, tea.Quit
	case TickMsg:
		m.frame++
		return m, tea.Tick(time.Second/15, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render(strings.ToUpper(m.kind)) + "\n")

	if m.finished {
		if m.err != nil {
			s.WriteString(viz.StatusFailed.Render("FAILED") + "\n")
			s.WriteString(m.err.Error() + "\n")
			return s.String()
		}
		s.WriteString(viz.StatusRunning.Render("DONE") + fmt.Sprintf(" in %v\n\n", time.Since(m.started).Round(time.Millisecond)))
		s.WriteString(viz.Summary(m.res.Observables) + "\n")
		return s.String()
	}

	s.WriteString(viz.AnimatedSpinner(m.frame) + " solving\n\n")
	if m.total > 0 {
		percent := float64(m.done) / float64(m.total)
		s.WriteString(viz.ProgressBar(percent, 40))
		s.WriteString(fmt.Sprintf(" %d/%d wavenumbers\n", m.done, m.total))
	} else {
		s.WriteString(viz.LabelStyle.Render("preparing") + viz.ValueStyle.Render("background evolution") + "\n")
	}
	s.WriteString(viz.HelpStyle.Render("\nQ:Quit"))
	return s.String()
}

// Run solves the configured spectrum under a live view and returns the
// result once the view exits.
func Run(ctx context.Context, cfg *config.Config) (*spectrum.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(cfg.Kind))

	go func() {
		solver, err := spectrum.New(cfg, nil,
			spectrum.WithProgress(func(done, total int) {
				p.Send(progressMsg{done: done, total: total})
			}))
		if err != nil {
			p.Send(doneMsg{err: err})
			return
		}
		res, err := solver.Solve(ctx)
		p.Send(doneMsg{res: res, err: err})
	}()

	out, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := out.(Model)
	if final.err != nil {
		return nil, final.err
	}
	if final.res == nil {
		return nil, fmt.Errorf("tui: view closed before the solver finished")
	}
	return final.res, nil
}
