package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	pprogress "github.com/moyu-x/duplicate-finder/pkg/progress"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "enter", "esc":
			if m.state != StateScanning {
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.progressBar.Width = msg.Width - 10
		return m, nil

	case progressTickMsg:
		if m.state != StateScanning {
			return m, nil
		}
		m.snap = m.tracker.Snapshot()
		cmds := []tea.Cmd{progressTick()}
		if m.snap.stage == pprogress.StageCompare && m.snap.total > 0 {
			cmds = append(cmds, m.progressBar.SetPercent(float64(m.snap.processed)/float64(m.snap.total)))
		}
		return m, tea.Batch(cmds...)

	case scanCompleteMsg:
		m.state = StateComplete
		m.result = msg.result
		m.snap = m.tracker.Snapshot()
		return m, m.progressBar.SetPercent(1)

	case errMsg:
		m.state = StateFailed
		m.err = msg
		return m, nil

	case spinner.TickMsg:
		if m.state != StateScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		model, cmd := m.progressBar.Update(msg)
		m.progressBar = model.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}
