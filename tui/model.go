package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/duplicate-finder/internal"
)

type State int

const (
	StateScanning State = iota
	StateComplete
	StateFailed
)

type model struct {
	state       State
	roots       []string
	tracker     *tracker
	snap        snapshot
	result      *internal.ScanResult
	startTime   time.Time
	progressBar progress.Model
	spinner     spinner.Model
	err         error
}

func initialModel(roots []string, t *tracker) model {
	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Width(4)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		state:       StateScanning,
		roots:       roots,
		tracker:     t,
		startTime:   time.Now(),
		progressBar: progressBar,
		spinner:     s,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, progressTick())
}
