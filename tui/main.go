package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/duplicate-finder/internal"
	"github.com/moyu-x/duplicate-finder/pkg/logger"
	"github.com/moyu-x/duplicate-finder/pkg/progress"
)

// ErrInterrupted 扫描完成前界面被关闭
var ErrInterrupted = errors.New("scan interrupted")

// ScanFunc 执行扫描，进度事件发送给 observer
type ScanFunc func(observer progress.Observer) (*internal.ScanResult, error)

type teaModel struct {
	m *model
}

func (tm teaModel) Init() tea.Cmd {
	return tm.m.Init()
}

func (tm teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := tm.m.Update(msg)
	return tm, cmd
}

func (tm teaModel) View() string {
	return tm.m.View()
}

// Run 在后台执行扫描并显示实时进度
// 界面退出后返回扫描结果；扫描未完成就退出时返回 ErrInterrupted
func Run(roots []string, scan ScanFunc) (*internal.ScanResult, error) {
	logger.Get().Info().Msg("启动 TUI 界面")

	t := &tracker{}
	m := initialModel(roots, t)
	p := tea.NewProgram(teaModel{m: &m}, tea.WithAltScreen())

	type outcome struct {
		result *internal.ScanResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := scan(t)
		done <- outcome{result: result, err: err}
		if err != nil {
			p.Send(errMsg(err))
			return
		}
		p.Send(scanCompleteMsg{result: result})
	}()

	if _, err := p.Run(); err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
		return nil, err
	}
	logger.Get().Info().Msg("TUI 正常退出")

	select {
	case o := <-done:
		return o.result, o.err
	default:
		logger.Get().Warn().Msg("扫描未完成，界面已退出")
		return nil, ErrInterrupted
	}
}
