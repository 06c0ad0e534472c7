package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/duplicate-finder/pkg/progress"
	"github.com/moyu-x/duplicate-finder/pkg/report"
)

func (m *model) View() string {
	switch m.state {
	case StateScanning:
		return m.scanningView()
	case StateComplete:
		return m.completeView()
	case StateFailed:
		return m.failedView()
	default:
		return "未知状态"
	}
}

func stageTitle(stage progress.Stage) string {
	switch stage {
	case progress.StageScan:
		return "[Stage 1] 正在扫描所有文件..."
	case progress.StageCandidates:
		return "[Stage 2] 正在统计候选文件..."
	case progress.StageCompare:
		return "[Stage 3] 正在比较候选文件..."
	default:
		return "正在准备..."
	}
}

func (m *model) scanningView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔍 "+stageTitle(m.snap.stage)) + "\n\n")

	if m.snap.stage == progress.StageCompare {
		b.WriteString(labelStyle.Render("比较进度：") + "\n")
		b.WriteString(m.progressBar.View() + "\n\n")
	} else {
		b.WriteString(m.spinner.View() + " 扫描目录: " + strings.Join(m.roots, ", ") + "\n\n")
	}

	b.WriteString(statsBoxStyle.Render(m.renderStats()) + "\n\n")

	b.WriteString(labelStyle.Render("当前文件：") + "\n")
	b.WriteString(filePathStyle.Render(m.snap.currentFile) + "\n\n")

	b.WriteString(hintStyle.Render("Ctrl+C 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) renderStats() string {
	var b strings.Builder
	b.WriteString("📊 实时统计：\n\n")
	b.WriteString(fmt.Sprintf("  已扫描目录：  %d\n", m.snap.directories))
	b.WriteString(fmt.Sprintf("  已发现文件：  %d\n", m.snap.filesFound))
	if m.snap.skipped > 0 {
		b.WriteString(fmt.Sprintf("  跳过条目：    %d\n", m.snap.skipped))
	}
	b.WriteString(fmt.Sprintf("  候选文件：    %d\n", m.snap.candidates))
	b.WriteString(fmt.Sprintf("  已比较：      %d / %d\n", m.snap.processed, m.snap.total))
	b.WriteString(fmt.Sprintf("  发现重复：    %d 个文件\n", m.snap.matches))
	b.WriteString(fmt.Sprintf("  已用时间：    %s\n", time.Since(m.startTime).Round(time.Second)))
	return b.String()
}

func (m *model) completeView() string {
	var b strings.Builder

	b.WriteString(successTitleStyle.Render("✅ 扫描完成！") + "\n\n")

	if m.result != nil {
		b.WriteString(statsBoxStyle.Render(report.Summary(m.result)) + "\n\n")
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("按 Enter 或 q 查看完整报告") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) failedView() string {
	var b strings.Builder

	b.WriteString(errorTitleStyle.Render("❌ 扫描失败") + "\n\n")
	b.WriteString(fmt.Sprintf("%v\n\n", m.err))
	b.WriteString(hintStyle.Render("按 Enter 或 q 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}
