package report

import (
	"fmt"
	"strings"

	"github.com/moyu-x/duplicate-finder/internal"
)

// Render 生成扫描结果的文本报告
// 仅部分比较的组会标注比较的字节数，提示可能误报
func Render(result *internal.ScanResult) string {
	var b strings.Builder

	b.WriteString(separatorStyle.Render(strings.Repeat("=", 60)) + "\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("最终结果: %d 组重复文件", len(result.DuplicateGroups))) + "\n\n")

	for _, g := range result.DuplicateGroups {
		b.WriteString(sizeStyle.Render(fmt.Sprintf("重复文件，大小: %d (%s)", g.Size(), FormatBytes(g.Size()))))
		b.WriteString(" ")
		b.WriteString(MatchLabel(g))
		if g.FileType != "" {
			b.WriteString(hintStyle.Render(" [" + g.FileType + "]"))
		}
		b.WriteString("\n")
		for _, f := range g.Files {
			b.WriteString("    " + filePathStyle.Render(f.FullPath) + "\n")
		}
	}

	if len(result.DuplicateGroups) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(summaryStyle.Render(Summary(result)) + "\n")
	return b.String()
}

// MatchLabel 返回完全匹配或部分匹配的标注
func MatchLabel(g internal.DuplicateGroup) string {
	if g.Partial() {
		return partialMatchStyle.Render(fmt.Sprintf("(前 %d 字节相同，未完整比较)", *g.PartialComparisonLimit))
	}
	return fullMatchStyle.Render("(完全相同)")
}

// Summary 返回扫描摘要
func Summary(result *internal.ScanResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("扫描目录数:   %d\n", len(result.Roots)))
	b.WriteString(fmt.Sprintf("扫描文件数:   %d\n", result.FilesScanned))
	b.WriteString(fmt.Sprintf("候选文件数:   %d\n", result.Candidates))
	b.WriteString(fmt.Sprintf("重复文件组:   %d\n", len(result.DuplicateGroups)))
	b.WriteString(fmt.Sprintf("多余副本数:   %d\n", result.DuplicateFileCount()))
	if partial := partialCount(result); partial > 0 {
		b.WriteString(fmt.Sprintf("部分比较组:   %d\n", partial))
	}
	if result.SkippedEntries > 0 {
		b.WriteString(fmt.Sprintf("跳过的条目:   %d\n", result.SkippedEntries))
	}
	if result.ReadFailures > 0 {
		b.WriteString(fmt.Sprintf("读取失败:     %d\n", result.ReadFailures))
	}
	if !result.EndTime.IsZero() {
		b.WriteString(fmt.Sprintf("总耗时:       %v\n", result.EndTime.Sub(result.StartTime).Round(1e6)))
	}
	b.WriteString(fmt.Sprintf("删除重复文件后可释放 %d 字节 (%s)", result.TotalReclaimableBytes, FormatBytes(result.TotalReclaimableBytes)))
	return b.String()
}

func partialCount(result *internal.ScanResult) int {
	count := 0
	for _, g := range result.DuplicateGroups {
		if g.Partial() {
			count++
		}
	}
	return count
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
