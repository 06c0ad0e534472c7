package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moyu-x/duplicate-finder/config"
	"github.com/moyu-x/duplicate-finder/pkg/database"
	"github.com/moyu-x/duplicate-finder/pkg/logger"
	"github.com/moyu-x/duplicate-finder/pkg/report"
)

type HistoryOptions struct {
	ConfigFile string
	DBPath     string
	Limit      int
	// 非空时输出该次扫描的完整报告
	ScanID string

	Out io.Writer
}

// RunHistory 列出保存过的扫描，或输出其中一次的报告
func RunHistory(opts *HistoryOptions) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.File, Console: true}); err != nil {
		return err
	}

	dbPath := cfg.Database.Path
	if opts.DBPath != "" {
		dbPath = opts.DBPath
	}

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("打开报告数据库失败: %w", err)
	}
	defer db.Close()

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.ScanID != "" {
		result, err := db.LoadScan(opts.ScanID)
		if err != nil {
			return err
		}
		fmt.Fprint(out, report.Render(result))
		return nil
	}

	records, err := db.ListScans(opts.Limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "没有保存的扫描记录")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(out, "%s  %s  %d 组重复, 可释放 %s  [%s]\n",
			r.ID,
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			r.GroupCount,
			report.FormatBytes(r.TotalReclaimable),
			strings.ReplaceAll(r.Roots, "\n", ", "))
	}
	return nil
}
