package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/duplicate-finder/config"
	"github.com/moyu-x/duplicate-finder/internal"
	"github.com/moyu-x/duplicate-finder/pkg/buffer"
	"github.com/moyu-x/duplicate-finder/pkg/database"
	"github.com/moyu-x/duplicate-finder/pkg/logger"
	"github.com/moyu-x/duplicate-finder/pkg/progress"
	"github.com/moyu-x/duplicate-finder/pkg/report"
	"github.com/moyu-x/duplicate-finder/pkg/session"
	"github.com/moyu-x/duplicate-finder/tui"
)

type ScanOptions struct {
	Roots      []string
	ConfigFile string
	// 非空时覆盖 database.path，并保存报告
	DBPath  string
	Save    bool
	Workers int
	// 为 0 时使用 scanner.heartbeat
	Heartbeat time.Duration
	Verbose   bool
	TUI       bool

	Out io.Writer
	Fs  afero.Fs
}

// RunScan 加载配置、执行扫描并输出报告
func RunScan(opts *ScanOptions) (*internal.ScanResult, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	logLevel := cfg.Logging.Level
	if opts.Verbose {
		logLevel = "debug"
	}

	if err := logger.Init(logger.Options{Level: logLevel, File: cfg.Logging.File, Console: !opts.TUI}); err != nil {
		return nil, err
	}

	logger.Get().Info().Msg("加载配置完成")

	workers := cfg.Performance.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	heartbeat := cfg.Scanner.Heartbeat
	if opts.Heartbeat > 0 {
		heartbeat = opts.Heartbeat
	}

	negotiator := buffer.NewNegotiator()
	negotiator.Ceiling = cfg.Buffer.Ceiling
	negotiator.Floor = cfg.Buffer.Floor

	logger.Get().Info().Msgf("扫描目录数: %d", len(opts.Roots))
	for i, dir := range opts.Roots {
		logger.Get().Info().Msgf("  [%d] %s", i+1, dir)
	}
	logger.Get().Info().Msgf("并发数: %d, 心跳间隔: %v, 缓冲区范围: %d-%d", workers, heartbeat, negotiator.Floor, negotiator.Ceiling)

	scan := func(observer progress.Observer) (*internal.ScanResult, error) {
		return session.New(session.Options{
			Roots:             opts.Roots,
			Fs:                opts.Fs,
			Workers:           workers,
			HeartbeatInterval: heartbeat,
			Negotiator:        negotiator,
			Observer:          progress.Observers{session.LogObserver{}, observer},
		}).Run()
	}

	var result *internal.ScanResult
	if opts.TUI {
		result, err = tui.Run(opts.Roots, scan)
	} else {
		result, err = scan(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("扫描失败: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprint(out, report.Render(result))

	if opts.Save || opts.DBPath != "" {
		dbPath := cfg.Database.Path
		if opts.DBPath != "" {
			dbPath = opts.DBPath
		}
		if err := saveResult(dbPath, result); err != nil {
			return result, err
		}
		fmt.Fprintf(out, "报告已保存，编号: %s\n", result.ID)
	}

	return result, nil
}

func saveResult(dbPath string, result *internal.ScanResult) error {
	logger.Get().Info().Msgf("数据库路径: %s", dbPath)

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("打开报告数据库失败: %w", err)
	}
	defer db.Close()

	return db.SaveScan(result)
}
