package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/duplicate-finder/internal/app"
)

var scanCmd = &cobra.Command{
	Use:   "scan <directories...>",
	Short: "扫描目录并列出重复文件",
	Long: `遍历指定目录中的所有文件，按大小分组后逐字节比较，列出内容相同的文件。
超过比较缓冲区的文件只比较开头部分，报告中会标注比较的字节数。`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	workers, _ := cmd.Flags().GetInt("workers")
	dbPath, _ := cmd.Flags().GetString("db")
	save, _ := cmd.Flags().GetBool("save")
	useTUI, _ := cmd.Flags().GetBool("tui")
	heartbeat, _ := cmd.Flags().GetDuration("heartbeat")

	opts := &app.ScanOptions{
		Roots:      args,
		ConfigFile: cfgFile,
		DBPath:     dbPath,
		Save:       save,
		Workers:    workers,
		Heartbeat:  heartbeat,
		Verbose:    verbose,
		TUI:        useTUI,
		Out:        cmd.OutOrStdout(),
	}

	_, err := app.RunScan(opts)
	return err
}

func init() {
	scanCmd.Flags().BoolP("verbose", "v", false, "输出调试日志")
	scanCmd.Flags().IntP("workers", "w", 0, "并行比较的数量 (默认使用配置文件)")
	scanCmd.Flags().String("db", "", "报告数据库路径，指定后保存报告")
	scanCmd.Flags().Bool("save", false, "保存报告到配置的数据库")
	scanCmd.Flags().Bool("tui", false, "显示实时进度界面")
	scanCmd.Flags().Duration("heartbeat", 0, "进度心跳间隔 (默认使用配置文件)")

	rootCmd.AddCommand(scanCmd)
}
