package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/duplicate-finder/internal/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "列出保存过的扫描报告",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		limit, _ := cmd.Flags().GetInt("limit")

		return app.RunHistory(&app.HistoryOptions{
			ConfigFile: cfgFile,
			DBPath:     dbPath,
			Limit:      limit,
			Out:        cmd.OutOrStdout(),
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "输出一次保存过的扫描报告",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")

		return app.RunHistory(&app.HistoryOptions{
			ConfigFile: cfgFile,
			DBPath:     dbPath,
			ScanID:     args[0],
			Out:        cmd.OutOrStdout(),
		})
	},
}

func init() {
	historyCmd.PersistentFlags().String("db", "", "报告数据库路径 (默认使用配置文件)")
	historyCmd.Flags().IntP("limit", "n", 20, "最多列出的记录数，0 表示全部")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
