package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "duplicate-finder",
	Short: "按字节比较查找重复文件",
	Long: `Duplicate Finder 是一个命令行工具，通过文件大小和逐字节比较查找重复文件。

工作流程:
- 遍历指定目录，按文件大小分组
- 根据可用内存协商比较缓冲区大小
- 先比较文件开头，再比较完整内容
- 输出重复文件组以及删除重复文件后可释放的空间`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认查找 $HOME/.duplicate-finder/config.yaml)")
}
