// Package cmd 提供 sourcelines 的命令行入口与子命令编排。
package cmd

import (
	"github.com/spf13/cobra"

	"sourcelines/internal/config"
	"sourcelines/internal/languages"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	registry := languages.NewRegistry()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	rootCmd := newRootCmd(version, registry, cfg)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry, cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sourcelines",
		Short: "统计源码的实际代码行、原始行、词数、字符数与字节数",
		Long: "sourcelines 按语言的注释/字符串语法区分实际代码行与空白、纯注释行，\n" +
			"支持并发扫描目录树、glob 过滤、多种输出格式与变更监听。",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry, cfg))
	rootCmd.AddCommand(newWatchCmd(registry, cfg))

	return rootCmd
}
