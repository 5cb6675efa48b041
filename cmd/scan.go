package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sourcelines/internal/config"
	"sourcelines/internal/languages"
	"sourcelines/internal/model"
	"sourcelines/internal/report"
	"sourcelines/internal/scanner"
)

// scanOptions 存放 scan 命令的可配置参数。
type scanOptions struct {
	recursive      bool
	sum            bool
	verbose        bool
	color          bool
	followSymlinks bool
	include        []string
	exclude        []string

	actualKlocs bool
	actualLoc   bool
	rawKlocs    bool
	rawLoc      bool
	words       bool
	chars       bool
	bytes       bool

	format  string
	output  string
	workers int
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	sourcelines scan .
//	sourcelines scan -rs --exclude 'dist' src/ docs/
//	sourcelines scan ./project --format json --output result.json
func newScanCmd(registry *languages.Registry, cfg config.Config) *cobra.Command {
	options := scanOptions{
		followSymlinks: cfg.FollowSymlinks,
		color:          cfg.Color,
		format:         "text",
		workers:        cfg.Workers,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "扫描文件或目录并输出代码统计信息",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 未给路径时默认等价于 scan -rv .（原始工具的缺省行为）。
			targets := args
			if len(targets) == 0 {
				targets = []string{"."}
				options.recursive = true
				options.verbose = true
			}
			return runScan(cmd, registry, cfg, options, targets)
		},
	}

	flags := scanCmd.Flags()
	flags.BoolVarP(&options.recursive, "recursive", "r", options.recursive, "递归处理目录")
	flags.BoolVarP(&options.sum, "sum", "s", options.sum, "末尾输出总计行")
	flags.BoolVarP(&options.verbose, "verbose", "v", options.verbose, "输出逐文件明细与语言级汇总")
	flags.BoolVarP(&options.color, "color", "C", options.color, "输出 ANSI 着色")
	flags.BoolVarP(&options.followSymlinks, "follow-symlinks", "L", options.followSymlinks, "跟随符号链接")
	flags.StringArrayVar(&options.include, "include", nil, "纳入匹配该通配符的文件/目录（可重复）")
	flags.StringArrayVar(&options.exclude, "exclude", nil, "排除匹配该通配符的文件/目录（可重复）")

	flags.BoolVarP(&options.actualKlocs, "actual-klocs", "k", false, "展示实际千行数（实际行/1000）")
	flags.BoolVarP(&options.actualLoc, "actual-loc", "l", false, "展示实际代码行数")
	flags.BoolVarP(&options.rawKlocs, "raw-klocs", "K", false, "展示原始千行数（原始行/1000）")
	flags.BoolVarP(&options.rawLoc, "raw-loc", "R", false, "展示原始行数")
	flags.BoolVarP(&options.words, "words", "w", false, "展示词数")
	flags.BoolVarP(&options.chars, "chars", "c", false, "展示字符数")
	flags.BoolVarP(&options.bytes, "bytes", "b", false, "展示字节数")

	flags.StringVar(&options.format, "format", options.format, "输出格式: text、table、json 或 yaml")
	flags.StringVar(&options.output, "output", "", "json 格式时的导出文件路径")
	flags.IntVar(&options.workers, "workers", options.workers, "并发 worker 数量，0 表示取 CPU 核数")

	return scanCmd
}

// runScan 执行一次扫描并按选项渲染结果。
func runScan(cmd *cobra.Command, registry *languages.Registry, cfg config.Config, options scanOptions, targets []string) error {
	format := strings.ToLower(strings.TrimSpace(options.format))
	switch format {
	case "text", "table", "json", "yaml":
	default:
		return errors.New("unsupported format, allowed values: text, table, json, yaml")
	}

	if options.workers < 0 {
		return errors.New("workers must not be negative")
	}

	service, err := scanner.NewService(registry, scanner.Options{
		Recursive:      options.recursive,
		FollowSymlinks: options.followSymlinks,
		Include:        options.include,
		Exclude:        append(cfg.ExcludePatterns(), options.exclude...),
		Workers:        options.workers,
		Logger:         newScanLogger(options.verbose),
	})
	if err != nil {
		return err
	}

	result, err := service.ScanPaths(targets)
	if err != nil {
		return err
	}

	return renderResult(cmd, cfg, options, format, result)
}

// renderResult 按格式输出扫描结果。
func renderResult(cmd *cobra.Command, cfg config.Config, options scanOptions, format string, result model.ScanResult) error {
	switch format {
	case "text":
		columns, err := resolveColumns(cfg, options)
		if err != nil {
			return err
		}
		return report.PrintText(cmd.OutOrStdout(), result, report.TextOptions{
			Columns: columns,
			Color:   options.color,
			Sum:     options.sum,
			Verbose: options.verbose,
		})
	case "table":
		return report.PrintTable(cmd.OutOrStdout(), result)
	case "json":
		if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		if outputPath := strings.TrimSpace(options.output); outputPath != "" {
			if err := report.WriteJSONFile(outputPath, result); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nJSON exported to %s\n", outputPath)
		}
		return nil
	default:
		return report.PrintYAML(cmd.OutOrStdout(), result)
	}
}

// resolveColumns 合并列选择：命令行列开关 > 配置文件 columns > 内置默认。
func resolveColumns(cfg config.Config, options scanOptions) (report.Columns, error) {
	columns := report.Columns{
		ActualKlocs: options.actualKlocs,
		ActualLoc:   options.actualLoc,
		RawKlocs:    options.rawKlocs,
		RawLoc:      options.rawLoc,
		Words:       options.words,
		Chars:       options.chars,
		Bytes:       options.bytes,
	}
	if columns.Any() {
		return columns.Normalize(), nil
	}

	if len(cfg.Columns) > 0 {
		configured, err := columnsFromNames(cfg.Columns)
		if err != nil {
			return report.Columns{}, err
		}
		return configured.Normalize(), nil
	}

	return report.DefaultColumns(), nil
}

// columnsFromNames 把配置文件中的列名列表解析成列集合。
func columnsFromNames(names []string) (report.Columns, error) {
	var columns report.Columns
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "actual-klocs":
			columns.ActualKlocs = true
		case "actual-loc":
			columns.ActualLoc = true
		case "raw-klocs":
			columns.RawKlocs = true
		case "raw-loc", "raw-locs":
			columns.RawLoc = true
		case "words":
			columns.Words = true
		case "chars":
			columns.Chars = true
		case "bytes":
			columns.Bytes = true
		default:
			return report.Columns{}, fmt.Errorf("unknown column name: %q", name)
		}
	}
	return columns, nil
}

// newScanLogger 创建扫描诊断日志。
// 仅在 verbose 模式下输出 debug 级别信息（跳过的二进制文件、符号链接等）。
func newScanLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
