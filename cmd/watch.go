package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"sourcelines/internal/config"
	"sourcelines/internal/languages"
	"sourcelines/internal/report"
	"sourcelines/internal/scanner"
)

// watchOptions 存放 watch 命令的可配置参数。
type watchOptions struct {
	debounce time.Duration
	color    bool
}

// newWatchCmd 创建 watch 子命令。
// 监听目标目录的文件变更，变更平静 debounce 时长后重新扫描并输出总计。
func newWatchCmd(registry *languages.Registry, cfg config.Config) *cobra.Command {
	options := watchOptions{
		debounce: 250 * time.Millisecond,
		color:    cfg.Color,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "监听目录变更并持续输出统计总计",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			service, err := scanner.NewService(registry, scanner.Options{
				Recursive: true,
				Exclude:   cfg.ExcludePatterns(),
				Workers:   cfg.Workers,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rescan := func() error {
				result, scanErr := service.ScanPaths([]string{target})
				if scanErr != nil {
					return scanErr
				}
				return report.PrintText(cmd.OutOrStdout(), result, report.TextOptions{
					Columns: report.DefaultColumns(),
					Color:   options.color,
					Sum:     true,
				})
			}

			if err := rescan(); err != nil {
				return err
			}

			return watchLoop(ctx, target, options.debounce, func() {
				if err := rescan(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "rescan failed: %v\n", err)
				}
			})
		},
	}

	watchCmd.Flags().DurationVar(&options.debounce, "debounce", options.debounce, "变更合并窗口时长")
	watchCmd.Flags().BoolVarP(&options.color, "color", "C", options.color, "输出 ANSI 着色")

	return watchCmd
}

// watchLoop 运行 fsnotify 事件循环。
// 事件经 debounce 合并：窗口内的连续变更只触发一次回调。
func watchLoop(ctx context.Context, target string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, target); err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if shouldIgnoreWatchPath(event.Name) {
				continue
			}

			// 新建目录要补充加入监听，否则其内部变更不可见。
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addWatchRecursive(watcher, event.Name)
				}
			}

			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(debounce)
			pending = true
		case <-timer.C:
			if pending {
				pending = false
				onChange()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

// addWatchRecursive 把目标及其全部子目录加入监听。
func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat watch target: %w", err)
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && shouldSkipWatchDir(entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldSkipWatchDir 过滤不值得监听的目录。
func shouldSkipWatchDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "target", "build", "_build", "builddir":
		return true
	}
	return false
}

// shouldIgnoreWatchPath 过滤编辑器临时文件产生的噪音事件。
func shouldIgnoreWatchPath(path string) bool {
	base := filepath.Base(path)
	return base == ".DS_Store" ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#")
}
