// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、glob 过滤、任务分发、并发执行和结果聚合，
// 不负责语言识别与行分类的细节（见 internal/languages）。
package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"sourcelines/internal/languages"
	"sourcelines/internal/model"
)

// binarySniffLimit 是二进制探测读取的前缀窗口大小。
const binarySniffLimit = 8192

// Options 存放一次扫描的可配置参数。
type Options struct {
	// Recursive 为 false 时目录只统计其直接子文件。
	Recursive bool
	// FollowSymlinks 为 false 时符号链接被直接跳过。
	FollowSymlinks bool
	// Include 命中时覆盖 Exclude 的排除结果。
	Include []string
	Exclude []string
	Workers int
	Logger  *slog.Logger
}

// Service 是扫描服务对象。
type Service struct {
	registry *languages.Registry
	options  Options
	logger   *slog.Logger
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
}

// workerResult 表示 worker 的执行产物。
type workerResult struct {
	fileStats *model.FileStats
	scanError *model.ScanError
}

// NewService 创建扫描服务。
// include/exclude 模式在这里统一校验，非法模式立即报错，
// 避免扫描中途才暴露配置问题。
func NewService(registry *languages.Registry, options Options) (*Service, error) {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}

	for _, pattern := range append(append([]string(nil), options.Include...), options.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern: %q", pattern)
		}
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Service{
		registry: registry,
		options:  options,
		logger:   logger,
	}, nil
}

// ScanPaths 扫描一组文件或目录。
// 扫描过程并发执行；单文件的分类是纯计算，worker 之间只共享只读注册中心。
func (s *Service) ScanPaths(targets []string) (model.ScanResult, error) {
	var result model.ScanResult

	if len(targets) == 0 {
		return result, errors.New("no scan targets")
	}

	tasks := make(chan scanTask, s.options.Workers*4)
	results := make(chan workerResult, s.options.Workers*4)
	walkErrChan := make(chan error, 1)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.options.Workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(tasks, results)
		}()
	}

	go func() {
		defer close(tasks)
		walkErrChan <- s.enqueueTargets(targets, tasks)
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	aggregate := model.NewAggregate()
	result.ScannedPaths = append([]string(nil), targets...)
	result.Files = make([]model.FileStats, 0)
	result.Errors = make([]model.ScanError, 0)

	for item := range results {
		if item.fileStats != nil {
			result.Files = append(result.Files, *item.fileStats)
			aggregate.AddFile(*item.fileStats)
		}
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}

	if walkErr := <-walkErrChan; walkErr != nil {
		return result, walkErr
	}

	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	result.Languages = aggregate.Languages()
	result.Total = aggregate.Total()
	return result, nil
}

// enqueueTargets 依次处理命令行给出的每个目标路径。
func (s *Service) enqueueTargets(targets []string, tasks chan<- scanTask) error {
	for _, target := range targets {
		trimmed := strings.TrimSpace(target)
		if trimmed == "" {
			return errors.New("scan path is empty")
		}

		info, err := os.Stat(trimmed)
		if err != nil {
			return fmt.Errorf("stat path: %w", err)
		}

		if info.IsDir() {
			if err := s.enqueueDirectoryTasks(trimmed, tasks); err != nil {
				return err
			}
			continue
		}

		tasks <- scanTask{
			absolutePath: trimmed,
			displayPath:  filepath.ToSlash(trimmed),
		}
	}
	return nil
}

// enqueueDirectoryTasks 遍历目录并把通过过滤的文件推入任务队列。
// 非递归模式只看目录的直接子项。
func (s *Service) enqueueDirectoryTasks(root string, tasks chan<- scanTask) error {
	if !s.options.Recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return fmt.Errorf("read dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if s.skipEntry(root, path, entry) {
				continue
			}
			tasks <- scanTask{
				absolutePath: path,
				displayPath:  filepath.ToSlash(path),
			}
		}
		return nil
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() {
			if path != root && s.skipEntry(root, path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.skipEntry(root, path, entry) {
			return nil
		}

		tasks <- scanTask{
			absolutePath: path,
			displayPath:  filepath.ToSlash(path),
		}
		return nil
	})
}

// skipEntry 判断一个目录项是否应该被过滤掉。
// 过滤依据：符号链接开关、exclude 模式（可被 include 覆盖）。
func (s *Service) skipEntry(root string, path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink != 0 && !s.options.FollowSymlinks {
		s.logger.Debug("skip symlink", "path", path)
		return true
	}

	name := entry.Name()
	relativePath, relErr := filepath.Rel(root, path)
	if relErr != nil {
		relativePath = path
	}
	relativePath = filepath.ToSlash(relativePath)

	if matchesAny(s.options.Exclude, name, relativePath) &&
		!matchesAny(s.options.Include, name, relativePath) {
		s.logger.Debug("skip excluded entry", "path", path)
		return true
	}
	return false
}

// matchesAny 用 doublestar 模式同时匹配文件名和相对路径。
// 模式已在 NewService 阶段校验过，这里忽略匹配错误。
func matchesAny(patterns []string, name string, relativePath string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, relativePath); ok {
			return true
		}
	}
	return false
}

// runWorker 执行真实的文件读取、语言识别和行分类。
func (s *Service) runWorker(tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		content, readErr := os.ReadFile(task.absolutePath)
		if readErr != nil {
			results <- workerResult{
				scanError: &model.ScanError{
					Path:  task.displayPath,
					Error: readErr.Error(),
				},
			}
			continue
		}

		// 二进制文件没有可统计的“行”概念，直接跳过。
		if isBinary(content) {
			s.logger.Debug("skip binary file", "path", task.displayPath)
			continue
		}

		definition := s.registry.Detect(task.absolutePath, content)
		stats := languages.ClassifyFile(task.displayPath, content, definition)
		results <- workerResult{fileStats: &stats}
	}
}

// isBinary 通过前 8KB 是否包含 NUL 字节来判断二进制文件。
func isBinary(content []byte) bool {
	window := content
	if len(window) > binarySniffLimit {
		window = window[:binarySniffLimit]
	}
	return bytes.IndexByte(window, 0) >= 0
}
