package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sourcelines/internal/languages"
)

// writeFixtureFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func writeFixtureFile(t *testing.T, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture file failed: %v", err)
	}
}

// newTestService 是测试辅助函数，用给定选项构造扫描服务。
func newTestService(t *testing.T, options Options) *Service {
	t.Helper()

	service, err := NewService(languages.NewRegistry(), options)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	return service
}

// TestScanSingleFile 验证 scan 支持“直接传单文件路径”。
func TestScanSingleFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "single.go")

	writeFixtureFile(t, filePath, strings.Join([]string{
		"package main",
		"// top comment",
		"func main() { x := 1 }",
	}, "\n"))

	service := newTestService(t, Options{Workers: 2})
	result, err := service.ScanPaths([]string{filePath})
	if err != nil {
		t.Fatalf("scan single file failed: %v", err)
	}

	if len(result.Files) != 1 {
		t.Fatalf("expected 1 scanned file, got %d", len(result.Files))
	}
	if result.Total.Files != 1 {
		t.Fatalf("expected total.files=1, got %d", result.Total.Files)
	}

	stats := result.Files[0]
	if stats.Language != "go" {
		t.Fatalf("expected language go, got %s", stats.Language)
	}
	if stats.Counts.RawLines != 3 || stats.Counts.ActualLines != 2 {
		t.Fatalf("unexpected counts: %+v", stats.Counts)
	}
}

// TestScanDirectoryCountsUnknown 验证目录扫描时未识别语言的文件也被统计。
func TestScanDirectoryCountsUnknown(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), "package main\nfunc main() {}\n")
	writeFixtureFile(t, filepath.Join(tempDir, "notes.zzz"), "whatever\n")

	service := newTestService(t, Options{Recursive: true, Workers: 4})
	result, err := service.ScanPaths([]string{tempDir})
	if err != nil {
		t.Fatalf("scan directory failed: %v", err)
	}

	if result.Total.Files != 2 {
		t.Fatalf("expected total.files=2, got %d", result.Total.Files)
	}

	foundUnknown := false
	for _, stats := range result.Files {
		if stats.Language == languages.UnknownLanguage {
			foundUnknown = true
			// 未知语言没有注释抑制，非空行全算实际行。
			if stats.Counts.RawLines != 1 || stats.Counts.ActualLines != 1 {
				t.Fatalf("unexpected unknown counts: %+v", stats.Counts)
			}
		}
	}
	if !foundUnknown {
		t.Fatalf("expected an unknown-language entry, got %+v", result.Files)
	}
}

// TestScanExcludeAndIncludeOverride 验证 exclude 过滤与 include 的覆盖语义。
func TestScanExcludeAndIncludeOverride(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "app.js"), "const x = 1;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "keep.js"), "const y = 2;\n")
	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), "package main\n")

	service := newTestService(t, Options{
		Recursive: true,
		Exclude:   []string{"*.js"},
		Include:   []string{"keep.js"},
		Workers:   2,
	})
	result, err := service.ScanPaths([]string{tempDir})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if result.Total.Files != 2 {
		t.Fatalf("expected 2 files (include overrides exclude), got %d", result.Total.Files)
	}
	for _, stats := range result.Files {
		if strings.HasSuffix(stats.Path, "app.js") {
			t.Fatalf("app.js should have been excluded")
		}
	}
}

// TestScanExcludedDirectorySkipped 验证命中 exclude 的目录整体跳过。
func TestScanExcludedDirectorySkipped(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "src", "main.go"), "package main\n")
	writeFixtureFile(t, filepath.Join(tempDir, "node_modules", "dep.js"), "const x = 1;\n")

	service := newTestService(t, Options{
		Recursive: true,
		Exclude:   []string{"node_modules"},
		Workers:   2,
	})
	result, err := service.ScanPaths([]string{tempDir})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if result.Total.Files != 1 {
		t.Fatalf("expected 1 file, got %d", result.Total.Files)
	}
}

// TestScanNonRecursiveDirectory 验证非递归模式只统计直接子文件。
func TestScanNonRecursiveDirectory(t *testing.T) {
	tempDir := t.TempDir()

	writeFixtureFile(t, filepath.Join(tempDir, "top.go"), "package top\n")
	writeFixtureFile(t, filepath.Join(tempDir, "nested", "deep.go"), "package deep\n")

	service := newTestService(t, Options{Workers: 2})
	result, err := service.ScanPaths([]string{tempDir})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if result.Total.Files != 1 {
		t.Fatalf("expected 1 file in non-recursive mode, got %d", result.Total.Files)
	}
	if !strings.HasSuffix(result.Files[0].Path, "top.go") {
		t.Fatalf("unexpected file: %s", result.Files[0].Path)
	}
}

// TestScanBinaryFileSkipped 验证含 NUL 字节的文件被跳过且不报错。
func TestScanBinaryFileSkipped(t *testing.T) {
	tempDir := t.TempDir()

	binaryPath := filepath.Join(tempDir, "blob.go")
	if err := os.WriteFile(binaryPath, []byte{'a', 0, 'b'}, 0o644); err != nil {
		t.Fatalf("write binary fixture failed: %v", err)
	}
	writeFixtureFile(t, filepath.Join(tempDir, "main.go"), "package main\n")

	service := newTestService(t, Options{Recursive: true, Workers: 2})
	result, err := service.ScanPaths([]string{tempDir})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if result.Total.Files != 1 {
		t.Fatalf("expected binary file to be skipped, got %d files", result.Total.Files)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("binary skip must not produce errors: %+v", result.Errors)
	}
}

// TestScanInvalidPattern 验证非法 glob 模式在构造阶段报错。
func TestScanInvalidPattern(t *testing.T) {
	_, err := NewService(languages.NewRegistry(), Options{Exclude: []string{"[broken"}})
	if err == nil {
		t.Fatalf("expected invalid pattern error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid glob pattern") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestScanMissingTarget 验证不存在的目标路径返回错误。
func TestScanMissingTarget(t *testing.T) {
	service := newTestService(t, Options{Workers: 1})
	_, err := service.ScanPaths([]string{filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatalf("expected stat error, got nil")
	}
}
