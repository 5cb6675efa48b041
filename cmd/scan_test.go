package cmd

import (
	"testing"

	"sourcelines/internal/config"
	"sourcelines/internal/languages"
)

// TestScanColumnFlagNames 验证每个列开关的长名都能被配置列名解析器接受，
// 命令行与配置文件使用同一套列名。
func TestScanColumnFlagNames(t *testing.T) {
	scanCmd := newScanCmd(languages.NewRegistry(), config.Config{})

	names := []string{"actual-klocs", "actual-loc", "raw-klocs", "raw-loc", "words", "chars", "bytes"}
	for _, name := range names {
		if scanCmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing column flag --%s", name)
		}
		if _, err := columnsFromNames([]string{name}); err != nil {
			t.Fatalf("column name %q rejected by config parser: %v", name, err)
		}
	}
}

// TestColumnsFromNamesUnknown 验证未知列名报错。
func TestColumnsFromNamesUnknown(t *testing.T) {
	if _, err := columnsFromNames([]string{"nope"}); err == nil {
		t.Fatalf("expected error for unknown column name")
	}
}
