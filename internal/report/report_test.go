package report

import (
	"bytes"
	"strings"
	"testing"

	"sourcelines/internal/model"
)

// sampleResult 是测试辅助函数，构造一个两语言的扫描结果。
func sampleResult() model.ScanResult {
	aggregate := model.NewAggregate()
	files := []model.FileStats{
		{Path: "a.go", Language: "go", Counts: model.FileCounts{ActualLines: 12, RawLines: 20, Words: 60, Chars: 400, Bytes: 410}},
		{Path: "b.py", Language: "python", Counts: model.FileCounts{ActualLines: 3, RawLines: 5, Words: 12, Chars: 90, Bytes: 90}},
	}
	for _, stats := range files {
		aggregate.AddFile(stats)
	}

	return model.ScanResult{
		ScannedPaths: []string{"."},
		Files:        files,
		Languages:    aggregate.Languages(),
		Total:        aggregate.Total(),
		Errors:       []model.ScanError{},
	}
}

// TestPrintTextDefaultColumns 验证 text 格式的文件行、语言标签与总计行。
func TestPrintTextDefaultColumns(t *testing.T) {
	var buffer bytes.Buffer
	err := PrintText(&buffer, sampleResult(), TextOptions{
		Columns: DefaultColumns(),
		Sum:     true,
		Verbose: true,
	})
	if err != nil {
		t.Fatalf("print text failed: %v", err)
	}

	output := buffer.String()
	if !strings.Contains(output, "<go> a.go") {
		t.Fatalf("missing go file line:\n%s", output)
	}
	if !strings.Contains(output, "<*> (sum)") {
		t.Fatalf("missing sum line:\n%s", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Fatalf("unexpected ANSI codes without color:\n%s", output)
	}

	// 总计行的实际行数 = 12 + 3。
	if !strings.Contains(output, "      15") {
		t.Fatalf("missing aggregated actual lines:\n%s", output)
	}
}

// TestPrintTextSumOnly 验证 -s 不带 -v 时只输出总计行。
func TestPrintTextSumOnly(t *testing.T) {
	var buffer bytes.Buffer
	err := PrintText(&buffer, sampleResult(), TextOptions{
		Columns: DefaultColumns(),
		Sum:     true,
	})
	if err != nil {
		t.Fatalf("print text failed: %v", err)
	}

	output := strings.TrimSpace(buffer.String())
	if strings.Count(output, "\n") != 0 {
		t.Fatalf("expected a single sum line, got:\n%s", output)
	}
	if !strings.HasSuffix(output, "<*> (sum)") {
		t.Fatalf("unexpected sum line: %s", output)
	}
}

// TestPrintTextVerboseLanguageOrder 验证语言汇总按第一可见列降序排序。
func TestPrintTextVerboseLanguageOrder(t *testing.T) {
	var buffer bytes.Buffer
	err := PrintText(&buffer, sampleResult(), TextOptions{
		Columns: DefaultColumns(),
		Verbose: true,
	})
	if err != nil {
		t.Fatalf("print text failed: %v", err)
	}

	output := buffer.String()
	goIdx := strings.LastIndex(output, "<go>")
	pyIdx := strings.LastIndex(output, "<python>")
	if goIdx < 0 || pyIdx < 0 {
		t.Fatalf("missing language summaries:\n%s", output)
	}
	// go 的实际行数更多，汇总行应排在 python 之前。
	if goIdx > pyIdx {
		t.Fatalf("expected go summary before python:\n%s", output)
	}
}

// TestPrintTextColor 验证着色模式输出 ANSI 序列。
func TestPrintTextColor(t *testing.T) {
	var buffer bytes.Buffer
	err := PrintText(&buffer, sampleResult(), TextOptions{
		Columns: DefaultColumns(),
		Color:   true,
		Sum:     true,
	})
	if err != nil {
		t.Fatalf("print text failed: %v", err)
	}

	if !strings.Contains(buffer.String(), colorCyan) {
		t.Fatalf("expected ANSI color codes:\n%s", buffer.String())
	}
}

// TestColumnsNormalize 验证 kloc 与 loc 冲突时保留 kloc，空选择回退默认列。
func TestColumnsNormalize(t *testing.T) {
	columns := Columns{ActualKlocs: true, ActualLoc: true, RawKlocs: true, RawLoc: true}.Normalize()
	if columns.ActualLoc || columns.RawLoc {
		t.Fatalf("kloc columns must replace loc columns: %+v", columns)
	}
	if !columns.ActualKlocs || !columns.RawKlocs {
		t.Fatalf("kloc columns must stay selected: %+v", columns)
	}

	if (Columns{}).Normalize() != DefaultColumns() {
		t.Fatalf("empty selection must fall back to defaults")
	}
}

// TestPrintTableTotals 验证表格格式包含总计与错误区块。
func TestPrintTableTotals(t *testing.T) {
	result := sampleResult()
	result.Errors = append(result.Errors, model.ScanError{Path: "broken.go", Error: "permission denied"})

	var buffer bytes.Buffer
	if err := PrintTable(&buffer, result); err != nil {
		t.Fatalf("print table failed: %v", err)
	}

	output := buffer.String()
	if !strings.Contains(output, "TOTAL") {
		t.Fatalf("missing TOTAL row:\n%s", output)
	}
	if !strings.Contains(output, "permission denied") {
		t.Fatalf("missing error block:\n%s", output)
	}
}

// TestPrintYAML 验证 YAML 输出可被正常编码。
func TestPrintYAML(t *testing.T) {
	var buffer bytes.Buffer
	if err := PrintYAML(&buffer, sampleResult()); err != nil {
		t.Fatalf("print yaml failed: %v", err)
	}

	output := buffer.String()
	if !strings.Contains(output, "total:") || !strings.Contains(output, "language: go") {
		t.Fatalf("unexpected yaml output:\n%s", output)
	}
}
