// Package report 提供 sourcelines 的输出能力。
// 当前实现支持 text 列式格式（可着色）、table 表格、JSON 与 YAML。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"sourcelines/internal/model"
)

// ANSI 颜色常量，text 格式按列着色。
const (
	colorCyan    = "\x1b[36m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorMagenta = "\x1b[35m"
	colorBlue    = "\x1b[34m"
	colorDim     = "\x1b[2m"
	colorReset   = "\x1b[0m"
)

// Columns 描述 text 格式要展示的列集合。
type Columns struct {
	ActualKlocs bool
	ActualLoc   bool
	RawKlocs    bool
	RawLoc      bool
	Words       bool
	Chars       bool
	Bytes       bool
}

// DefaultColumns 返回默认列：actual-loc、raw-loc、words、chars、bytes。
func DefaultColumns() Columns {
	return Columns{
		ActualLoc: true,
		RawLoc:    true,
		Words:     true,
		Chars:     true,
		Bytes:     true,
	}
}

// Any 返回是否有任意列被选中。
func (c Columns) Any() bool {
	return c.ActualKlocs || c.ActualLoc || c.RawKlocs || c.RawLoc ||
		c.Words || c.Chars || c.Bytes
}

// Normalize 处理列冲突：kloc 列与对应 loc 列同时选中时保留 kloc。
// 一列未选时返回默认列集。
func (c Columns) Normalize() Columns {
	if !c.Any() {
		return DefaultColumns()
	}
	if c.ActualKlocs {
		c.ActualLoc = false
	}
	if c.RawKlocs {
		c.RawLoc = false
	}
	return c
}

// firstValue 取第一个可见列的数值，verbose 模式按它对语言汇总降序排序。
func (c Columns) firstValue(counts model.FileCounts) int64 {
	switch {
	case c.ActualKlocs, c.ActualLoc:
		return counts.ActualLines
	case c.RawKlocs, c.RawLoc:
		return counts.RawLines
	case c.Words:
		return counts.Words
	case c.Chars:
		return counts.Chars
	default:
		return counts.Bytes
	}
}

// TextOptions 控制 text 格式的行为。
type TextOptions struct {
	Columns Columns
	Color   bool
	// Sum 为 true 时在末尾追加 (sum) 总计行。
	Sum bool
	// Verbose 为 true 时追加按语言汇总的明细行。
	Verbose bool
}

// PrintText 按列式文本输出扫描结果。
// 每行依次为选中的统计列、<语言> 标签和文件路径；
// 总计行用 <*> (sum) 标识。
func PrintText(writer io.Writer, result model.ScanResult, options TextOptions) error {
	columns := options.Columns.Normalize()

	if options.Verbose || !options.Sum {
		for _, item := range result.Files {
			line := formatCounts(item.Counts, columns, options.Color) +
				formatTag(item.Language, item.Path, options.Color)
			if _, err := fmt.Fprintln(writer, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}

		if options.Verbose {
			if err := printLanguageSummaries(writer, result, columns, options.Color); err != nil {
				return err
			}
		}
	}

	if options.Sum {
		line := formatCounts(result.Total.Counts, columns, options.Color) +
			formatSumTag(options.Color)
		if _, err := fmt.Fprintln(writer, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	if len(result.Errors) > 0 {
		for _, item := range result.Errors {
			if _, err := fmt.Fprintf(writer, "error: %s: %s\n", item.Path, item.Error); err != nil {
				return err
			}
		}
	}

	return nil
}

// printLanguageSummaries 输出语言级汇总行。
// 排序规则：第一个可见列数值降序，数值相同按语言名升序；全零项被过滤。
func printLanguageSummaries(writer io.Writer, result model.ScanResult, columns Columns, color bool) error {
	items := make([]model.LanguageStats, 0, len(result.Languages))
	for _, item := range result.Languages {
		if !item.Counts.IsZero() {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i int, j int) bool {
		left := columns.firstValue(items[i].Counts)
		right := columns.firstValue(items[j].Counts)
		if left != right {
			return left > right
		}
		return items[i].Language < items[j].Language
	})

	for _, item := range items {
		line := formatCounts(item.Counts, columns, color) + formatTag(item.Language, "", color)
		line = strings.TrimRight(line, " ")
		if color {
			line = colorDim + line + colorReset
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return nil
}

// formatCounts 把选中列渲染成右对齐的 8 宽度字段序列。
func formatCounts(counts model.FileCounts, columns Columns, color bool) string {
	var builder strings.Builder

	appendField := func(clr string, text string) {
		if color {
			builder.WriteString(clr)
		}
		builder.WriteString(text)
		if color {
			builder.WriteString(colorReset)
		}
		builder.WriteString(" ")
	}

	if columns.ActualKlocs {
		appendField(colorCyan, fmt.Sprintf("%8.3f", float64(counts.ActualLines)/1000.0))
	}
	if columns.ActualLoc {
		appendField(colorCyan, fmt.Sprintf("%8d", counts.ActualLines))
	}
	if columns.RawKlocs {
		appendField(colorGreen, fmt.Sprintf("%8.3f", float64(counts.RawLines)/1000.0))
	}
	if columns.RawLoc {
		appendField(colorGreen, fmt.Sprintf("%8d", counts.RawLines))
	}
	if columns.Words {
		appendField(colorYellow, fmt.Sprintf("%8d", counts.Words))
	}
	if columns.Chars {
		appendField(colorMagenta, fmt.Sprintf("%8d", counts.Chars))
	}
	if columns.Bytes {
		appendField(colorBlue, fmt.Sprintf("%8d", counts.Bytes))
	}

	return builder.String()
}

// formatTag 渲染 <语言> 标签和路径。语言汇总行不带路径。
func formatTag(language string, path string, color bool) string {
	tag := "<" + language + ">"
	if color {
		tag = colorGreen + tag + colorReset
	}
	if path == "" {
		return tag
	}
	return tag + " " + path
}

// formatSumTag 渲染总计行标识。
func formatSumTag(color bool) string {
	if color {
		return colorCyan + "<*> (sum)" + colorReset
	}
	return "<*> (sum)"
}

// PrintTable 使用表格展示扫描结果。
func PrintTable(writer io.Writer, result model.ScanResult) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "SCANNED\t%s\n\n", strings.Join(result.ScannedPaths, ", ")); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, "FILE\tLANGUAGE\tACTUAL\tRAW\tWORDS\tCHARS\tBYTES"); err != nil {
		return err
	}
	for _, item := range result.Files {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			item.Path,
			item.Language,
			item.Counts.ActualLines,
			item.Counts.RawLines,
			item.Counts.Words,
			item.Counts.Chars,
			item.Counts.Bytes,
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(tw, "\nLANGUAGE\tFILES\tACTUAL\tRAW\tWORDS\tCHARS\tBYTES"); err != nil {
		return err
	}
	for _, item := range result.Languages {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			item.Language,
			item.Files,
			item.Counts.ActualLines,
			item.Counts.RawLines,
			item.Counts.Words,
			item.Counts.Chars,
			item.Counts.Bytes,
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(
		tw,
		"\nTOTAL\t%d\t%d\t%d\t%d\t%d\t%d\n",
		result.Total.Files,
		result.Total.Counts.ActualLines,
		result.Total.Counts.RawLines,
		result.Total.Counts.Words,
		result.Total.Counts.Chars,
		result.Total.Counts.Bytes,
	); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		if _, err := fmt.Fprintln(tw, "\nERROR FILE\tMESSAGE"); err != nil {
			return err
		}
		for _, item := range result.Errors {
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", item.Path, item.Error); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintYAML 把扫描结果按 YAML 输出到任意 writer。
func PrintYAML(writer io.Writer, result model.ScanResult) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return encoder.Close()
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.ScanResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
