// Package model 定义 sourcelines 的核心数据模型。
// 这些结构会被分类器、扫描器、输出层和命令层共同使用。
package model

import "sort"

// FileCounts 表示一组文件级统计值。
//
// 注意：
// - RawLines 表示物理行总数（文件末尾无换行符的残行也计 1）
// - ActualLines 只统计包含真实代码或字符串内容的行
// - Words/Chars/Bytes 基于完整原始内容计算，与注释状态无关
// - 恒有 0 <= ActualLines <= RawLines
type FileCounts struct {
	ActualLines int64 `json:"actual_lines" yaml:"actual_lines"`
	RawLines    int64 `json:"raw_lines" yaml:"raw_lines"`
	Words       int64 `json:"words" yaml:"words"`
	Chars       int64 `json:"chars" yaml:"chars"`
	Bytes       int64 `json:"bytes" yaml:"bytes"`
}

// Add 将另一组统计值叠加到当前对象。
// 加法满足交换律和结合律，因此并发扫描的合并顺序不影响最终结果。
func (c *FileCounts) Add(other FileCounts) {
	c.ActualLines += other.ActualLines
	c.RawLines += other.RawLines
	c.Words += other.Words
	c.Chars += other.Chars
	c.Bytes += other.Bytes
}

// IsZero 判断所有计数是否为零，用于过滤空聚合项。
func (c FileCounts) IsZero() bool {
	return c.ActualLines == 0 && c.RawLines == 0 && c.Words == 0 && c.Chars == 0 && c.Bytes == 0
}

// FileStats 表示单文件统计结果，创建后不再修改。
type FileStats struct {
	Path     string     `json:"path" yaml:"path"`
	Language string     `json:"language" yaml:"language"`
	Counts   FileCounts `json:"counts" yaml:"counts"`
}

// LanguageStats 表示某个语言的聚合结果。
type LanguageStats struct {
	Language string     `json:"language" yaml:"language"`
	Files    int64      `json:"files" yaml:"files"`
	Counts   FileCounts `json:"counts" yaml:"counts"`
}

// TotalStats 表示本次扫描的总计信息。
// 在 FileCounts 基础上额外增加 Files 字段。
type TotalStats struct {
	Files  int64      `json:"files" yaml:"files"`
	Counts FileCounts `json:"counts" yaml:"counts"`
}

// ScanError 记录单文件扫描失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// Aggregate 是按语言分组的累加器。
// 只支持追加式更新，AddFile/Merge 均满足交换律，
// 因此无论文件以什么顺序进入，最终汇总完全一致。
type Aggregate struct {
	byLanguage map[string]*LanguageStats
	total      TotalStats
}

// NewAggregate 创建空累加器。
func NewAggregate() *Aggregate {
	return &Aggregate{
		byLanguage: make(map[string]*LanguageStats),
	}
}

// AddFile 累加一个文件的统计值。
func (a *Aggregate) AddFile(stats FileStats) {
	a.total.Files++
	a.total.Counts.Add(stats.Counts)

	summary, ok := a.byLanguage[stats.Language]
	if !ok {
		summary = &LanguageStats{Language: stats.Language}
		a.byLanguage[stats.Language] = summary
	}
	summary.Files++
	summary.Counts.Add(stats.Counts)
}

// Merge 把另一个累加器的全部内容合入当前累加器。
func (a *Aggregate) Merge(other *Aggregate) {
	if other == nil {
		return
	}
	a.total.Files += other.total.Files
	a.total.Counts.Add(other.total.Counts)

	for language, incoming := range other.byLanguage {
		summary, ok := a.byLanguage[language]
		if !ok {
			summary = &LanguageStats{Language: language}
			a.byLanguage[language] = summary
		}
		summary.Files += incoming.Files
		summary.Counts.Add(incoming.Counts)
	}
}

// Total 返回总计信息。
func (a *Aggregate) Total() TotalStats {
	return a.total
}

// Languages 返回按语言名排序的聚合明细。
func (a *Aggregate) Languages() []LanguageStats {
	result := make([]LanguageStats, 0, len(a.byLanguage))
	for _, summary := range a.byLanguage {
		result = append(result, *summary)
	}
	sort.Slice(result, func(i int, j int) bool {
		return result[i].Language < result[j].Language
	})
	return result
}

// ScanResult 是 scan 命令的完整输出模型。
// 包含文件级明细、语言级汇总、全局总计和错误列表。
type ScanResult struct {
	ScannedPaths []string        `json:"scanned_paths" yaml:"scanned_paths"`
	Files        []FileStats     `json:"files" yaml:"files"`
	Languages    []LanguageStats `json:"languages" yaml:"languages"`
	Total        TotalStats      `json:"total" yaml:"total"`
	Errors       []ScanError     `json:"errors" yaml:"errors"`
}
