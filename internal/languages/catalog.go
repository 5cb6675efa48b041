package languages

// 本文件是内置语言目录。
// 每个条目只描述语法事实，不包含任何扫描逻辑；
// 新增语言只需要追加一条 Definition，分类器代码保持不变。

// 常用字面量规则，多数 C 系语言直接复用。
var (
	doubleQuoted = StringRule{Start: `"`, End: `"`, Escape: '\\'}
	singleQuoted = StringRule{Start: `'`, End: `'`, Escape: '\\'}
	cBlock       = BlockPair{Start: "/*", End: "*/"}
	htmlBlock    = BlockPair{Start: "<!--", End: "-->"}
)

// builtinDefinitions 返回全部内置语言定义。
// 每次调用都会构造新的切片，注册中心持有自己的一份，避免共享可变状态。
func builtinDefinitions() []Definition {
	return []Definition{
		{
			Name:        "go",
			Extensions:  []string{".go"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			Strings: []StringRule{
				doubleQuoted,
				singleQuoted,
				{Start: "`", End: "`", Multiline: true},
			},
		},
		{
			Name:        "rust",
			Extensions:  []string{".rs"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			// Rust 的块注释允许嵌套，深度计数见分类器。
			NestedBlocks: true,
			Strings: []StringRule{
				{Start: `"`, End: `"`, Escape: '\\', Multiline: true},
				singleQuoted,
			},
		},
		{
			Name:        "c",
			Extensions:  []string{".c", ".h"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "cpp",
			Extensions:  []string{".cpp", ".cxx", ".cc", ".hpp", ".hxx"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "python",
			Extensions:  []string{".py", ".python"},
			Shebangs:    []string{"python", "python2", "python3"},
			LineMarkers: []string{"#"},
			// 三引号必须排在单引号规则前面，注册阶段按最长优先排序兜底。
			Strings: []StringRule{
				{Start: `"""`, End: `"""`, Escape: '\\', Multiline: true},
				{Start: "'''", End: "'''", Escape: '\\', Multiline: true},
				doubleQuoted,
				singleQuoted,
			},
		},
		{
			Name:        "javascript",
			Extensions:  []string{".js", ".mjs", ".cjs"},
			Shebangs:    []string{"node", "nodejs"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			Strings: []StringRule{
				doubleQuoted,
				singleQuoted,
				{Start: "`", End: "`", Escape: '\\', Multiline: true},
			},
		},
		{
			Name:        "typescript",
			Extensions:  []string{".ts", ".tsx"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			Strings: []StringRule{
				doubleQuoted,
				singleQuoted,
				{Start: "`", End: "`", Escape: '\\', Multiline: true},
			},
		},
		{
			Name:        "java",
			Extensions:  []string{".java"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "shell",
			Extensions:  []string{".sh", ".bash", ".zsh", ".env"},
			Shebangs:    []string{"sh", "bash", "zsh", "dash", "ksh"},
			LineMarkers: []string{"#"},
			Strings: []StringRule{
				{Start: `"`, End: `"`, Escape: '\\', Multiline: true},
				// 单引号字符串内不存在转义。
				{Start: "'", End: "'", Multiline: true},
			},
		},
		{
			Name:        "perl",
			Extensions:  []string{".pl", ".pm"},
			Shebangs:    []string{"perl"},
			LineMarkers: []string{"#"},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "ruby",
			Extensions:  []string{".rb"},
			Shebangs:    []string{"ruby"},
			LineMarkers: []string{"#"},
			// =begin/=end 只在行首生效，属于行锚定块注释。
			AnchoredBlocks: []BlockPair{{Start: "=begin", End: "=end"}},
			Strings: []StringRule{
				{Start: `"`, End: `"`, Escape: '\\', Multiline: true},
				{Start: "'", End: "'", Escape: '\\', Multiline: true},
			},
		},
		{
			Name:        "php",
			Extensions:  []string{".php"},
			Shebangs:    []string{"php"},
			Signatures:  []Signature{{Prefix: "<?php"}},
			LineMarkers: []string{"//", "#"},
			BlockPairs:  []BlockPair{cBlock},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "css",
			Extensions:  []string{".css", ".scss"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:       "html",
			Extensions: []string{".html", ".htm"},
			Signatures: []Signature{
				{Prefix: "<!doctype html"},
				{Contains: "<html"},
			},
			BlockPairs: []BlockPair{htmlBlock},
		},
		{
			Name:       "xml",
			Extensions: []string{".xml", ".xsl", ".xslt", ".xsd", ".dtd", ".xq"},
			Signatures: []Signature{{Prefix: "<?xml"}},
			BlockPairs: []BlockPair{htmlBlock},
		},
		{
			Name:       "markdown",
			Extensions: []string{".md", ".markdown"},
			BlockPairs: []BlockPair{htmlBlock},
		},
		{
			Name:        "scala",
			Extensions:  []string{".scala"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			// Scala 块注释同样支持嵌套。
			NestedBlocks: true,
			Strings:      []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:         "kotlin",
			Extensions:   []string{".kt", ".kts"},
			LineMarkers:  []string{"//"},
			BlockPairs:   []BlockPair{cBlock},
			NestedBlocks: true,
			Strings:      []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "sql",
			Extensions:  []string{".sql"},
			LineMarkers: []string{"--"},
			BlockPairs:  []BlockPair{cBlock},
			// 多数方言（PostgreSQL 等）允许 /* /* */ */ 嵌套。
			NestedBlocks: true,
			Strings:      []StringRule{{Start: "'", End: "'"}},
		},
		{
			Name:        "lua",
			Extensions:  []string{".lua"},
			Shebangs:    []string{"lua"},
			LineMarkers: []string{"--"},
			BlockPairs:  []BlockPair{{Start: "--[[", End: "]]"}},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "awk",
			Extensions:  []string{".awk"},
			Shebangs:    []string{"awk", "gawk", "mawk"},
			LineMarkers: []string{"#"},
			Strings:     []StringRule{doubleQuoted},
		},
		{
			Name:        "tcl",
			Extensions:  []string{".tcl"},
			Shebangs:    []string{"tcl", "tclsh", "wish"},
			LineMarkers: []string{"#"},
			Strings:     []StringRule{doubleQuoted},
		},
		{
			Name:        "batch",
			Extensions:  []string{".bat"},
			LineMarkers: []string{"REM", "rem", "::"},
		},
		{
			Name:        "vb",
			Extensions:  []string{".bas", ".cls", ".ctl", ".frm"},
			LineMarkers: []string{"'"},
			Strings:     []StringRule{{Start: `"`, End: `"`}},
		},
		{
			Name:        "jsp",
			Extensions:  []string{".jsp"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock, {Start: "<%--", End: "--%>"}},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "vala",
			Extensions:  []string{".vala"},
			LineMarkers: []string{"//"},
			BlockPairs:  []BlockPair{cBlock},
			Strings:     []StringRule{doubleQuoted, singleQuoted},
		},
		{
			Name:        "tex",
			Extensions:  []string{".tex", ".sty"},
			LineMarkers: []string{"%"},
		},
		{
			Name:        "yaml",
			Extensions:  []string{".yaml", ".yml"},
			LineMarkers: []string{"#"},
			Strings:     []StringRule{doubleQuoted, {Start: "'", End: "'"}},
		},
		{
			Name:        "toml",
			Extensions:  []string{".toml"},
			LineMarkers: []string{"#"},
			Strings:     []StringRule{doubleQuoted, {Start: "'", End: "'"}},
		},
		{
			Name:        "config",
			Extensions:  []string{".conf", ".ini"},
			LineMarkers: []string{"#", ";"},
		},
		{
			Name:       "json",
			Extensions: []string{".json"},
			Strings:    []StringRule{doubleQuoted},
		},
		{
			Name:       "text",
			Extensions: []string{".txt"},
		},
	}
}
