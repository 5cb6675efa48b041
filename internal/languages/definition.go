// Package languages 提供语言目录、语言识别和注释感知的行分类能力。
// 所有语言差异都表达为 Definition 数据，扫描算法只有一份（见 classifier.go）。
package languages

// StringRule 描述一种字符串/字符字面量的定界规则。
//
// 约束说明：
// - Escape 为 0 表示该字面量不支持转义（例如 Go 的反引号原始字符串）
// - Multiline 为 false 时，字面量在行尾被强制关闭（例如 Go 的双引号字符串）
type StringRule struct {
	Start     string
	End       string
	Escape    rune
	Multiline bool
}

// BlockPair 描述一对块注释的起止标记。
type BlockPair struct {
	Start string
	End   string
}

// Signature 是内容启发式规则，仅在后缀和 shebang 都无法识别时使用。
// 匹配只检查文件前缀的有限字节数，按目录顺序取第一个命中项。
type Signature struct {
	// Prefix 非空时要求内容（去除前导空白后）以该串开头。
	Prefix string
	// Contains 非空时要求前缀窗口内包含该串。
	Contains string
}

// Definition 是单个语言的完整语法描述，构造后只读。
//
// 注意：
// - LineMarkers 与字符串/块注释标记按“最长优先”参与匹配，
//   注册阶段会统一排序，目录数据无需自行保证顺序
// - AnchoredMarkers 中的标记只在行首（忽略前导空白之前，即列 0）生效，
//   用于 Ruby 的 =begin/=end 这类行锚定语法
type Definition struct {
	Name           string
	Extensions     []string
	Shebangs       []string
	Signatures     []Signature
	LineMarkers    []string
	BlockPairs     []BlockPair
	NestedBlocks   bool
	Strings        []StringRule
	AnchoredBlocks []BlockPair
}

// Known 返回该定义是否对应一个已识别语言。
func (d Definition) Known() bool {
	return d.Name != UnknownLanguage
}

// hasSyntax 返回该定义是否携带任何注释/字符串规则。
// 没有规则时分类器退化为“非空行即实际行”。
func (d Definition) hasSyntax() bool {
	return len(d.LineMarkers) > 0 || len(d.BlockPairs) > 0 ||
		len(d.Strings) > 0 || len(d.AnchoredBlocks) > 0
}

// Descriptor 用于对外展示语言及后缀信息。
type Descriptor struct {
	Name       string
	Extensions []string
}

// UnknownLanguage 是无法识别语言时使用的名称。
// 未知语言没有任何注释语法，所有非空行都按实际代码行统计。
const UnknownLanguage = "unknown"
