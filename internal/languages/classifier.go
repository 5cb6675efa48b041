package languages

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"sourcelines/internal/model"
)

// scanState 表示分类器的扫描状态。
type scanState int

const (
	stateCode scanState = iota
	stateBlockComment
	stateString
)

// classifier 维护一次分类过程的全部状态。
// 状态机只有 Code / InBlockComment(depth) / InString 三种状态，
// 由 Definition 中的标记表驱动，算法对所有语言只有这一份。
type classifier struct {
	definition Definition

	state       scanState
	blockDepth  int
	activeBlock BlockPair
	anchored    bool
	activeRule  StringRule
}

// Classify 对内容执行单趟左到右扫描，输出行级与字节级统计。
//
// 该函数是纯函数：任意字节序列搭配任意语言定义都必须产出结果，
// 永远不会失败。空输入返回全零；未闭合的块注释/字符串不是错误，
// 扫描到输入末尾时已有行保持既得分类。
func Classify(content []byte, definition Definition) model.FileCounts {
	var counts model.FileCounts
	if len(content) == 0 {
		return counts
	}

	// Words/Chars/Bytes 与注释状态无关，直接在完整内容上计算。
	counts.Bytes = int64(len(content))
	counts.Chars = int64(utf8.RuneCount(content))
	counts.Words = int64(len(bytes.Fields(content)))

	// 没有任何语法规则时（unknown、纯文本）不存在注释抑制，
	// 非空行即实际行，走快速路径。
	if !definition.hasSyntax() {
		countPlainLines(string(content), &counts)
		return counts
	}

	engine := &classifier{definition: definition}
	engine.scan(string(content), &counts)
	return counts
}

// countPlainLines 统计无语法规则内容的行数。
func countPlainLines(content string, counts *model.FileCounts) {
	lineHasActual := false
	lineHasAny := false

	for _, current := range content {
		if current == '\n' {
			counts.RawLines++
			if lineHasActual {
				counts.ActualLines++
			}
			lineHasActual = false
			lineHasAny = false
			continue
		}
		lineHasAny = true
		if !unicode.IsSpace(current) {
			lineHasActual = true
		}
	}

	if lineHasAny {
		counts.RawLines++
		if lineHasActual {
			counts.ActualLines++
		}
	}
}

// ClassifyFile 组装单文件统计结果。
// 纯函数，不做任何 I/O，可以注入语言定义单独测试。
func ClassifyFile(path string, content []byte, definition Definition) model.FileStats {
	return model.FileStats{
		Path:     path,
		Language: definition.Name,
		Counts:   Classify(content, definition),
	}
}

// scan 是扫描主循环。
//
// 行级判定规则：
// - 一行为“实际行”当且仅当本行至少消费了一个 Code 态非空白字符，
//   或至少消费了一个 InString 态字符（字符串内容永远算代码）
// - 整行处于块注释内、或整行空白的行不是实际行
// - 行注释标记只在 Code 态识别，吞掉行尾剩余部分但不改变跨行状态
func (e *classifier) scan(content string, counts *model.FileCounts) {
	lineHasActual := false
	lineHasAny := false
	columnStart := true

	idx := 0
	for idx < len(content) {
		rest := content[idx:]
		current, size := utf8.DecodeRuneInString(rest)

		if current == '\n' {
			// 行终结符关闭当前行；raw 行数每行恰好 +1。
			counts.RawLines++
			if lineHasActual {
				counts.ActualLines++
			}
			// 单行字符串规则在行尾被强制关闭，回到 Code 态。
			if e.state == stateString && !e.activeRule.Multiline {
				e.state = stateCode
			}
			lineHasActual = false
			lineHasAny = false
			columnStart = true
			idx += size
			continue
		}

		lineHasAny = true

		switch e.state {
		case stateBlockComment:
			idx += e.scanBlockComment(rest, columnStart)
		case stateString:
			consumed := e.scanString(rest)
			lineHasActual = true
			idx += consumed
		default:
			consumed, actual := e.scanCode(rest, current, size, columnStart)
			if actual {
				lineHasActual = true
			}
			idx += consumed
		}

		columnStart = false
	}

	// 末尾无换行符的残行只要包含任意字符就计 1。
	if lineHasAny {
		counts.RawLines++
		if lineHasActual {
			counts.ActualLines++
		}
	}
}

// scanBlockComment 处理块注释内部的一个匹配步骤，返回消费的字节数。
func (e *classifier) scanBlockComment(rest string, columnStart bool) int {
	// 行锚定块注释（Ruby =begin/=end）的结束标记只在行首生效。
	if e.anchored {
		if columnStart && strings.HasPrefix(rest, e.activeBlock.End) {
			e.state = stateCode
			e.blockDepth = 0
			e.anchored = false
			// =end 行的尾随文本同样属于注释，吞到行尾为止。
			if lineEnd := strings.IndexByte(rest, '\n'); lineEnd >= 0 {
				return lineEnd
			}
			return len(rest)
		}
		_, size := utf8.DecodeRuneInString(rest)
		return size
	}

	// 允许嵌套的语言在注释内再次遇到起始标记时深度 +1。
	if e.definition.NestedBlocks && strings.HasPrefix(rest, e.activeBlock.Start) {
		e.blockDepth++
		return len(e.activeBlock.Start)
	}

	if strings.HasPrefix(rest, e.activeBlock.End) {
		e.blockDepth--
		if e.blockDepth <= 0 {
			e.state = stateCode
			e.blockDepth = 0
		}
		return len(e.activeBlock.End)
	}

	_, size := utf8.DecodeRuneInString(rest)
	return size
}

// scanString 处理字符串字面量内部的一个匹配步骤，返回消费的字节数。
// 调用方负责把本行标记为实际行：字符串内容一律算代码。
func (e *classifier) scanString(rest string) int {
	// 转义字符使紧随其后的字符不参与定界符匹配。
	// 行终结符不会被转义吞掉，必须留给主循环做行结账。
	if e.activeRule.Escape != 0 {
		escape, escapeSize := utf8.DecodeRuneInString(rest)
		if escape == e.activeRule.Escape {
			consumed := escapeSize
			if consumed < len(rest) {
				next, nextSize := utf8.DecodeRuneInString(rest[consumed:])
				if next != '\n' {
					consumed += nextSize
				}
			}
			return consumed
		}
	}

	if strings.HasPrefix(rest, e.activeRule.End) {
		e.state = stateCode
		return len(e.activeRule.End)
	}

	_, size := utf8.DecodeRuneInString(rest)
	return size
}

// scanCode 处理 Code 态的一个匹配步骤。
// 返回消费的字节数，以及该步骤是否产生“实际代码”。
//
// 同一位置的匹配按固定顺序测试：字符串起始、块注释起始、行注释标记。
// 每一类内部由注册阶段保证最长标记优先。
func (e *classifier) scanCode(rest string, current rune, size int, columnStart bool) (int, bool) {
	if unicode.IsSpace(current) {
		return size, false
	}

	// 字符串起始优先于注释标记：
	// 字面量里出现的注释标记绝不能把扫描器带进注释态。
	for _, rule := range e.definition.Strings {
		if strings.HasPrefix(rest, rule.Start) {
			e.state = stateString
			e.activeRule = rule
			return len(rule.Start), true
		}
	}

	if columnStart {
		for _, pair := range e.definition.AnchoredBlocks {
			if strings.HasPrefix(rest, pair.Start) {
				e.state = stateBlockComment
				e.activeBlock = pair
				e.anchored = true
				e.blockDepth = 1
				return len(pair.Start), false
			}
		}
	}

	for _, pair := range e.definition.BlockPairs {
		if strings.HasPrefix(rest, pair.Start) {
			e.state = stateBlockComment
			e.activeBlock = pair
			e.anchored = false
			e.blockDepth = 1
			return len(pair.Start), false
		}
	}

	for _, marker := range e.definition.LineMarkers {
		if strings.HasPrefix(rest, marker) && markerBoundary(rest, marker) {
			// 行注释吞掉到行尾为止的全部内容；换行符留给主循环结账。
			if lineEnd := strings.IndexByte(rest, '\n'); lineEnd >= 0 {
				return lineEnd, false
			}
			return len(rest), false
		}
	}

	return size, true
}

// markerBoundary 对以字母/数字结尾的行注释标记要求词边界：
// 紧随其后的字符不能是字母、数字或下划线，
// 否则 batch 的 REM 会误命中 REMOTE_DIR 这类标识符前缀。
func markerBoundary(rest string, marker string) bool {
	last, _ := utf8.DecodeLastRuneInString(marker)
	if !unicode.IsLetter(last) && !unicode.IsDigit(last) {
		return true
	}
	if len(rest) == len(marker) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(rest[len(marker):])
	return !unicode.IsLetter(next) && !unicode.IsDigit(next) && next != '_'
}
