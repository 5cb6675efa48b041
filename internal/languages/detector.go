package languages

import (
	"bytes"
	"path/filepath"
)

// Detect 把文件解析到一个语言定义。
//
// 优先级固定，命中即返回：
//  1. 内容以 #! 开头时按首行 shebang 解释器查找
//  2. 文件后缀（不区分大小写）
//  3. 内容启发式（只检查有限前缀）
//  4. 兜底为 unknown
//
// 相同 (path, content) 永远得到相同结果。
// path 只用于提取后缀，不做任何其它解释。
func (r *Registry) Detect(path string, content []byte) Definition {
	if bytes.HasPrefix(content, []byte("#!")) {
		firstLine := content
		if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
			firstLine = content[:idx]
		}
		if definition, ok := r.ResolveByShebang(string(firstLine)); ok {
			return definition
		}
	}

	if extension := filepath.Ext(path); extension != "" {
		if definition, ok := r.ResolveByExtension(extension); ok {
			return definition
		}
	}

	if definition, ok := r.ResolveByContent(content); ok {
		return definition
	}

	return r.unknown
}
