package languages

import (
	"sort"
	"strings"
)

// Registry 管理语言定义的注册与各类索引。
// 构造完成后只读，可被任意数量的并发分类调用直接共享，无需加锁。
type Registry struct {
	definitions []Definition
	byName      map[string]Definition
	byExtension map[string]Definition
	byShebang   map[string]Definition
	unknown     Definition
}

// NewRegistry 创建并注册全部内置语言定义。
func NewRegistry() *Registry {
	registry := &Registry{
		byName:      make(map[string]Definition),
		byExtension: make(map[string]Definition),
		byShebang:   make(map[string]Definition),
		unknown:     Definition{Name: UnknownLanguage},
	}

	for _, definition := range builtinDefinitions() {
		registry.register(normalizeDefinition(definition))
	}

	return registry
}

// register 登记单个语言定义并维护后缀/shebang 索引。
// 后缀和 shebang 最多映射到一个语言；重复登记时保留先注册者，
// 保证同一目录数据永远产生同一套索引。
func (r *Registry) register(definition Definition) {
	if _, exists := r.byName[definition.Name]; exists {
		return
	}

	r.definitions = append(r.definitions, definition)
	r.byName[definition.Name] = definition

	for _, extension := range definition.Extensions {
		key := strings.ToLower(extension)
		if _, exists := r.byExtension[key]; !exists {
			r.byExtension[key] = definition
		}
	}

	for _, interpreter := range definition.Shebangs {
		key := strings.ToLower(interpreter)
		if _, exists := r.byShebang[key]; !exists {
			r.byShebang[key] = definition
		}
	}
}

// normalizeDefinition 把目录数据整理成分类器可直接消费的形态。
// 所有标记类按长度降序排序，保证“最长标记优先”匹配
// （例如同时存在 // 和 / 时绝不会先命中 /）。
func normalizeDefinition(definition Definition) Definition {
	sort.SliceStable(definition.LineMarkers, func(i int, j int) bool {
		return len(definition.LineMarkers[i]) > len(definition.LineMarkers[j])
	})
	sort.SliceStable(definition.BlockPairs, func(i int, j int) bool {
		return len(definition.BlockPairs[i].Start) > len(definition.BlockPairs[j].Start)
	})
	sort.SliceStable(definition.Strings, func(i int, j int) bool {
		return len(definition.Strings[i].Start) > len(definition.Strings[j].Start)
	})
	return definition
}

// ResolveByExtension 根据文件后缀查找语言，匹配不区分大小写。
// 入参需要携带点号（例如 .go），与 filepath.Ext 的返回值对齐。
func (r *Registry) ResolveByExtension(extension string) (Definition, bool) {
	definition, ok := r.byExtension[strings.ToLower(extension)]
	return definition, ok
}

// ResolveByShebang 解析 #! 首行并查找对应解释器的语言。
// 支持 /usr/bin/env 间接调用；解释器带版本号时（python3.11）
// 会剥掉尾部版本再重试一次。
func (r *Registry) ResolveByShebang(firstLine string) (Definition, bool) {
	interpreter := shebangInterpreter(firstLine)
	if interpreter == "" {
		return Definition{}, false
	}

	if definition, ok := r.byShebang[strings.ToLower(interpreter)]; ok {
		return definition, true
	}

	stripped := strings.TrimRight(interpreter, "0123456789.")
	if stripped != interpreter && stripped != "" {
		if definition, ok := r.byShebang[strings.ToLower(stripped)]; ok {
			return definition, true
		}
	}

	return Definition{}, false
}

// shebangInterpreter 从 #! 行提取解释器的 basename。
func shebangInterpreter(firstLine string) string {
	line := strings.TrimSpace(firstLine)
	if !strings.HasPrefix(line, "#!") {
		return ""
	}

	fields := strings.Fields(line[2:])
	if len(fields) == 0 {
		return ""
	}

	interpreter := fields[0]
	if idx := strings.LastIndexByte(interpreter, '/'); idx >= 0 {
		interpreter = interpreter[idx+1:]
	}

	// #!/usr/bin/env python 形式下真正的解释器在下一个字段。
	if interpreter == "env" {
		if len(fields) < 2 {
			return ""
		}
		interpreter = fields[1]
		if idx := strings.LastIndexByte(interpreter, '/'); idx >= 0 {
			interpreter = interpreter[idx+1:]
		}
	}

	return interpreter
}

// ResolveByContent 对文件前缀执行内容启发式匹配。
// 只检查前 contentSniffLimit 字节，按目录顺序取第一个命中项；
// 该顺序是尽力而为的实现细节，不构成稳定契约。
func (r *Registry) ResolveByContent(prefix []byte) (Definition, bool) {
	window := prefix
	if len(window) > contentSniffLimit {
		window = window[:contentSniffLimit]
	}
	lowered := strings.ToLower(string(window))
	trimmed := strings.TrimLeft(lowered, " \t\r\n")

	for _, definition := range r.definitions {
		for _, signature := range definition.Signatures {
			if signature.Prefix != "" && strings.HasPrefix(trimmed, signature.Prefix) {
				return definition, true
			}
			if signature.Contains != "" && strings.Contains(lowered, signature.Contains) {
				return definition, true
			}
		}
	}

	return Definition{}, false
}

// contentSniffLimit 限定内容启发式检查的前缀窗口大小，
// 使该阶段相对文件大小保持 O(1)。
const contentSniffLimit = 1024

// ByName 按语言名查找定义。
func (r *Registry) ByName(name string) (Definition, bool) {
	if name == UnknownLanguage {
		return r.unknown, true
	}
	definition, ok := r.byName[name]
	return definition, ok
}

// Unknown 返回未知语言定义。
func (r *Registry) Unknown() Definition {
	return r.unknown
}

// Languages 返回已注册语言清单，按语言名排序。
func (r *Registry) Languages() []Descriptor {
	result := make([]Descriptor, 0, len(r.definitions))
	for _, definition := range r.definitions {
		extensions := append([]string(nil), definition.Extensions...)
		sort.Strings(extensions)
		result = append(result, Descriptor{
			Name:       definition.Name,
			Extensions: extensions,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀。
func (r *Registry) ExtensionsForLanguage(language string) []string {
	definition, ok := r.byName[language]
	if !ok {
		return nil
	}
	extensions := append([]string(nil), definition.Extensions...)
	sort.Strings(extensions)
	return extensions
}
