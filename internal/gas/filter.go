package gas

import (
	"strings"
	"unicode"
)

// Mode 过滤模式
type Mode int

const (
	ModeAll      Mode = iota // 不过滤
	ModeContains             // gas_symbol 包含 Terms[0]
	ModeAnd                  // 同时包含 Terms[0] 与 Terms[1]
	ModeOr                   // 包含 Terms[0] 或 Terms[1]
)

func (m Mode) String() string {
	switch m {
	case ModeContains:
		return "contains"
	case ModeAnd:
		return "and"
	case ModeOr:
		return "or"
	default:
		return "all"
	}
}

// Filter 解析后的 gas 查询条件，Terms 均为小写
type Filter struct {
	Mode  Mode
	Terms []string
}

// ParseFilter 解析 /country/{id} 的 gas 参数：
//   - 空格切分后多于3段：不过滤
//   - 恰好3段且形如 "x and y" / "x or y"（x、y 为字母数字）：双条件
//   - 其余情况原串为字母数字时按子串过滤，否则不过滤
//
// "co2 ch4" 这种两段输入不会进入双条件，而是落到最后一条规则，结果为不过滤。
func ParseFilter(raw string) Filter {
	terms := strings.Split(strings.ToLower(raw), " ")

	if len(terms) > 3 {
		return Filter{Mode: ModeAll}
	}
	if len(terms) == 3 && isAlnum(terms[0]) && isAlnum(terms[2]) {
		switch terms[1] {
		case "and":
			return Filter{Mode: ModeAnd, Terms: []string{terms[0], terms[2]}}
		case "or":
			return Filter{Mode: ModeOr, Terms: []string{terms[0], terms[2]}}
		}
	}

	if !isAlnum(raw) {
		return Filter{Mode: ModeAll}
	}
	// 已存标签全部为小写
	return Filter{Mode: ModeContains, Terms: []string{strings.ToLower(raw)}}
}

// isAlnum 非空且全部为字母或数字（含 ²、½ 等数字字符）
func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
