// Package gas 负责气体标签的提取与查询过滤条件的解析
package gas

import "strings"

// KnownSymbols 已知气体标签，顺序无意义
var KnownSymbols = []string{"co2", "ghgs", "hfcs", "ch4", "nf3", "n2o", "pfcs", "sf6"}

var knownSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(KnownSymbols))
	for _, s := range KnownSymbols {
		m[s] = struct{}{}
	}
	return m
}()

const emissionsSuffix = "_emissions"

// ExtractSymbols 从 category（如 co2_ch4_emissions）中取出已知气体标签，保持原顺序。
// 没有 _emissions 后缀时整串作为来源。
func ExtractSymbols(category string) []string {
	head, _, _ := strings.Cut(category, emissionsSuffix)

	var symbols []string
	for _, token := range strings.Split(head, "_") {
		if _, ok := knownSet[token]; ok {
			symbols = append(symbols, token)
		}
	}
	return symbols
}

// ExtractSymbol 返回逗号拼接的气体标签，无匹配时为空串
func ExtractSymbol(category string) string {
	return strings.Join(ExtractSymbols(category), ",")
}
