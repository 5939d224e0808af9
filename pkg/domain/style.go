package domain

import "strings"

// MergeStyle は顔をどの程度写実的／イラスト的に馴染ませるかを選ぶプリセットです。
type MergeStyle int

const (
	StyleNatural MergeStyle = iota
	StyleArtistic
	StyleCartoon
)

// AllMergeStyles は定義済みのスタイルをすべて返します。
func AllMergeStyles() []MergeStyle {
	return []MergeStyle{StyleNatural, StyleArtistic, StyleCartoon}
}

func (s MergeStyle) String() string {
	switch s {
	case StyleArtistic:
		return "artistic"
	case StyleCartoon:
		return "cartoon"
	default:
		return "natural"
	}
}

// ParseMergeStyle はスタイル名を MergeStyle に変換します。
// 未知の名前は StyleNatural として扱います。
func ParseMergeStyle(name string) MergeStyle {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "artistic":
		return StyleArtistic
	case "cartoon":
		return StyleCartoon
	default:
		return StyleNatural
	}
}
