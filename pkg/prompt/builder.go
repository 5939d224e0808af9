// Package prompt は Gemini に渡す固定プロンプトを組み立てます。
// 出力はスタイルのみで決まり、乱数や外部状態には依存しません。
package prompt

import (
	"strings"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
)

const baseMergePrompt = `I have two images: a child's face photo and a book cover. Please merge the child's face seamlessly into the book cover design.

Requirements:
- Integrate the child's face naturally into the book cover
- Keep the book's title, text, and design elements intact
- Match the lighting and color tone of the book cover
- Make the face placement look professional and appealing
- Ensure the integration appears natural and well-blended`

const mergeClosing = "Generate the merged book cover image with the child's face integrated."

// AnalysisPrompt は analyze 操作用の固定プロンプトです。
const AnalysisPrompt = `Analyze these two images for face merging:
1. First image: A child's face photo
2. Second image: A book cover

Provide brief suggestions on:
- Best placement for the face on the book cover
- Color/lighting adjustments needed
- Style compatibility
- Any potential challenges

Keep the analysis concise and practical.`

// ConnectionProbePrompt は疎通確認で単色画像と一緒に送る質問です。
const ConnectionProbePrompt = "What color is this image?"

// StyleClause はスタイルごとの追加指示を返します。
// 定義外の値は natural と同じ指示になります。
func StyleClause(style domain.MergeStyle) string {
	switch style {
	case domain.StyleArtistic:
		return "Apply artistic effects to blend the face with the book's illustration style while keeping it recognizable."
	case domain.StyleCartoon:
		return "Stylize the face to match cartoon or illustrated book aesthetics if the cover has that style."
	case domain.StyleNatural:
		fallthrough
	default:
		return "Keep the child's face realistic with natural lighting that matches the book cover style."
	}
}

// Build は合成用プロンプトを組み立てます。
func Build(style domain.MergeStyle) string {
	var sb strings.Builder
	sb.WriteString(baseMergePrompt)
	sb.WriteString("\n- ")
	sb.WriteString(StyleClause(style))
	sb.WriteString("\n\n")
	sb.WriteString(mergeClosing)
	return sb.String()
}

// BuildForName はスタイル名から合成用プロンプトを組み立てます。
func BuildForName(name string) string {
	return Build(domain.ParseMergeStyle(name))
}
