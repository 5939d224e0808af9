package imgutil

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
)

// toneContrastThreshold を超える Lab 距離は「トーンが離れている」と判定します。
const toneContrastThreshold = 0.3

// ToneReport は顔写真と表紙の主要色の比較結果です。
// 合成前にライティングや色味の差を把握するための補助情報です。
type ToneReport struct {
	FaceHex     string
	CoverHex    string
	Distance    float64
	Contrasting bool
}

// Summary は人間向けの要約を返します。
func (r ToneReport) Summary() string {
	verdict := "similar tones"
	if r.Contrasting {
		verdict = "contrasting tones, expect colour correction"
	}
	return fmt.Sprintf("face %s / cover %s (Lab distance %.2f): %s", r.FaceHex, r.CoverHex, r.Distance, verdict)
}

// AnalyzeTone は二つの画像の主要色を求め、Lab 空間での距離を比較します。
func AnalyzeTone(face, cover image.Image) ToneReport {
	fc := DominantColor(face)
	cc := DominantColor(cover)
	d := fc.DistanceLab(cc)
	return ToneReport{
		FaceHex:     fc.Hex(),
		CoverHex:    cc.Hex(),
		Distance:    d,
		Contrasting: d > toneContrastThreshold,
	}
}

// DominantColor は画像で最も支配的な色を返します。
// 候補が得られない場合は中間グレーを返します。
func DominantColor(img image.Image) colorful.Color {
	candidates := dominantcolor.FindWeight(img, 1)
	if len(candidates) == 0 {
		col, _ := colorful.MakeColor(color.RGBA{R: 128, G: 128, B: 128, A: 255})
		return col
	}
	col, _ := colorful.MakeColor(candidates[0].RGBA)
	return col.Clamped()
}
