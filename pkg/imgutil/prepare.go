package imgutil

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// DefaultMaxSize は送信前に許容する長辺の最大ピクセル数です。
const DefaultMaxSize = 1024

// Prepare は送信前の正規化を行います。
// 不透明な RGB に変換し、長辺が maxSize を超える場合はアスペクト比を保って縮小します。
// すでに条件を満たす画像に対しては何もしません。
func Prepare(img image.Image, maxSize int) image.Image {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	rgb := ToRGB(img)
	b := rgb.Bounds()
	if max(b.Dx(), b.Dy()) <= maxSize {
		return rgb
	}

	w, h := ScaledSize(b.Dx(), b.Dy(), maxSize)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), rgb, b, draw.Src, nil)
	// Catmull-Rom の丸めでアルファが 0xff を割ることがあるため揃える
	forceOpaque(dst)
	return dst
}

// ScaledSize は長辺が maxSize になるよう縮小した幅と高さを返します。
// 短辺は最も近い整数に丸め、最低 1px を保証します。
func ScaledSize(width, height, maxSize int) (int, int) {
	longest := max(width, height)
	if longest <= maxSize || longest == 0 {
		return width, height
	}
	ratio := float64(maxSize) / float64(longest)
	if width >= height {
		return maxSize, max(1, int(math.Round(float64(height)*ratio)))
	}
	return max(1, int(math.Round(float64(width)*ratio))), maxSize
}

// ToRGB は任意の画像を原点 (0,0) の不透明な *image.RGBA に変換します。
// 透過画像はアルファを捨て、非乗算の色値をそのまま使います。
func ToRGB(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Opaque() {
		return rgba
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := dst.PixOffset(x-b.Min.X, y-b.Min.Y)
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = 0xff
		}
	}
	return dst
}

// NewSolidImage は単色で塗りつぶした画像を作成します。
func NewSolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func forceOpaque(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
