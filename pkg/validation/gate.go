// Package validation はアップロード画像がクライアントに渡る前の入口チェックを行います。
package validation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"
)

// MaxUploadBytes は1画像あたりの最大バイト数 (10MiB) です。
const MaxUploadBytes = 10 * 1024 * 1024

// MaxPixels は展開後の総ピクセル数の上限です。
// 圧縮率の高い画像をデコードした際のメモリ枯渇を防ぎます。
const MaxPixels = 89_478_485

var acceptedMimeTypes = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
}

// Limits は検証の閾値です。ゼロ値のフィールドはデフォルト値になります。
type Limits struct {
	MaxBytes     int
	MaxPixels    int64
	MinFace      int
	MinBookCover int
}

// DefaultLimits は標準の閾値を返します。
func DefaultLimits() Limits {
	return Limits{
		MaxBytes:     MaxUploadBytes,
		MaxPixels:    MaxPixels,
		MinFace:      domain.RoleFace.MinDimension(),
		MinBookCover: domain.RoleBookCover.MinDimension(),
	}
}

// Gate は入力画像の存在・フォーマット・サイズ・解像度を順に検証します。
type Gate struct {
	limits Limits
}

// NewGate は Gate を作成します。
func NewGate(limits Limits) *Gate {
	def := DefaultLimits()
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = def.MaxBytes
	}
	if limits.MaxPixels <= 0 {
		limits.MaxPixels = def.MaxPixels
	}
	if limits.MinFace <= 0 {
		limits.MinFace = def.MinFace
	}
	if limits.MinBookCover <= 0 {
		limits.MinBookCover = def.MinBookCover
	}
	return &Gate{limits: limits}
}

func (g *Gate) minDimension(role domain.Role) int {
	if role == domain.RoleBookCover {
		return g.limits.MinBookCover
	}
	return g.limits.MinFace
}

// Check は data を role の画像として検証します。最初に失敗したルールで打ち切ります。
func (g *Gate) Check(role domain.Role, data []byte) domain.ValidationOutcome {
	outcome, _ := g.check(role, data)
	return outcome
}

func (g *Gate) check(role domain.Role, data []byte) (domain.ValidationOutcome, string) {
	if len(data) == 0 {
		return domain.Reject(fmt.Sprintf("missing image for role %s", role)), ""
	}

	mimeType := http.DetectContentType(data)
	format, ok := acceptedMimeTypes[mimeType]
	if !ok {
		return domain.Reject(fmt.Sprintf("unsupported format for %s image: %s (JPEG or PNG required)", role, mimeType)), ""
	}

	if len(data) > g.limits.MaxBytes {
		return domain.Reject(fmt.Sprintf("%s image file is too large (max %dMB)", role.Label(), g.limits.MaxBytes/(1024*1024))), ""
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.Reject(fmt.Sprintf("unsupported format for %s image: %v", role, err)), ""
	}

	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > g.limits.MaxPixels {
		return domain.Reject(fmt.Sprintf("%s image is too large (%dx%d exceeds %d pixels)", role.Label(), cfg.Width, cfg.Height, g.limits.MaxPixels)), ""
	}

	minDim := g.minDimension(role)
	if cfg.Width < minDim || cfg.Height < minDim {
		return domain.Reject(fmt.Sprintf("%s image is too small (minimum %dx%d pixels)", role.Label(), minDim, minDim)), ""
	}

	return domain.Accept(fmt.Sprintf("%s image accepted", role.Label())), format
}

// Load は Check を通過した画像を完全にデコードして Upload を返します。
// 失敗時は nil と不合格の ValidationOutcome を返します。
func (g *Gate) Load(role domain.Role, data []byte) (*domain.Upload, domain.ValidationOutcome) {
	outcome, format := g.check(role, data)
	if !outcome.Valid {
		return nil, outcome
	}

	img, _, err := imgutil.Decode(data)
	if err != nil {
		return nil, domain.Reject(fmt.Sprintf("error processing %s image: %v", role, err))
	}

	return &domain.Upload{
		Role:   role,
		Data:   data,
		Format: format,
		Image:  img,
	}, outcome
}

// NewMergeRequest は両方の画像が検証を通過した場合のみ MergeRequest を組み立てます。
func (g *Gate) NewMergeRequest(face, bookCover []byte, style domain.MergeStyle, seed *int64) (*domain.MergeRequest, error) {
	faceUpload, outcome := g.Load(domain.RoleFace, face)
	if !outcome.Valid {
		return nil, domain.NewError(domain.KindValidation, "validate", outcome.Reason, nil)
	}
	coverUpload, outcome := g.Load(domain.RoleBookCover, bookCover)
	if !outcome.Valid {
		return nil, domain.NewError(domain.KindValidation, "validate", outcome.Reason, nil)
	}

	return &domain.MergeRequest{
		Face:      faceUpload,
		BookCover: coverUpload,
		Style:     style,
		Seed:      seed,
	}, nil
}
