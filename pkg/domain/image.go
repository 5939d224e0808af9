package domain

import "image"

// Role はアップロード画像の役割（顔写真 or 表紙）を表します。
type Role int

const (
	RoleFace Role = iota
	RoleBookCover
)

// String は検証メッセージ等で使う役割名を返します。
func (r Role) String() string {
	switch r {
	case RoleBookCover:
		return "book-cover"
	default:
		return "face"
	}
}

// Label は人間向けの表示名です。
func (r Role) Label() string {
	switch r {
	case RoleBookCover:
		return "Book cover"
	default:
		return "Face"
	}
}

// MinDimension は役割ごとに要求される最小の幅・高さ（ピクセル）です。
func (r Role) MinDimension() int {
	switch r {
	case RoleBookCover:
		return 200
	default:
		return 100
	}
}

// Upload は受け取った画像のエンコード済みバイト列と、デコード後のラスタを保持します。
// Data が空の場合でも Image があれば処理は可能です（キャッシュ対象外になるだけ）。
type Upload struct {
	Role   Role
	Data   []byte
	Format string // "jpeg" or "png"
	Image  image.Image
}

// Width はデコード済み画像の幅を返します。
func (u *Upload) Width() int {
	if u == nil || u.Image == nil {
		return 0
	}
	return u.Image.Bounds().Dx()
}

// Height はデコード済み画像の高さを返します。
func (u *Upload) Height() int {
	if u == nil || u.Image == nil {
		return 0
	}
	return u.Image.Bounds().Dy()
}

// MergeRequest は顔写真・表紙・スタイルをひとまとめにした合成要求です。
// validation.Gate を通過した Upload からのみ組み立てられます。
type MergeRequest struct {
	Face      *Upload
	BookCover *Upload
	Style     MergeStyle
	Seed      *int64 // nil の場合はモデル任せ
}

// MergeResult は生成された合成画像です。成功時はすべてのフィールドが埋まります。
type MergeResult struct {
	Image    image.Image
	PNG      []byte // ダウンロード用に PNG へ再エンコードしたもの
	MimeType string // モデルが返した元の MIME タイプ
	UsedSeed int64
}

// ValidationOutcome は検証結果です。Reason は成否に関わらず必ず設定されます。
type ValidationOutcome struct {
	Valid  bool
	Reason string
}

// Accept は成功の ValidationOutcome を作ります。
func Accept(reason string) ValidationOutcome {
	return ValidationOutcome{Valid: true, Reason: reason}
}

// Reject は失敗の ValidationOutcome を作ります。
func Reject(reason string) ValidationOutcome {
	return ValidationOutcome{Valid: false, Reason: reason}
}

// ConnectionResult は疎通確認の結果です。
type ConnectionResult struct {
	Connected bool
	Message   string
}
