package generator

import (
	"context"
	"image"
	"time"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"google.golang.org/genai"
)

// ContentGenerator はリモートの生成AIサービスとの境界です。
// genai.Models がこのインターフェースを満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// MergeService は呼び出し側（CLI 等）が利用する統合窓口です。
type MergeService interface {
	// Merge は顔写真を表紙に合成した画像を生成します。
	Merge(ctx context.Context, req *domain.MergeRequest) (*domain.MergeResult, error)
	// Analyze は合成に向けた配置・色調のアドバイスをテキストで返します。
	Analyze(ctx context.Context, face, bookCover *domain.Upload) (string, error)
	// ValidateImages は生成リクエスト前の事前チェックを行います。通信は発生しません。
	ValidateImages(face, bookCover image.Image) domain.ValidationOutcome
	// TestConnection は API キーと疎通を確認します。
	TestConnection(ctx context.Context) (domain.ConnectionResult, error)
}

// ImageCacher は、送信用に整形済みの画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}
