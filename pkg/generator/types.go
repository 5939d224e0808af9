package generator

import (
	"time"

	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"
)

const (
	DefaultImageModel = "gemini-2.0-flash-preview-image-generation"
	DefaultTextModel  = "gemini-2.0-flash-exp"
	DefaultCacheTTL   = 30 * time.Minute

	// UnableToAnalyze は解析結果のテキストが得られなかった場合の文言です。
	UnableToAnalyze = "Unable to analyze images."

	// sizeEstimateQuality は転送サイズ見積もり時の JPEG 品質です。
	sizeEstimateQuality = 75
	probeImageSize      = 100
	cacheKeyPrepared    = "prepared:"
)

// Options は MergeClient の設定です。ゼロ値はデフォルトで補完されます。
type Options struct {
	ImageModel   string
	TextModel    string
	MaxImageSize int
	JPEGQuality  int
	Cache        ImageCacher // nil を許容（キャッシュなし動作）
	CacheTTL     time.Duration
}

func (o Options) withDefaults() Options {
	if o.ImageModel == "" {
		o.ImageModel = DefaultImageModel
	}
	if o.TextModel == "" {
		o.TextModel = DefaultTextModel
	}
	if o.MaxImageSize <= 0 {
		o.MaxImageSize = imgutil.DefaultMaxSize
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = imgutil.DefaultJPEGQuality
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return o
}

// ImageOutput は応答から取り出した画像パーツです。
type ImageOutput struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}
