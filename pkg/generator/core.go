package generator

import (
	"fmt"
	"time"
)

// MergeClient は前処理・プロンプト生成・リクエスト送信・応答解析をまとめて担うクライアントです。
// 保持する状態はリモートサービスへのハンドルと任意のキャッシュのみです。
type MergeClient struct {
	aiClient     ContentGenerator
	imageModel   string
	textModel    string
	maxImageSize int
	jpegQuality  int
	cache        ImageCacher
	expiration   time.Duration
}

// NewMergeClient は依存関係を注入して MergeClient を初期化します。
func NewMergeClient(aiClient ContentGenerator, opts Options) (*MergeClient, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	opts = opts.withDefaults()

	return &MergeClient{
		aiClient:     aiClient,
		imageModel:   opts.ImageModel,
		textModel:    opts.TextModel,
		maxImageSize: opts.MaxImageSize,
		jpegQuality:  opts.JPEGQuality,
		cache:        opts.Cache,
		expiration:   opts.CacheTTL,
	}, nil
}

var _ MergeService = (*MergeClient)(nil)
