package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/gemini-bookcover-kit/internal/config"
	"github.com/shouni/gemini-bookcover-kit/internal/input"
	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/generator"
	"github.com/shouni/gemini-bookcover-kit/pkg/validation"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"
)

const cacheCleanupInterval = 1 * time.Hour

// AppContext は、コマンド実行に必要な依存関係をまとめて保持します。
type AppContext struct {
	Config *config.Config         // 環境変数とフラグから組み立てた設定
	Reader input.Reader           // ローカルパスや gs:// の入力元
	Writer input.Writer           // 合成画像の保存先（ローカル or gs://）
	Loader *input.Loader          // ローカルパス / gs:// / URL から画像を読み込む
	Gate   *validation.Gate       // アップロード単位の検証
	Merger generator.MergeService // 合成・解析・疎通確認の窓口
}

// BuildAppContext は設定から AppContext を組み立てます。
// requireAPIKey が false で API キーが無い場合、通信を伴う操作は KindConfiguration のエラーを返します。
func BuildAppContext(ctx context.Context, cfg *config.Config, requireAPIKey bool) (*AppContext, error) {
	var aiClient generator.ContentGenerator
	if requireAPIKey || cfg.GeminiAPIKey != "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		c, err := InitializeAIClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		aiClient = c
	} else {
		aiClient = offlineGenerator{}
	}

	merger, err := BuildMergeClient(aiClient, cfg)
	if err != nil {
		return nil, err
	}

	store := newRemoteStore()
	return &AppContext{
		Config: cfg,
		Reader: store,
		Writer: store,
		Loader: input.NewLoader(httpkit.New(cfg.HTTPTimeout), store),
		Gate:   validation.NewGate(validation.DefaultLimits()),
		Merger: merger,
	}, nil
}

// InitializeAIClient は Gemini API クライアントを初期化します。
func InitializeAIClient(ctx context.Context, cfg *config.Config) (generator.ContentGenerator, error) {
	aiClient, err := generator.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildMergeClient はキャッシュ付きの MergeClient を作成します。
func BuildMergeClient(aiClient generator.ContentGenerator, cfg *config.Config) (*generator.MergeClient, error) {
	imgCache := cache.New(config.DefaultCacheTTL, cacheCleanupInterval)

	return generator.NewMergeClient(aiClient, generator.Options{
		ImageModel:   cfg.ImageModel,
		TextModel:    cfg.TextModel,
		MaxImageSize: cfg.MaxImageSize,
		Cache:        imgCache,
		CacheTTL:     config.DefaultCacheTTL,
	})
}

// offlineGenerator は API キー無しで起動した場合の代替です。
type offlineGenerator struct{}

func (offlineGenerator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, domain.NewError(domain.KindConfiguration, "gemini", "GEMINI_API_KEY is not set", nil)
}
