package generator

import (
	"context"
	"net/http"
	"strings"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"google.golang.org/genai"
)

// GeminiOption は genai クライアント生成時の設定を上書きします。
type GeminiOption func(*genai.ClientConfig)

// WithBaseURL は API のベースURLを差し替えます（プロキシやテスト用）。
func WithBaseURL(baseURL string) GeminiOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPOptions.BaseURL = baseURL
	}
}

// WithHTTPClient は通信に使う http.Client を差し替えます。
func WithHTTPClient(hc *http.Client) GeminiOption {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = hc
	}
}

// NewGeminiGenerator は Gemini API 用の ContentGenerator を作成します。
// API キーが空の場合は通信を行う前に KindConfiguration のエラーを返します。
func NewGeminiGenerator(ctx context.Context, apiKey string, opts ...GeminiOption) (ContentGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.NewError(domain.KindConfiguration, "gemini", "GEMINI_API_KEY is not set", nil)
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, domain.NewError(domain.KindConfiguration, "gemini", "failed to initialize Gemini client", err)
	}
	return client.Models, nil
}
