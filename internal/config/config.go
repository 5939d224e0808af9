package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/generator"
	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultOutputDir   = "output"
	DefaultOutputFile  = "merged_book_cover.png"
	DefaultCacheTTL    = generator.DefaultCacheTTL
)

// Config はアプリケーション全体の環境設定を保持する構造体です。
type Config struct {
	GeminiAPIKey string
	ImageModel   string
	TextModel    string
	MaxImageSize int
	HTTPTimeout  time.Duration
	OutputDir    string
}

// LoadConfig は環境変数から設定を読み込みます。
// 数値や期間として解釈できない値は警告を出してデフォルトに戻します。
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		ImageModel:   envutil.GetEnv("GEMINI_IMAGE_MODEL", generator.DefaultImageModel),
		TextModel:    envutil.GetEnv("GEMINI_TEXT_MODEL", generator.DefaultTextModel),
		MaxImageSize: parseInt("MAX_IMAGE_SIZE", envutil.GetEnv("MAX_IMAGE_SIZE", ""), imgutil.DefaultMaxSize),
		HTTPTimeout:  parseDuration("HTTP_TIMEOUT", envutil.GetEnv("HTTP_TIMEOUT", ""), DefaultHTTPTimeout),
		OutputDir:    envutil.GetEnv("OUTPUT_DIR", DefaultOutputDir),
	}
}

// Validate は通信を始める前に必須の設定が揃っているかを確認します。
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return domain.NewError(domain.KindConfiguration, "config",
			"環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須です", nil)
	}
	if c.MaxImageSize <= 0 {
		return domain.NewError(domain.KindConfiguration, "config",
			fmt.Sprintf("MAX_IMAGE_SIZE must be positive: %d", c.MaxImageSize), nil)
	}
	return nil
}

func parseInt(key, raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("数値として解釈できない設定値です。デフォルトを使用します", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}

func parseDuration(key, raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("期間として解釈できない設定値です。デフォルトを使用します", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}
