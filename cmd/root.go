package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/gemini-bookcover-kit/internal/builder"
	"github.com/shouni/gemini-bookcover-kit/internal/config"
	"github.com/shouni/gemini-bookcover-kit/pkg/generator"
	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"

	"github.com/spf13/cobra"
)

// appOptions はコマンドラインから渡された実行時の設定です。
type appOptions struct {
	ImageModel string
	TextModel  string
	MaxSize    int
	Verbose    bool

	FacePath  string
	CoverPath string
	Style     string
	Seed      int64
	Output    string
}

var opts appOptions

var rootCmd = &cobra.Command{
	Use:   "bookcover",
	Short: "顔写真を本の表紙に合成する Gemini クライアントです。",
	Long: `顔写真と本の表紙画像を検証・前処理し、Gemini の画像生成モデルで
顔を表紙のキャラクターに差し替えた画像を生成します。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", generator.DefaultImageModel, "画像生成に使う Gemini モデル名")
	rootCmd.PersistentFlags().StringVar(&opts.TextModel, "text-model", generator.DefaultTextModel, "解析・疎通確認に使う Gemini モデル名")
	rootCmd.PersistentFlags().IntVar(&opts.MaxSize, "max-size", imgutil.DefaultMaxSize, "送信前に縮小する長辺の最大ピクセル数")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "デバッグログを出力する")

	rootCmd.AddCommand(mergeCmd, analyzeCmd, validateCmd, pingCmd)
}

// preRunAppE はロガーを設定し、通信を伴うコマンドでは API キーの存在を確認します。
func preRunAppE(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cmd.Name() == validateCmd.Name() {
		return nil
	}
	return config.LoadConfig().Validate()
}

// Execute は main から呼び出されるエントリポイントです。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig は環境変数の設定に、明示されたフラグの値を上書きします。
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.LoadConfig()
	flags := cmd.Flags()
	if flags.Changed("image-model") {
		cfg.ImageModel = opts.ImageModel
	}
	if flags.Changed("text-model") {
		cfg.TextModel = opts.TextModel
	}
	if flags.Changed("max-size") {
		cfg.MaxImageSize = opts.MaxSize
	}
	return cfg
}

// buildApp は設定を読み込み、AppContext を組み立てます。
// テストで差し替えられるよう変数にしています。
var buildApp = func(cmd *cobra.Command, requireAPIKey bool) (*builder.AppContext, error) {
	cfg := loadConfig(cmd)
	return builder.BuildAppContext(cmd.Context(), cfg, requireAPIKey)
}

// addImageFlags は顔写真と表紙の入力フラグを登録します。
func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&opts.FacePath, "face", "f", "", "顔写真のパス（ローカル / gs:// / http(s)）")
	cmd.Flags().StringVarP(&opts.CoverPath, "cover", "c", "", "本の表紙画像のパス（ローカル / gs:// / http(s)）")
}

// readInputs は顔写真と表紙のバイト列を読み込みます。
func readInputs(ctx context.Context, app *builder.AppContext) (face, cover []byte, err error) {
	face, err = app.Loader.Load(ctx, opts.FacePath)
	if err != nil {
		return nil, nil, fmt.Errorf("顔写真: %w", err)
	}
	cover, err = app.Loader.Load(ctx, opts.CoverPath)
	if err != nil {
		return nil, nil, fmt.Errorf("表紙: %w", err)
	}
	return face, cover, nil
}
