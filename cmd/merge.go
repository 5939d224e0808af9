package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/shouni/gemini-bookcover-kit/internal/config"
	"github.com/shouni/gemini-bookcover-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// mergeCmd は顔写真を表紙に合成し、PNG として保存します。
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "顔写真を本の表紙に合成します。",
	Long: `顔写真と表紙画像を検証した上で Gemini に合成を依頼し、結果を PNG で保存します。
--seed を指定すると同じ入力から近い結果を再現できます。`,
	RunE: mergeCommand,
}

func init() {
	addImageFlags(mergeCmd)
	mergeCmd.Flags().StringVarP(&opts.Style, "style", "s", domain.StyleNatural.String(), "合成スタイル (natural|artistic|cartoon)")
	mergeCmd.Flags().Int64Var(&opts.Seed, "seed", 0, "生成に使うシード値（未指定時はサービス側に任せる）")
	mergeCmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutputFile, "出力先のパス（ローカル or gs://）")
}

func mergeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := buildApp(cmd, true)
	if err != nil {
		return err
	}

	face, cover, err := readInputs(ctx, app)
	if err != nil {
		return err
	}

	var seed *int64
	if cmd.Flags().Changed("seed") {
		seed = &opts.Seed
	}

	style := domain.ParseMergeStyle(opts.Style)
	req, err := app.Gate.NewMergeRequest(face, cover, style, seed)
	if err != nil {
		return err
	}

	slog.Info("合成を開始します",
		"style", style,
		"image_model", app.Config.ImageModel,
		"face", fmt.Sprintf("%dx%d", req.Face.Width(), req.Face.Height()),
		"cover", fmt.Sprintf("%dx%d", req.BookCover.Width(), req.BookCover.Height()))

	result, err := app.Merger.Merge(ctx, req)
	if err != nil {
		return fmt.Errorf("合成に失敗しました: %w", err)
	}

	outputPath := resolveOutputPath(cmd, app.Config.OutputDir)
	if err := app.Writer.Write(ctx, outputPath, bytes.NewReader(result.PNG), "image/png"); err != nil {
		return fmt.Errorf("画像の保存に失敗しました: %w", err)
	}

	slog.Info("合成画像を保存しました", "path", outputPath, "bytes", len(result.PNG), "seed", result.UsedSeed)
	fmt.Fprintln(cmd.OutOrStdout(), outputPath)
	return nil
}

// resolveOutputPath は --output が省略された場合に出力ディレクトリ配下のデフォルトパスを返します。
// 出力ディレクトリには gs:// も指定できます。
func resolveOutputPath(cmd *cobra.Command, outputDir string) string {
	if cmd.Flags().Changed("output") {
		return opts.Output
	}
	if strings.HasPrefix(outputDir, "gs://") {
		return strings.TrimSuffix(outputDir, "/") + "/" + config.DefaultOutputFile
	}
	return path.Join(outputDir, config.DefaultOutputFile)
}
