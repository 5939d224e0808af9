package cmd

import (
	"fmt"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"
	"github.com/shouni/gemini-bookcover-kit/pkg/imgutil"

	"github.com/spf13/cobra"
)

// analyzeCmd は合成前の配置・色調アドバイスを取得します。
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "顔写真と表紙を解析し、合成のアドバイスを表示します。",
	RunE:  analyzeCommand,
}

func init() {
	addImageFlags(analyzeCmd)
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	app, err := buildApp(cmd, true)
	if err != nil {
		return err
	}

	faceData, coverData, err := readInputs(ctx, app)
	if err != nil {
		return err
	}

	face, outcome := app.Gate.Load(domain.RoleFace, faceData)
	if !outcome.Valid {
		return domain.NewError(domain.KindValidation, "analyze", outcome.Reason, nil)
	}
	cover, outcome := app.Gate.Load(domain.RoleBookCover, coverData)
	if !outcome.Valid {
		return domain.NewError(domain.KindValidation, "analyze", outcome.Reason, nil)
	}

	// ローカルの色調比較は通信の成否に関わらず表示する
	tone := imgutil.AnalyzeTone(face.Image, cover.Image)

	text, err := app.Merger.Analyze(ctx, face, cover)
	fmt.Fprintln(out, text)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Tone: %s\n", tone.Summary())
	return err
}
