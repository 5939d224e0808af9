package cmd

import (
	"fmt"

	"github.com/shouni/gemini-bookcover-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// validateCmd は通信を行わずに入力画像の事前チェックだけを行います。
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "入力画像が合成に適しているかを確認します（通信なし）。",
	RunE:  validateCommand,
}

func init() {
	addImageFlags(validateCmd)
}

func validateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	app, err := buildApp(cmd, false)
	if err != nil {
		return err
	}

	faceData, coverData, err := readInputs(ctx, app)
	if err != nil {
		return err
	}

	face, outcome := app.Gate.Load(domain.RoleFace, faceData)
	fmt.Fprintln(out, outcome.Reason)
	if !outcome.Valid {
		return domain.NewError(domain.KindValidation, "validate", outcome.Reason, nil)
	}
	cover, outcome := app.Gate.Load(domain.RoleBookCover, coverData)
	fmt.Fprintln(out, outcome.Reason)
	if !outcome.Valid {
		return domain.NewError(domain.KindValidation, "validate", outcome.Reason, nil)
	}

	outcome = app.Merger.ValidateImages(face.Image, cover.Image)
	fmt.Fprintln(out, outcome.Reason)
	if !outcome.Valid {
		return domain.NewError(domain.KindValidation, "validate", outcome.Reason, nil)
	}
	return nil
}
