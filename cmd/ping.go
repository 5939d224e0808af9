package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pingCmd は API キーとモデルへの疎通を確認します。
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Gemini API への接続を確認します。",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd, true)
		if err != nil {
			return err
		}
		result, err := app.Merger.TestConnection(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return err
	},
}
