// cmd/genoscribe/commands/extract.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genoscribe/genoscribe/cmd/genoscribe/internal/format"
	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/engine"
)

func newExtractCommand() *cobra.Command {
	var (
		iniPath  string
		jsonPath string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:     "extract",
		Short:   "Compute validated report data from a configured document",
		GroupID: "report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			f := format.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format.ModeTable, quiet, true)

			doc, err := config.Load(iniPath)
			if err != nil {
				err = engine.WrapConfigSourceError(err)
				_ = f.PrintFailure("extract", err, engine.Suggestions(err))
				return err
			}

			if err := rt.Workspace.Acquire(); err != nil {
				return err
			}
			defer func() { _ = rt.Workspace.Release() }()

			data, err := rt.Engine.Extract(doc, jsonPath)
			if err != nil {
				_ = f.PrintFailure("extract", err, engine.Suggestions(err))
				return err
			}
			return f.PrintSummary(fmt.Sprintf("✓ Extracted %d plugin sections → %s", data.Plugins.Len(), jsonPath))
		},
	}

	cmd.Flags().StringVarP(&iniPath, "ini", "i", "", "Configured document (INI), typically output of configure")
	cmd.Flags().StringVarP(&jsonPath, "json", "j", "", "Report data output path (JSON)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress summary output")
	_ = cmd.MarkFlagRequired("ini")
	_ = cmd.MarkFlagRequired("json")

	return cmd
}
