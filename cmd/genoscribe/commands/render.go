// cmd/genoscribe/commands/render.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genoscribe/genoscribe/cmd/genoscribe/internal/format"
	"github.com/genoscribe/genoscribe/pkg/engine"
	"github.com/genoscribe/genoscribe/pkg/report"
)

func newRenderCommand() *cobra.Command {
	var (
		jsonPath string
		htmlPath string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Compose the final document from extracted report data",
		GroupID: "report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			f := format.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format.ModeTable, quiet, true)

			data, err := report.LoadFile(jsonPath)
			if err != nil {
				err = engine.WrapConfigSourceError(err)
				_ = f.PrintFailure("render", err, engine.Suggestions(err))
				return err
			}

			if err := rt.Workspace.Acquire(); err != nil {
				return err
			}
			defer func() { _ = rt.Workspace.Release() }()

			if _, err := rt.Engine.Render(data, htmlPath); err != nil {
				_ = f.PrintFailure("render", err, engine.Suggestions(err))
				return err
			}
			return f.PrintSummary(fmt.Sprintf("✓ Rendered %d plugin fragments → %s", data.Plugins.Len(), htmlPath))
		},
	}

	cmd.Flags().StringVarP(&jsonPath, "json", "j", "", "Report data (JSON), typically output of extract")
	cmd.Flags().StringVarP(&htmlPath, "html", "o", "", "Rendered document output path (HTML)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress summary output")
	_ = cmd.MarkFlagRequired("json")
	_ = cmd.MarkFlagRequired("html")

	return cmd
}
