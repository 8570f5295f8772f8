// cmd/genoscribe/commands/configure.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genoscribe/genoscribe/cmd/genoscribe/internal/format"
	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/engine"
)

func newConfigureCommand() *cobra.Command {
	var (
		iniPath string
		outPath string
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:     "configure",
		Short:   "Resolve a configuration document section by section",
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
				_ = f.PrintFailure("configure", err, engine.Suggestions(err))
				return err
			}

			if err := rt.Workspace.Acquire(); err != nil {
				return err
			}
			defer func() { _ = rt.Workspace.Release() }()

			out, err := rt.Engine.Configure(doc, outPath)
			if err != nil {
				_ = f.PrintFailure("configure", err, engine.Suggestions(err))
				return err
			}

			return f.PrintSummary(fmt.Sprintf("✓ Configured %d sections → %s", out.Len(), outPath))
		},
	}

	cmd.Flags().StringVarP(&iniPath, "ini", "i", "", "Input configuration document (INI)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Resolved configuration output path")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress summary output")
	_ = cmd.MarkFlagRequired("ini")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
