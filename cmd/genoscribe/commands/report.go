// cmd/genoscribe/commands/report.go
package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/genoscribe/genoscribe/cmd/genoscribe/internal/format"
	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/engine"
)

const (
	reportConfigName   = "genoscribe_config.ini"
	reportDataName     = "genoscribe_report.json"
	reportDocumentName = "genoscribe_report.html"
)

func newReportCommand() *cobra.Command {
	var (
		iniPath string
		outDir  string
		watch   bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Run the full configure, extract and render pipeline",
		GroupID: "report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			f := format.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format.ModeTable, quiet, true)
			reporter := format.NewRunReporter(cmd.OutOrStdout(), true, quiet)

			paths := engine.RunPaths{
				ConfigOut:   filepath.Join(outDir, reportConfigName),
				DataOut:     filepath.Join(outDir, reportDataName),
				DocumentOut: filepath.Join(outDir, reportDocumentName),
			}

			runOnce := func() error {
				doc, err := config.Load(iniPath)
				if err != nil {
					err = engine.WrapConfigSourceError(err)
					_ = f.PrintFailure("report", err, engine.Suggestions(err))
					return err
				}
				if _, err := rt.Engine.Run(doc, paths); err != nil {
					_ = f.PrintFailure("report", err, engine.Suggestions(err))
					return err
				}
				reporter.Phase("report", doc.Len())
				reporter.Artifact("config", paths.ConfigOut)
				reporter.Artifact("data", paths.DataOut)
				reporter.Artifact("document", paths.DocumentOut)
				return nil
			}

			if !watch {
				return runOnce()
			}

			// Watch mode: rebuild on every settled change to the input
			// document, until interrupted. The first build's failure is not
			// fatal; the operator edits the file and the watcher retries.
			if err := runOnce(); err != nil {
				log.Warn().Err(err).Msg("initial build failed; waiting for changes")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			watcher, err := engine.NewConfigWatcher(iniPath, func() {
				if err := runOnce(); err != nil {
					log.Warn().Err(err).Msg("rebuild failed; waiting for changes")
				}
			}, log.Logger)
			if err != nil {
				return err
			}
			if err := watcher.Start(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&iniPath, "ini", "i", "", "Input configuration document (INI)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", ".", "Directory for generated artifacts")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild whenever the input document changes")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress summary output")
	_ = cmd.MarkFlagRequired("ini")

	return cmd
}
