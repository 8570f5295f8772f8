// cmd/genoscribe/commands/root.go
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/genoscribe/genoscribe/pkg/engine"
	"github.com/genoscribe/genoscribe/pkg/logging"
	"github.com/genoscribe/genoscribe/pkg/settings"
	"github.com/genoscribe/genoscribe/pkg/workspace"
)

const cliExecutable = "genoscribe"

type runtimeKeyType struct{}

// runtimeKey indexes the shared Runtime in the command context.
var runtimeKey = runtimeKeyType{}

// Runtime is the shared state every subcommand operates on: the loaded
// settings, the prepared workspace and the report engine built on it.
type Runtime struct {
	Settings  settings.Settings
	Workspace *workspace.Workspace
	Engine    *engine.Engine
}

// runtimeFrom pulls the Runtime prepared by the root PersistentPreRunE.
func runtimeFrom(cmd *cobra.Command) (*Runtime, error) {
	rt, ok := cmd.Context().Value(runtimeKey).(*Runtime)
	if !ok || rt == nil {
		return nil, fmt.Errorf("runtime not initialized")
	}
	return rt, nil
}

// NewCommand constructs the top-level genoscribe CLI command, wiring
// global flags, settings loading, logging and shared workspace
// preparation.
func NewCommand() *cobra.Command {
	var (
		settingsFile string
		workspaceDir string
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Genoscribe assembles clinical genome reports from modular plugins",
		Long: `Genoscribe drives a three-phase report pipeline: configure resolves an
ordered INI document section by section, extract computes validated JSON
data per plugin, and render concatenates one HTML fragment per plugin
between the core header and footer.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")

			mgr := settings.NewManager()
			sources := settings.DefaultSources(settingsFile, cmd.Flags(), debug)
			if err := mgr.Load(sources); err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			cfg := mgr.Get()

			if err := logging.ConfigureGlobalLogging(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			dir := workspaceDir
			if dir == "" {
				dir = cfg.Workspace.Dir
			}
			ws, err := workspace.Prepare(dir)
			if err != nil {
				return fmt.Errorf("prepare workspace: %w", err)
			}
			log.Debug().Str("workspace", ws.Root()).Msg("workspace ready")

			eng, err := buildEngine(ws, cfg)
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), runtimeKey, &Runtime{
				Settings:  cfg,
				Workspace: ws,
				Engine:    eng,
			})
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", "", "Settings file path (YAML)")
	cmd.PersistentFlags().StringVar(&workspaceDir, "workspace-dir", "", "Override workspace root directory")

	settings.BindFlags(cmd.PersistentFlags())

	cmd.AddGroup(&cobra.Group{ID: "report", Title: "Report Commands"})
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands"})

	cmd.AddCommand(newConfigureCommand())
	cmd.AddCommand(newExtractCommand())
	cmd.AddCommand(newRenderCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newPluginsCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// buildEngine creates the report engine, honoring a schema override from
// the operator settings.
func buildEngine(ws *workspace.Workspace, cfg settings.Settings) (*engine.Engine, error) {
	var (
		eng *engine.Engine
		err error
	)
	if cfg.Report.SchemaFile != "" {
		doc, readErr := os.ReadFile(cfg.Report.SchemaFile)
		if readErr != nil {
			return nil, fmt.Errorf("read schema override %q: %w", cfg.Report.SchemaFile, readErr)
		}
		eng, err = engine.NewWithSchema(ws, doc, log.Logger)
	} else {
		eng, err = engine.New(ws, log.Logger)
	}
	if err != nil {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}
	eng.SetDefaultAuthor(cfg.Report.Author)
	return eng, nil
}
