// pkg/settings/settings.go
// Package settings loads operator-facing application settings (log level,
// workspace location, report defaults) from layered sources. Report
// content configuration is a separate concern handled by pkg/config.
package settings

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Manager handles loading and accessing application settings.
type Manager struct {
	koanfInstance *koanf.Koanf
	current       Settings
	mu            sync.RWMutex
}

// NewManager creates a settings Manager with a fresh koanf instance.
func NewManager() *Manager {
	return &Manager{koanfInstance: koanf.New(".")}
}

// DefaultSettings returns a Settings struct populated with hardcoded
// default values. These are the baseline if no other source overrides them.
func DefaultSettings() Settings {
	return Settings{
		Log: LogSettings{
			Level:  "error",
			Format: "console",
			File:   "",
		},
		Workspace: WorkspaceSettings{
			Dir: "", // empty means the workspace package picks its default
		},
		Report: ReportSettings{
			Author:     "CGI Reporting Lab",
			SchemaFile: "",
		},
	}
}

// DefaultSettingsAsMap converts the DefaultSettings struct to a flat map
// for koanf's confmap.Provider, so koanf knows all keys up front.
func DefaultSettingsAsMap() map[string]interface{} {
	def := DefaultSettings()
	return map[string]interface{}{
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,
		"log.file":   def.Log.File,

		"workspace.dir": def.Workspace.Dir,

		"report.author":      def.Report.Author,
		"report.schema_file": def.Report.SchemaFile,
	}
}

// Load merges all sources in priority order and validates the result.
func (m *Manager) Load(sources []Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ordered := make([]Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	for _, src := range ordered {
		if err := src.Load(m.koanfInstance); err != nil {
			return fmt.Errorf("settings source %s: %w", src.Name(), err)
		}
	}

	var next Settings
	if err := m.koanfInstance.UnmarshalWithConf("", &next, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling settings: %w", err)
	}
	if err := validate(next); err != nil {
		return err
	}
	m.current = next
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// AsMap returns the settings as a nested map keyed the same way the
// sources are, suitable for dumping the effective configuration.
func (s Settings) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level":  s.Log.Level,
			"format": s.Log.Format,
			"file":   s.Log.File,
		},
		"workspace": map[string]interface{}{
			"dir": s.Workspace.Dir,
		},
		"report": map[string]interface{}{
			"author":      s.Report.Author,
			"schema_file": s.Report.SchemaFile,
		},
	}
}

func validate(s Settings) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid settings: field %s failed rule %q", e.Namespace(), e.Tag())
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// BindFlags defines command-line flags corresponding to settings keys.
// Flag names use dots so posflag maps them onto koanf keys directly.
func BindFlags(flags *pflag.FlagSet) {
	defaults := DefaultSettings()

	flags.String("log.level", defaults.Log.Level, "Log level (debug, info, warn, error)")
	flags.String("log.format", defaults.Log.Format, "Log format (console, json)")
	flags.String("log.file", defaults.Log.File, "Path to log file (optional, leave empty for stderr)")
	flags.String("workspace.dir", defaults.Workspace.Dir, "Workspace root directory")
	flags.String("report.author", defaults.Report.Author, "Default report author")
	flags.String("report.schema_file", defaults.Report.SchemaFile, "Override the built-in plugin data schema")

	flags.Bool("debug", false, "Enable debug logging")
}
