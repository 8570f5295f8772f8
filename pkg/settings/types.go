// pkg/settings/types.go
package settings

// Settings is the root application-settings structure for genoscribe.
// These are operator-facing knobs; the report configuration itself lives
// in the INI document handed to the pipeline.
type Settings struct {
	Log       LogSettings       `description:"Logging configuration" koanf:"log"`
	Workspace WorkspaceSettings `description:"Workspace configuration" koanf:"workspace"`
	Report    ReportSettings    `description:"Report defaults" koanf:"report"`
}

// LogSettings holds logging related configuration.
type LogSettings struct {
	Level  string `description:"Log level: debug | info | warn | error" koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal"`
	Format string `description:"Log format: console | json" koanf:"format" validate:"omitempty,oneof=console json"`
	File   string `description:"Log file path" koanf:"file"`
}

// WorkspaceSettings holds the staging-area location.
type WorkspaceSettings struct {
	Dir string `description:"Workspace root directory" koanf:"dir"`
}

// ReportSettings holds operator defaults applied to every report run.
type ReportSettings struct {
	Author     string `description:"Default report author" koanf:"author"`
	SchemaFile string `description:"Override for the plugin data schema" koanf:"schema_file" validate:"omitempty,filepath"`
}
