// pkg/version/version.go
// Package version provides version metadata for the application.
package version

import "fmt"

// These variables are typically injected at build time using -ldflags
var (
	// Version holds the current version of genoscribe.
	Version = "dev"
	// Commit holds the current version commit of genoscribe.
	Commit = "none"
	// BuildDate holds the build date of genoscribe.
	BuildDate = "unknown"
)

// Struct returns version information in a structured format.
type Struct struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// Info returns a formatted version string.
func Info() string {
	return fmt.Sprintf("Genoscribe %s (commit: %s, date: %s)", Version, Commit, BuildDate)
}

// Get returns version information as a Struct.
func Get() Struct {
	return Struct{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	}
}
