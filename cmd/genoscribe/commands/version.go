// cmd/genoscribe/commands/version.go
package commands

import (
	"io"
	"runtime"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/genoscribe/genoscribe/pkg/version"
)

var versionTemplate = `Version:      {{.Version}}
Commit:       {{.Commit}}
Go version:   {{.GoVersion}}
Built:        {{.BuildDate}}
OS/Arch:      {{.Os}}/{{.Arch}}
`

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the version number of genoscribe",
		GroupID: "core",
		// Version needs no settings, workspace or engine.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(wr io.Writer) error {
	tmpl, err := template.New("").Parse(versionTemplate)
	if err != nil {
		return err
	}

	v := struct {
		Version   string
		Commit    string
		GoVersion string
		BuildDate string
		Os        string
		Arch      string
	}{
		Version:   version.Version,
		Commit:    version.Commit,
		GoVersion: runtime.Version(),
		BuildDate: version.BuildDate,
		Os:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	return tmpl.Execute(wr, v)
}
