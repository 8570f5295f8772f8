// cmd/genoscribe/commands/plugins.go
package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genoscribe/genoscribe/cmd/genoscribe/internal/format"
	"github.com/genoscribe/genoscribe/pkg/plugin"
)

func newPluginsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "plugins",
		Short:   "List registered report plugins and their parameters",
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			if err := format.ValidateMode(output); err != nil {
				return err
			}
			f := format.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format.ParseMode(output), false, true)

			headers := []string{"identifier", "required", "discovered", "priority", "attributes"}
			var rows [][]string
			for _, id := range plugin.Registered() {
				inst, err := rt.Engine.Loader().Load(id)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					id,
					orDash(strings.Join(inst.Spec.RequiredKeys(), ", ")),
					orDash(strings.Join(inst.Spec.DiscoveredKeys(), ", ")),
					strconv.Itoa(inst.Spec.Priority()),
					orDash(strings.Join(inst.Spec.DefaultAttributes(), ", ")),
				})
			}
			return f.PrintTable(headers, rows)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
