// cmd/genoscribe/commands/config.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/engine"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Inspect configuration documents",
		GroupID: "core",
	}
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSettingsCommand())
	return cmd
}

// newConfigSettingsCommand dumps the effective application settings after
// all sources (defaults, file, environment, flags) have been merged.
func newConfigSettingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the effective application settings as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(rt.Settings.AsMap())
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// newConfigShowCommand prints a document as YAML with sections in
// document order, which is easier to eyeball than raw INI.
func newConfigShowCommand() *cobra.Command {
	var iniPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a configuration document as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.Load(iniPath)
			if err != nil {
				return engine.WrapConfigSourceError(err)
			}

			root := &yaml.Node{Kind: yaml.MappingNode}
			for _, name := range doc.SectionNames() {
				sec, _ := doc.Section(name)
				secNode := &yaml.Node{Kind: yaml.MappingNode}
				for _, key := range sec.Keys() {
					secNode.Content = append(secNode.Content,
						&yaml.Node{Kind: yaml.ScalarNode, Value: key},
						&yaml.Node{Kind: yaml.ScalarNode, Value: sec.Get(key)},
					)
				}
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: name},
					secNode,
				)
			}

			out, err := yaml.Marshal(root)
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&iniPath, "ini", "i", "", "Configuration document (INI)")
	_ = cmd.MarkFlagRequired("ini")

	return cmd
}
