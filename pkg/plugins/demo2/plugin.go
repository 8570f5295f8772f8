// pkg/plugins/demo2/plugin.go
// Package demo2 is a second demonstration plugin. It overlaps with demo1
// on the shared gene table, exercising cross-plugin merging downstream.
package demo2

import (
	"fmt"
	"html/template"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/plugin"
	"github.com/genoscribe/genoscribe/pkg/report"
)

// Identifier names this plugin's configuration section.
const Identifier = "demo2"

const defaultPriority = 200

// Plugin implements the report plugin contract.
type Plugin struct {
	deps plugin.Deps
	spec *plugin.ParamSpec
}

// New constructs a demo2 instance bound to its run deps.
func New(deps plugin.Deps) plugin.Plugin {
	return &Plugin{deps: deps}
}

func init() {
	plugin.Register(Identifier, New)
}

// Specify declares a required salutation, a discovered answer and
// attribute defaults.
func (p *Plugin) Specify(spec *plugin.ParamSpec) {
	spec.Required("salutation")
	spec.Discovered("answer")
	spec.Default(plugin.KeyClinical, "false")
	spec.Default(plugin.KeySupplementary, "true")
	spec.SetPriority(defaultPriority)
	p.spec = spec
}

// Configure fills defaults and discovers the answer parameter.
func (p *Plugin) Configure(cc *plugin.ConfigContext) (*config.Section, error) {
	w := plugin.NewConfigWrapper(cc.Section, p.spec)
	w.ApplyDefaults()
	w.SetPriorities(defaultPriority)
	if w.IsNull("answer") {
		w.SetParam("answer", "42")
	}
	return w.Section(), nil
}

// Extract echoes its parameters into results and contributes a duplicate
// PIK3CA row plus TP53 to the shared gene table.
func (p *Plugin) Extract(sec *config.Section) (*report.PluginData, error) {
	w := plugin.NewConfigWrapper(sec, p.spec)
	pd := w.StartingData(Identifier)
	pd.Results = map[string]any{
		"salutation": w.GetString("salutation"),
		"answer":     w.GetInt("answer"),
	}
	pd.MergeInputs[report.GeneInformationMerger] = []map[string]any{
		{
			"Gene":       "PIK3CA",
			"Gene_URL":   "https://www.oncokb.org/gene/PIK3CA",
			"Chromosome": "3q26.32",
			"Summary":    "PIK3CA, the catalytic subunit of PI3-kinase, is frequently mutated in a diverse range of cancers including breast, endometrial and cervical cancers.",
		},
		{
			"Gene":       "TP53",
			"Gene_URL":   "https://www.oncokb.org/gene/TP53",
			"Chromosome": "17p13.1",
			"Summary":    "TP53, a tumor suppressor which regulates cell cycle arrest and apoptosis, is the most frequently mutated gene across human cancers.",
		},
	}
	return pd, nil
}

// Render emits the plugin's document fragment after a final schema guard.
func (p *Plugin) Render(pd *report.PluginData) (string, error) {
	if err := p.deps.Validator.Validate(pd); err != nil {
		return "", err
	}
	salutation, _ := pd.Results["salutation"].(string)
	return fmt.Sprintf(
		"<section class=\"demo2\"><h3>Demonstration plugin 2</h3><p>%s</p></section>",
		template.HTMLEscapeString(salutation),
	), nil
}
