// pkg/plugins/demo1/plugin.go
// Package demo1 is a minimal report plugin used for demonstration and
// end-to-end testing of the pipeline.
package demo1

import (
	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/plugin"
	"github.com/genoscribe/genoscribe/pkg/report"
)

// Identifier names this plugin's configuration section and its entry in
// the aggregated report data.
const Identifier = "demo1"

const (
	defaultPriority  = 100
	questionFileName = "question.txt"
	questionText     = "What do you get if you multiply six by nine?"
)

// Plugin implements the report plugin contract.
type Plugin struct {
	deps plugin.Deps
	spec *plugin.ParamSpec
}

// New constructs a demo1 instance bound to its run deps.
func New(deps plugin.Deps) plugin.Plugin {
	return &Plugin{deps: deps}
}

func init() {
	plugin.Register(Identifier, New)
}

// Specify declares one required question parameter plus attribute and
// file defaults.
func (p *Plugin) Specify(spec *plugin.ParamSpec) {
	spec.Required("question")
	spec.Default(plugin.KeyClinical, "true")
	spec.Default(plugin.KeySupplementary, "false")
	spec.Default("dummy_file", config.NullValue)
	spec.SetPriority(defaultPriority)
	p.spec = spec
}

// Configure applies defaults and pins all phase priorities.
func (p *Plugin) Configure(cc *plugin.ConfigContext) (*config.Section, error) {
	w := plugin.NewConfigWrapper(cc.Section, p.spec)
	w.ApplyDefaults()
	w.SetPriorities(defaultPriority)
	return w.Section(), nil
}

// Extract contributes two gene annotation rows to the shared gene table
// and stages the question text as a workspace artifact.
func (p *Plugin) Extract(sec *config.Section) (*report.PluginData, error) {
	w := plugin.NewConfigWrapper(sec, p.spec)
	pd := w.StartingData(Identifier)
	pd.MergeInputs[report.GeneInformationMerger] = []map[string]any{
		{
			"Gene":       "KRAS",
			"Gene_URL":   "https://www.oncokb.org/gene/KRAS",
			"Chromosome": "12p12.1",
			"Summary":    "KRAS, a GTPase which functions as an upstream regulator of the MAPK and PI3K pathways, is frequently mutated in various cancer types including pancreatic, colorectal and lung cancers.",
		},
		{
			"Gene":       "PIK3CA",
			"Gene_URL":   "https://www.oncokb.org/gene/PIK3CA",
			"Chromosome": "3q26.32",
			"Summary":    "PIK3CA, the catalytic subunit of PI3-kinase, is frequently mutated in a diverse range of cancers including breast, endometrial and cervical cancers.",
		},
	}

	if err := p.deps.Workspace.WriteString(questionFileName, questionText); err != nil {
		return nil, err
	}
	return pd, nil
}

// Render emits the plugin's document fragment after a final schema guard.
func (p *Plugin) Render(pd *report.PluginData) (string, error) {
	if err := p.deps.Validator.Validate(pd); err != nil {
		return "", err
	}
	return "<section class=\"demo1\"><h3>Demonstration plugin 1</h3></section>", nil
}
