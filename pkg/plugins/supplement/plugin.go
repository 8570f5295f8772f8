// pkg/plugins/supplement/plugin.go
// Package supplement renders the supplementary-materials section of the
// report: assay description, sign-off dates and the reporting
// geneticist.
package supplement

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/core"
	"github.com/genoscribe/genoscribe/pkg/plugin"
	"github.com/genoscribe/genoscribe/pkg/report"
)

// Identifier names this plugin's configuration section.
const Identifier = "supplement"

const (
	defaultPriority = 1200
	dateLayout      = "2006/01/02"

	// noneSpecified marks a date the user left to be filled at extract time.
	noneSpecified = "NONE_SPECIFIED"

	paramAssay       = "assay"
	paramDraftDate   = "user_supplied_draft_date"
	paramSignoffDate = "report_signoff_date"
	paramAuthor      = "author"
	paramFailed      = "failed"
	paramGeneticist  = "clinical_geneticist_name"
	paramLicence     = "clinical_geneticist_licence"

	inputParamsFile = "input_params.json"
)

// knownAssays are the assay names this plugin can describe.
var knownAssays = map[string]bool{
	"WGTS": true,
	"WGS":  true,
	"TAR":  true,
	"PWGS": true,
}

//go:embed templates/*.html
var templatesFS embed.FS

// Plugin implements the report plugin contract.
type Plugin struct {
	deps plugin.Deps
	spec *plugin.ParamSpec
	now  func() time.Time
}

// New constructs a supplement instance bound to its run deps.
func New(deps plugin.Deps) plugin.Plugin {
	return &Plugin{deps: deps, now: time.Now}
}

func init() {
	plugin.Register(Identifier, New)
}

// Specify declares the discovered assay and date parameters plus
// geneticist defaults.
func (p *Plugin) Specify(spec *plugin.ParamSpec) {
	spec.Discovered(paramAssay, paramDraftDate, paramSignoffDate, paramAuthor)
	spec.Default(paramGeneticist, "Trevor Pugh, PhD, FACMG")
	spec.Default(paramLicence, "1027812")
	spec.Default(paramFailed, "false")
	spec.SetAttributes(plugin.AttributeClinical)
	spec.SetPriority(defaultPriority)
	p.spec = spec
}

// Configure discovers the assay from the staged input parameters, the
// author from the resolved core section, and marks unset dates to be
// filled at extract time.
func (p *Plugin) Configure(cc *plugin.ConfigContext) (*config.Section, error) {
	w := plugin.NewConfigWrapper(cc.Section, p.spec)
	w.ApplyDefaults()

	if w.IsNull(paramAssay) {
		var staged struct {
			Assay string `json:"assay"`
		}
		if p.deps.Workspace.Has(inputParamsFile) {
			if err := p.deps.Workspace.ReadJSON(inputParamsFile, &staged); err != nil {
				return nil, err
			}
			w.SetParam(paramAssay, staged.Assay)
		} else {
			p.deps.Logger.Info().Msg("no staged input parameters; assay must be set manually")
		}
	}
	if !w.IsNull(paramAssay) {
		if err := checkAssayName(w.GetString(paramAssay)); err != nil {
			return nil, err
		}
	}

	if w.IsNull(paramDraftDate) {
		w.SetParam(paramDraftDate, noneSpecified)
	}
	if w.IsNull(paramSignoffDate) {
		w.SetParam(paramSignoffDate, noneSpecified)
	}
	if w.IsNull(paramAuthor) {
		if author, ok := cc.CoreValue(core.KeyAuthor); ok {
			w.SetParam(paramAuthor, author)
		}
	}
	return w.Section(), nil
}

// Extract resolves the dates and assembles the supplementary results.
func (p *Plugin) Extract(sec *config.Section) (*report.PluginData, error) {
	w := plugin.NewConfigWrapper(sec, p.spec)
	if err := checkAssayName(w.GetString(paramAssay)); err != nil {
		return nil, err
	}

	today := p.now().Format(dateLayout)
	draftDate := w.GetString(paramDraftDate)
	if draftDate == noneSpecified {
		draftDate = today
	}
	signoffDate := w.GetString(paramSignoffDate)
	if signoffDate == noneSpecified {
		signoffDate = today
	}

	pd := w.StartingData(Identifier)
	pd.Results = map[string]any{
		"assay":                       w.GetString(paramAssay),
		"failed":                      w.GetBool(paramFailed),
		"author":                      w.GetString(paramAuthor),
		"extract_time":                draftDate,
		"report_signoff_date":         signoffDate,
		"clinical_geneticist_name":    w.GetString(paramGeneticist),
		"clinical_geneticist_licence": w.GetString(paramLicence),
	}
	return pd, nil
}

// Render fills the supplementary-materials template after a final schema
// guard.
func (p *Plugin) Render(pd *report.PluginData) (string, error) {
	if err := p.deps.Validator.Validate(pd); err != nil {
		return "", err
	}
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return "", fmt.Errorf("parse supplement template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "supplementary_materials.html", pd.Results); err != nil {
		return "", fmt.Errorf("render supplement fragment: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

func checkAssayName(name string) error {
	if !knownAssays[name] {
		return fmt.Errorf("unknown assay %q", name)
	}
	return nil
}
