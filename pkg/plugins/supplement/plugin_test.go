package supplement

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/core"
	"github.com/genoscribe/genoscribe/pkg/plugin"
	"github.com/genoscribe/genoscribe/pkg/workspace"
)

func newTestInstance(t *testing.T) (*Plugin, *plugin.ParamSpec, *workspace.Scope) {
	t.Helper()
	ws, err := workspace.Prepare(t.TempDir())
	require.NoError(t, err)
	scope, err := ws.Scope(Identifier)
	require.NoError(t, err)
	validator, err := plugin.NewValidator()
	require.NoError(t, err)

	p := New(plugin.Deps{Workspace: scope, Logger: zerolog.Nop(), Validator: validator}).(*Plugin)
	spec := plugin.NewParamSpec()
	p.Specify(spec)
	return p, spec, scope
}

func resolvedCore(author string) *config.Document {
	doc := config.NewDocument()
	sec := config.NewSection(config.CoreSection)
	sec.Set(core.KeyAuthor, author)
	doc.SetSection(sec)
	return doc
}

func TestConfigureDiscoversAssayFromWorkspace(t *testing.T) {
	p, spec, scope := newTestInstance(t)
	require.NoError(t, scope.WriteJSON("input_params.json", map[string]string{"assay": "WGTS"}))

	out, err := p.Configure(&plugin.ConfigContext{
		Section:  config.NewSection(Identifier),
		Resolved: resolvedCore("Core Author"),
	})
	require.NoError(t, err)

	assert.Equal(t, "WGTS", out.Get("assay"))
	assert.Equal(t, "NONE_SPECIFIED", out.Get("user_supplied_draft_date"))
	assert.Equal(t, "NONE_SPECIFIED", out.Get("report_signoff_date"))
	assert.Equal(t, "Core Author", out.Get("author"))
	assert.Empty(t, spec.Unresolved(out))
}

func TestConfigureWithoutStagedParamsLeavesAssayNull(t *testing.T) {
	p, spec, _ := newTestInstance(t)

	out, err := p.Configure(&plugin.ConfigContext{
		Section:  config.NewSection(Identifier),
		Resolved: resolvedCore("Core Author"),
	})
	require.NoError(t, err)
	assert.Contains(t, spec.Unresolved(out), "assay")
}

func TestConfigureRejectsUnknownAssay(t *testing.T) {
	p, _, _ := newTestInstance(t)
	sec := config.NewSection(Identifier)
	sec.Set("assay", "BOGUS")

	_, err := p.Configure(&plugin.ConfigContext{
		Section:  sec,
		Resolved: resolvedCore("Core Author"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assay")
}

func TestExtractResolvesDates(t *testing.T) {
	p, _, _ := newTestInstance(t)
	p.now = func() time.Time {
		return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	}

	sec := config.NewSection(Identifier)
	sec.Set("assay", "PWGS")
	sec.Set("author", "Core Author")
	configured, err := p.Configure(&plugin.ConfigContext{
		Section:  sec,
		Resolved: resolvedCore("Core Author"),
	})
	require.NoError(t, err)

	pd, err := p.Extract(configured)
	require.NoError(t, err)

	assert.Equal(t, "supplement plugin", pd.PluginName)
	assert.Equal(t, []string{"clinical"}, pd.Attributes)
	assert.Equal(t, "2026/08/26", pd.Results["extract_time"])
	assert.Equal(t, "2026/08/26", pd.Results["report_signoff_date"])
	assert.Equal(t, "Trevor Pugh, PhD, FACMG", pd.Results["clinical_geneticist_name"])
	assert.Equal(t, false, pd.Results["failed"])
}

func TestExtractKeepsExplicitDates(t *testing.T) {
	p, _, _ := newTestInstance(t)
	sec := config.NewSection(Identifier)
	sec.Set("assay", "WGS")
	sec.Set("author", "Core Author")
	sec.Set("user_supplied_draft_date", "2026/01/15")
	configured, err := p.Configure(&plugin.ConfigContext{
		Section:  sec,
		Resolved: resolvedCore("Core Author"),
	})
	require.NoError(t, err)

	pd, err := p.Extract(configured)
	require.NoError(t, err)
	assert.Equal(t, "2026/01/15", pd.Results["extract_time"])
}

func TestRenderFillsTemplate(t *testing.T) {
	p, _, _ := newTestInstance(t)
	sec := config.NewSection(Identifier)
	sec.Set("assay", "TAR")
	sec.Set("author", "Core Author")
	configured, err := p.Configure(&plugin.ConfigContext{
		Section:  sec,
		Resolved: resolvedCore("Core Author"),
	})
	require.NoError(t, err)
	pd, err := p.Extract(configured)
	require.NoError(t, err)

	fragment, err := p.Render(pd)
	require.NoError(t, err)
	assert.Contains(t, fragment, "Supplementary Materials")
	assert.Contains(t, fragment, "TAR")
	assert.Contains(t, fragment, "Core Author")
	assert.Contains(t, fragment, "Trevor Pugh, PhD, FACMG")
}
