package demo2

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/plugin"
	"github.com/genoscribe/genoscribe/pkg/report"
	"github.com/genoscribe/genoscribe/pkg/workspace"
)

func newTestInstance(t *testing.T) (plugin.Plugin, *plugin.ParamSpec) {
	t.Helper()
	ws, err := workspace.Prepare(t.TempDir())
	require.NoError(t, err)
	scope, err := ws.Scope(Identifier)
	require.NoError(t, err)
	validator, err := plugin.NewValidator()
	require.NoError(t, err)

	p := New(plugin.Deps{Workspace: scope, Logger: zerolog.Nop(), Validator: validator})
	spec := plugin.NewParamSpec()
	p.Specify(spec)
	return p, spec
}

func TestConfigureDiscoversAnswer(t *testing.T) {
	p, spec := newTestInstance(t)
	sec := config.NewSection(Identifier)
	sec.Set("salutation", "So long and thanks for all the fish")

	out, err := p.Configure(&plugin.ConfigContext{Section: sec, Resolved: config.NewDocument()})
	require.NoError(t, err)

	assert.Equal(t, "42", out.Get("answer"))
	assert.Empty(t, spec.Unresolved(out))
}

func TestConfigureKeepsSuppliedAnswer(t *testing.T) {
	p, _ := newTestInstance(t)
	sec := config.NewSection(Identifier)
	sec.Set("salutation", "hello")
	sec.Set("answer", "54")

	out, err := p.Configure(&plugin.ConfigContext{Section: sec, Resolved: config.NewDocument()})
	require.NoError(t, err)
	assert.Equal(t, "54", out.Get("answer"))
}

func TestExtractOverlapsWithSharedGeneTable(t *testing.T) {
	p, _ := newTestInstance(t)
	sec := config.NewSection(Identifier)
	sec.Set("salutation", "hello")
	configured, err := p.Configure(&plugin.ConfigContext{Section: sec, Resolved: config.NewDocument()})
	require.NoError(t, err)

	pd, err := p.Extract(configured)
	require.NoError(t, err)

	assert.Equal(t, "demo2 plugin", pd.PluginName)
	assert.Equal(t, []string{"supplementary"}, pd.Attributes)
	assert.Equal(t, 42, pd.Results["answer"])

	records := pd.MergeInputs[report.GeneInformationMerger]
	require.Len(t, records, 2)
	assert.Equal(t, "PIK3CA", records[0]["Gene"])
	assert.Equal(t, "TP53", records[1]["Gene"])
}

func TestRenderEscapesSalutation(t *testing.T) {
	p, _ := newTestInstance(t)
	sec := config.NewSection(Identifier)
	sec.Set("salutation", "<b>hi</b>")
	configured, err := p.Configure(&plugin.ConfigContext{Section: sec, Resolved: config.NewDocument()})
	require.NoError(t, err)
	pd, err := p.Extract(configured)
	require.NoError(t, err)

	fragment, err := p.Render(pd)
	require.NoError(t, err)
	assert.Contains(t, fragment, "class=\"demo2\"")
	assert.NotContains(t, fragment, "<b>hi</b>")
}
