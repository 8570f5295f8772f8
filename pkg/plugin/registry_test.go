package plugin

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/report"
	"github.com/genoscribe/genoscribe/pkg/workspace"
)

// stubPlugin records how often each lifecycle hook ran.
type stubPlugin struct {
	deps          Deps
	specifyCalls  int
	lastSpecified *ParamSpec
}

func (p *stubPlugin) Specify(spec *ParamSpec) {
	p.specifyCalls++
	p.lastSpecified = spec
	spec.Required("input")
	spec.SetPriority(300)
}

func (p *stubPlugin) Configure(cc *ConfigContext) (*config.Section, error) {
	return cc.Section, nil
}

func (p *stubPlugin) Extract(sec *config.Section) (*report.PluginData, error) {
	return NewConfigWrapper(sec, p.lastSpecified).StartingData("stub"), nil
}

func (p *stubPlugin) Render(pd *report.PluginData) (string, error) {
	return "<section></section>", nil
}

func init() {
	Register("registry-test-stub", func(deps Deps) Plugin {
		return &stubPlugin{deps: deps}
	})
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	ws, err := workspace.Prepare(t.TempDir())
	require.NoError(t, err)
	validator, err := NewValidator()
	require.NoError(t, err)
	return NewLoader(ws, validator, zerolog.Nop())
}

func TestRegisteredIsSorted(t *testing.T) {
	ids := Registered()
	require.NotEmpty(t, ids)
	for i := 1; i < len(ids); i++ {
		assert.LessOrEqual(t, ids[i-1], ids[i])
	}
	assert.Contains(t, ids, "registry-test-stub")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("registry-test-stub", func(deps Deps) Plugin { return &stubPlugin{} })
	})
}

func TestLoadUnknownIdentifier(t *testing.T) {
	loader := newTestLoader(t)
	_, err := loader.Load("no-such-plugin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no plugin registered")
}

func TestLoadCachesInstance(t *testing.T) {
	loader := newTestLoader(t)

	first, err := loader.Load("registry-test-stub")
	require.NoError(t, err)
	second, err := loader.Load("registry-test-stub")
	require.NoError(t, err)

	// One identifier resolves to exactly one instance per run.
	assert.Same(t, first, second)
	assert.Same(t, first.Plugin, second.Plugin)

	// Specify ran exactly once, at construction.
	stub := first.Plugin.(*stubPlugin)
	assert.Equal(t, 1, stub.specifyCalls)
	assert.Equal(t, []string{"input"}, first.Spec.RequiredKeys())
	assert.Equal(t, 300, first.Spec.Priority())
}

func TestLoadBindsWorkspaceScope(t *testing.T) {
	loader := newTestLoader(t)

	inst, err := loader.Load("registry-test-stub")
	require.NoError(t, err)

	stub := inst.Plugin.(*stubPlugin)
	require.NotNil(t, stub.deps.Workspace)
	assert.Equal(t, "registry-test-stub", stub.deps.Workspace.Identifier())
	require.NotNil(t, stub.deps.Validator)
}

func TestSeparateLoadersSeparateInstances(t *testing.T) {
	first, err := newTestLoader(t).Load("registry-test-stub")
	require.NoError(t, err)
	second, err := newTestLoader(t).Load("registry-test-stub")
	require.NoError(t, err)

	assert.NotSame(t, first.Plugin, second.Plugin)
}
