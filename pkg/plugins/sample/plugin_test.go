package sample

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genoscribe/genoscribe/pkg/config"
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

func TestConfigureDiscoversStagedCountFile(t *testing.T) {
	p, spec, scope := newTestInstance(t)
	require.NoError(t, scope.WriteString("TUMOUR01.SNP.count.txt", "4021\n"))

	sec := config.NewSection(Identifier)
	sec.Set("tumour_id", "TUMOUR01")
	out, err := p.Configure(&plugin.ConfigContext{Section: sec, Resolved: config.NewDocument()})
	require.NoError(t, err)

	assert.Equal(t, scope.Path("TUMOUR01.SNP.count.txt"), out.Get("snv_count_file"))
	assert.Empty(t, spec.Unresolved(out))
}

func TestConfigureDiscoversTumourIDFromCore(t *testing.T) {
	p, spec, scope := newTestInstance(t)
	require.NoError(t, scope.WriteString("TUMOUR01.SNP.count.txt", "4021\n"))

	resolved := config.NewDocument()
	coreSec := config.NewSection(config.CoreSection)
	coreSec.Set("tumour_id", "TUMOUR01")
	resolved.SetSection(coreSec)

	// The sample section itself carries no tumour_id.
	out, err := p.Configure(&plugin.ConfigContext{
		Section:  config.NewSection(Identifier),
		Resolved: resolved,
	})
	require.NoError(t, err)

	assert.Equal(t, "TUMOUR01", out.Get("tumour_id"))
	assert.Equal(t, scope.Path("TUMOUR01.SNP.count.txt"), out.Get("snv_count_file"))
	assert.Empty(t, spec.Unresolved(out))
}

func TestConfigureWithoutTumourIDLeavesParamNull(t *testing.T) {
	p, spec, _ := newTestInstance(t)

	out, err := p.Configure(&plugin.ConfigContext{
		Section:  config.NewSection(Identifier),
		Resolved: config.NewDocument(),
	})
	require.NoError(t, err)

	assert.Contains(t, spec.Unresolved(out), "tumour_id")
}

func TestConfigureWithoutStagedFileLeavesParamNull(t *testing.T) {
	p, spec, _ := newTestInstance(t)

	sec := config.NewSection(Identifier)
	sec.Set("tumour_id", "TUMOUR01")
	out, err := p.Configure(&plugin.ConfigContext{Section: sec, Resolved: config.NewDocument()})
	require.NoError(t, err)

	assert.Contains(t, spec.Unresolved(out), "snv_count_file")
}

func TestExtractCountsOnly(t *testing.T) {
	p, _, scope := newTestInstance(t)
	require.NoError(t, scope.WriteString("TUMOUR01.SNP.count.txt", "4021\n"))

	sec := config.NewSection(Identifier)
	sec.Set("tumour_id", "TUMOUR01")
	configured, err := p.Configure(&plugin.ConfigContext{Section: sec, Resolved: config.NewDocument()})
	require.NoError(t, err)

	pd, err := p.Extract(configured)
	require.NoError(t, err)

	assert.Equal(t, "sample plugin", pd.PluginName)
	assert.Equal(t, []string{"clinical"}, pd.Attributes)
	assert.Equal(t, 4021, pd.Results["primary_snv_count"])
	_, hasMedian := pd.Results["median_insert_size"]
	assert.False(t, hasMedian)
}

func TestExtractWithBamQC(t *testing.T) {
	p, _, scope := newTestInstance(t)
	require.NoError(t, scope.WriteString("TUMOUR01.SNP.count.txt", "4021\n"))
	require.NoError(t, scope.WriteJSON("bamqc.json", map[string]any{
		"insert size histogram": map[string]int{
			"100": 1,
			"200": 3,
			"300": 1,
		},
	}))

	sec := config.NewSection(Identifier)
	sec.Set("tumour_id", "TUMOUR01")
	sec.Set("bamqc_file", scope.Path("bamqc.json"))
	configured, err := p.Configure(&plugin.ConfigContext{Section: sec, Resolved: config.NewDocument()})
	require.NoError(t, err)

	pd, err := p.Extract(configured)
	require.NoError(t, err)

	assert.Equal(t, 200, pd.Results["median_insert_size"])
	assert.True(t, scope.Has("insert_size_distribution.csv"))

	csv, err := scope.ReadString("insert_size_distribution.csv")
	require.NoError(t, err)
	assert.Equal(t, "size,count\n100,1\n200,3\n300,1\n", csv)
}

func TestExtractMissingCountFile(t *testing.T) {
	p, _, _ := newTestInstance(t)
	sec := config.NewSection(Identifier)
	sec.Set("tumour_id", "TUMOUR01")
	sec.Set("snv_count_file", filepath.Join(t.TempDir(), "nope.txt"))

	_, err := p.Extract(sec)
	require.Error(t, err)
}

func TestMedianFromHistogram(t *testing.T) {
	cases := []struct {
		name      string
		histogram map[int]int
		want      int
	}{
		{"odd total", map[int]int{100: 1, 200: 1, 300: 1}, 200},
		{"even total takes lower middle", map[int]int{100: 1, 200: 1}, 100},
		{"weighted", map[int]int{100: 5, 500: 1}, 100},
		{"single bin", map[int]int{250: 10}, 250},
		{"empty", map[int]int{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, medianFromHistogram(tc.histogram))
		})
	}
}

func TestReadSNVCountLastRow(t *testing.T) {
	_, _, scope := newTestInstance(t)
	require.NoError(t, scope.WriteString("counts.txt", "chr1\t12\nchr2\t30\n77\t99\n"))

	count, err := readSNVCount(scope.Path("counts.txt"))
	require.NoError(t, err)
	assert.Equal(t, 77, count)
}
