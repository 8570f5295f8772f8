package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPluginDataInitializesCollections(t *testing.T) {
	pd := NewPluginData("demo1 plugin")

	assert.Equal(t, "demo1 plugin", pd.PluginName)
	assert.NotNil(t, pd.Attributes)
	assert.NotNil(t, pd.MergeInputs)
	assert.NotNil(t, pd.Results)

	// The wire form must carry empty collections, never null.
	b, err := json.Marshal(pd)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"attributes":[]`)
	assert.Contains(t, string(b), `"merge_inputs":{}`)
	assert.Contains(t, string(b), `"results":{}`)
}

func TestPluginMapPreservesInsertionOrder(t *testing.T) {
	m := NewPluginMap()
	m.Set("zeta", NewPluginData("zeta plugin"))
	m.Set("alpha", NewPluginData("alpha plugin"))
	m.Set("mid", NewPluginData("mid plugin"))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Names())

	// Replacement keeps the original position.
	m.Set("alpha", NewPluginData("alpha plugin v2"))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Names())
	pd, ok := m.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha plugin v2", pd.PluginName)
}

func TestPluginMapJSONRoundTripKeepsOrder(t *testing.T) {
	m := NewPluginMap()
	m.Set("zeta", NewPluginData("zeta plugin"))
	m.Set("alpha", NewPluginData("alpha plugin"))

	b, err := json.Marshal(m)
	require.NoError(t, err)

	// Marshaled object lists zeta before alpha.
	assert.Less(t,
		strings.Index(string(b), `"zeta"`),
		strings.Index(string(b), `"alpha"`),
	)

	var back PluginMap
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, []string{"zeta", "alpha"}, back.Names())
}

func TestPluginMapUnmarshalRejectsNonObject(t *testing.T) {
	var m PluginMap
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &m))
}

func TestDataSaveLoadRoundTrip(t *testing.T) {
	d := New()
	d.ReportID = "GS-ABCD1234"
	d.Author = "Test Author"
	d.DocumentVersion = "1"
	d.ExtractTime = "2026-08-26T00:00:00Z"
	d.CoreVersion = "dev"
	d.Plugins.Set("demo2", NewPluginData("demo2 plugin"))
	d.Plugins.Set("demo1", NewPluginData("demo1 plugin"))

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, d.Save(path))

	back, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, d.ReportID, back.ReportID)
	assert.Equal(t, d.Author, back.Author)
	assert.Equal(t, []string{"demo2", "demo1"}, back.Plugins.Names())
}

func TestLoadFileRejectsNullPluginsMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"report_id":"GS-1","plugins":null}`), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugins map is null")
}

func TestLoadFileMissingPluginsKeyKeepsEmptyMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"report_id":"GS-1"}`), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Zero(t, d.Plugins.Len())
}
