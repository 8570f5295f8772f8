package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Version:")
	assert.Contains(t, out.String(), "Go version:")
}

func TestConfigureRequiresFlags(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"configure", "--workspace-dir", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestConfigSettingsDumpsEffectiveSettings(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "settings", "--workspace-dir", t.TempDir(), "--log.level", "info"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "level: info")
	assert.Contains(t, out.String(), "author: CGI Reporting Lab")
}

func TestPluginsCommandListsBuiltins(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"plugins", "--workspace-dir", t.TempDir()})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "IDENTIFIER")
}
