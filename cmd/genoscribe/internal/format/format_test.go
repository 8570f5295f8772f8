package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := New(&stdout, &stderr, ModeJSON, false, false)

	require.NoError(t, f.PrintJSON(map[string]string{"key": "value"}))
	assert.Contains(t, stdout.String(), `"key": "value"`)
}

func TestPrintTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := New(&stdout, &stderr, ModeTable, false, false)

	err := f.PrintTable(
		[]string{"identifier", "priority"},
		[][]string{{"demo1", "100"}, {"demo2", "200"}},
	)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "identifier")
	assert.Contains(t, out, "demo1")
	assert.Contains(t, out, "200")
}

func TestPrintTableJSONMode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := New(&stdout, &stderr, ModeJSON, false, false)

	err := f.PrintTable(
		[]string{"identifier"},
		[][]string{{"demo1"}},
	)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `"identifier": "demo1"`)
}

func TestPrintSummaryQuiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := New(&stdout, &stderr, ModeTable, true, false)

	require.NoError(t, f.PrintSummary("done"))
	assert.Empty(t, stdout.String())
}

func TestPrintErrorTableMode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := New(&stdout, &stderr, ModeTable, false, false)

	require.NoError(t, f.PrintError(errors.New("boom")))
	assert.Contains(t, stderr.String(), "Error: boom")
	assert.Empty(t, stdout.String())
}

func TestPrintFailureWithSuggestions(t *testing.T) {
	var stdout, stderr bytes.Buffer
	f := New(&stdout, &stderr, ModeTable, false, false)

	err := f.PrintFailure("configure", errors.New("missing parameter"), []string{
		"Supply the named parameter",
	})
	require.NoError(t, err)

	out := stderr.String()
	assert.Contains(t, out, "Failed to configure")
	assert.Contains(t, out, "Supply the named parameter")
}

func TestValidateMode(t *testing.T) {
	assert.NoError(t, ValidateMode("json"))
	assert.NoError(t, ValidateMode("table"))
	assert.Error(t, ValidateMode("xml"))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeJSON, ParseMode("JSON"))
	assert.Equal(t, ModeTable, ParseMode("table"))
	assert.Equal(t, ModeTable, ParseMode("anything"))
}
