// pkg/report/data.go
// Package report defines the aggregated report data model produced by the
// extract phase and consumed by the render phase.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Priorities holds the per-phase ordering weights a plugin attaches to
// its contributed elements. Lower values rank earlier.
type Priorities struct {
	Configure int `json:"configure"`
	Extract   int `json:"extract"`
	Render    int `json:"render"`
}

// PluginData is one plugin's validated contribution to the report.
// This struct is both the in-memory contract and the literal JSON shape
// written to disk.
type PluginData struct {
	PluginName  string                      `json:"plugin_name"`
	Priorities  Priorities                  `json:"priorities"`
	Attributes  []string                    `json:"attributes"`
	MergeInputs map[string][]map[string]any `json:"merge_inputs"`
	Results     map[string]any              `json:"results"`
}

// NewPluginData returns a PluginData with all collections initialized, so
// the wire form never contains JSON null where the schema expects an
// array or object.
func NewPluginData(pluginName string) *PluginData {
	return &PluginData{
		PluginName:  pluginName,
		Attributes:  []string{},
		MergeInputs: map[string][]map[string]any{},
		Results:     map[string]any{},
	}
}

// PluginMap is an insertion-ordered map of plugin identifier to
// PluginData. Order equals the configuration section order and carries
// through to rendering.
type PluginMap struct {
	names []string
	data  map[string]*PluginData
}

// NewPluginMap returns an empty ordered map.
func NewPluginMap() *PluginMap {
	return &PluginMap{data: make(map[string]*PluginData)}
}

// Set stores plugin data under an identifier. First insertion fixes the
// identifier's position; replacement keeps it.
func (m *PluginMap) Set(identifier string, pd *PluginData) {
	if _, ok := m.data[identifier]; !ok {
		m.names = append(m.names, identifier)
	}
	m.data[identifier] = pd
}

// Get returns the data stored under identifier.
func (m *PluginMap) Get(identifier string) (*PluginData, bool) {
	pd, ok := m.data[identifier]
	return pd, ok
}

// Names returns the identifiers in insertion order.
func (m *PluginMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of entries.
func (m *PluginMap) Len() int { return len(m.names) }

// MarshalJSON emits the entries as a JSON object in insertion order.
func (m *PluginMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.data[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, recording key order as it appears in
// the document.
func (m *PluginMap) UnmarshalJSON(b []byte) error {
	m.names = nil
	m.data = make(map[string]*PluginData)

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("plugins: expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("plugins: expected string key, got %v", keyTok)
		}
		var pd PluginData
		if err := dec.Decode(&pd); err != nil {
			return fmt.Errorf("plugins: decode entry %q: %w", key, err)
		}
		m.Set(key, &pd)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Data is the aggregated report: core-level fields plus per-plugin data.
// It grows monotonically during extract and is read-only input to render.
type Data struct {
	ReportID        string     `json:"report_id"`
	Author          string     `json:"author"`
	DocumentVersion string     `json:"document_version"`
	ExtractTime     string     `json:"extract_time"`
	CoreVersion     string     `json:"core_version"`
	Plugins         *PluginMap `json:"plugins"`
}

// New returns report data with an empty plugins map.
func New() *Data {
	return &Data{Plugins: NewPluginMap()}
}

// Save writes the report data as indented JSON.
func (d *Data) Save(path string) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report data: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write report data %q: %w", path, err)
	}
	return nil
}

// LoadFile reads report data previously written by Save.
func LoadFile(path string) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report data %q: %w", path, err)
	}
	d := New()
	if err := json.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("decode report data %q: %w", path, err)
	}
	// A JSON null bypasses PluginMap's UnmarshalJSON and nils the pointer,
	// which render would dereference.
	if d.Plugins == nil {
		return nil, fmt.Errorf("decode report data %q: plugins map is null", path)
	}
	return d, nil
}
