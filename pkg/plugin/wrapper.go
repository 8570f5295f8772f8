// pkg/plugin/wrapper.go
package plugin

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/report"
)

// ConfigWrapper binds a plugin's configuration section to its declared
// parameter specification and provides typed access to values. All
// section values are strings on the wire; getters convert on read.
type ConfigWrapper struct {
	sec  *config.Section
	spec *ParamSpec
}

// NewConfigWrapper wraps a section with its specification.
func NewConfigWrapper(sec *config.Section, spec *ParamSpec) *ConfigWrapper {
	return &ConfigWrapper{sec: sec, spec: spec}
}

// Section returns the wrapped section.
func (w *ConfigWrapper) Section() *config.Section { return w.sec }

// ApplyDefaults fills every absent default-classified parameter with its
// declared value, then fills absent priority keys from the spec's default
// priority and an absent attributes key from the spec's default tags.
// Values already present in the section always win.
func (w *ConfigWrapper) ApplyDefaults() {
	for _, key := range w.spec.DefaultKeys() {
		if !w.sec.Has(key) {
			v, _ := w.spec.DefaultValue(key)
			w.sec.Set(key, v)
		}
	}
	for _, key := range []string{KeyConfigurePriority, KeyExtractPriority, KeyRenderPriority} {
		if !w.sec.Has(key) {
			w.sec.Set(key, cast.ToString(w.spec.Priority()))
		}
	}
	if attrs := w.spec.DefaultAttributes(); len(attrs) > 0 && !w.sec.Has(KeyAttributes) {
		w.sec.Set(KeyAttributes, strings.Join(attrs, ","))
	}
}

// IsNull reports whether a parameter is absent or unresolved.
func (w *ConfigWrapper) IsNull(key string) bool { return w.sec.IsNull(key) }

// SetParam stores a parameter value.
func (w *ConfigWrapper) SetParam(key, value string) { w.sec.Set(key, value) }

// GetString returns a parameter as a string.
func (w *ConfigWrapper) GetString(key string) string { return w.sec.Get(key) }

// GetBool returns a parameter as a bool; unparseable values are false.
func (w *ConfigWrapper) GetBool(key string) bool {
	return cast.ToBool(w.sec.Get(key))
}

// GetInt returns a parameter as an int; unparseable values are zero.
func (w *ConfigWrapper) GetInt(key string) int {
	return cast.ToInt(w.sec.Get(key))
}

// GetFloat returns a parameter as a float64; unparseable values are zero.
func (w *ConfigWrapper) GetFloat(key string) float64 {
	return cast.ToFloat64(w.sec.Get(key))
}

// SetPriorities overwrites all three phase priorities with one value.
func (w *ConfigWrapper) SetPriorities(priority int) {
	v := cast.ToString(priority)
	w.sec.Set(KeyConfigurePriority, v)
	w.sec.Set(KeyExtractPriority, v)
	w.sec.Set(KeyRenderPriority, v)
}

// Priorities reads the per-phase priorities from the section.
func (w *ConfigWrapper) Priorities() report.Priorities {
	return report.Priorities{
		Configure: w.GetInt(KeyConfigurePriority),
		Extract:   w.GetInt(KeyExtractPriority),
		Render:    w.GetInt(KeyRenderPriority),
	}
}

// Attributes derives the plugin's attribute tags: the explicit
// comma-separated attributes key, plus the clinical and supplementary
// convenience booleans when set.
func (w *ConfigWrapper) Attributes() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if tag != "" && tag != config.NullValue && !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}

	if raw, ok := w.sec.Lookup(KeyAttributes); ok {
		for _, tag := range strings.Split(raw, ",") {
			add(strings.TrimSpace(tag))
		}
	}
	if w.GetBool(KeyClinical) {
		add(AttributeClinical)
	}
	if w.GetBool(KeySupplementary) {
		add(AttributeSupplementary)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// StartingData builds a PluginData skeleton carrying the plugin name,
// priorities and attributes echoed from the finalized section. Extract
// implementations fill in results and merge inputs.
func (w *ConfigWrapper) StartingData(identifier string) *report.PluginData {
	pd := report.NewPluginData(identifier + " plugin")
	pd.Priorities = w.Priorities()
	pd.Attributes = w.Attributes()
	return pd
}
