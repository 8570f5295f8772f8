// pkg/plugin/contract.go
// Package plugin defines the contract every report plugin implements, the
// declarative parameter specification enforced around the configure phase,
// and the registry that resolves plugin identifiers to live instances.
package plugin

import (
	"github.com/rs/zerolog"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/report"
	"github.com/genoscribe/genoscribe/pkg/workspace"
)

// Reserved keys every plugin section may carry in addition to its own
// declared parameters.
const (
	KeyAttributes        = "attributes"
	KeyClinical          = "clinical"
	KeySupplementary     = "supplementary"
	KeyConfigurePriority = "configure_priority"
	KeyExtractPriority   = "extract_priority"
	KeyRenderPriority    = "render_priority"
)

// Attribute tags understood by downstream report consumers.
const (
	AttributeClinical      = "clinical"
	AttributeSupplementary = "supplementary"
)

// Deps carries the run-scoped collaborators a plugin instance is bound to
// at construction: its namespaced slice of the shared workspace, a
// diagnostics sink, and the shared plugin-data validator.
type Deps struct {
	Workspace *workspace.Scope
	Logger    zerolog.Logger
	Validator *Validator
}

// ConfigContext is the input to a plugin's Configure call: the plugin's
// own section (already a private copy) plus a read-only view of the
// sections resolved earlier in this configure pass. The core section is
// resolved first when present, whatever its document position, then the
// plugin sections in document order.
type ConfigContext struct {
	Section  *config.Section
	Resolved *config.Document
}

// CoreValue looks up a key in the already-resolved core section.
func (cc *ConfigContext) CoreValue(key string) (string, bool) {
	if cc.Resolved == nil {
		return "", false
	}
	core, ok := cc.Resolved.Section(config.CoreSection)
	if !ok {
		return "", false
	}
	return core.Lookup(key)
}

// Plugin is the capability set every report plugin implements.
//
// Specify is metadata only: it declares parameters, the default priority
// and default attribute tags, and is invoked exactly once when the
// instance is constructed. Configure returns the finalized section for
// the extract phase; after it returns, the orchestrator checks that every
// required and discovered parameter is non-null. Extract computes the
// plugin's report contribution from its finalized section and workspace
// artifacts only. Render turns the plugin's validated data into one
// document fragment and re-checks the schema as a final guard.
type Plugin interface {
	Specify(spec *ParamSpec)
	Configure(cc *ConfigContext) (*config.Section, error)
	Extract(sec *config.Section) (*report.PluginData, error)
	Render(pd *report.PluginData) (string, error)
}

// ParamSpec is a plugin's declared parameter set: required parameters
// must be supplied externally, discovered parameters may be filled in
// during configure, and default parameters fall back to a literal value
// when absent.
type ParamSpec struct {
	required     []string
	discovered   []string
	defaultOrder []string
	defaults     map[string]string
	priority     int
	attributes   []string
}

// NewParamSpec returns an empty specification.
func NewParamSpec() *ParamSpec {
	return &ParamSpec{defaults: make(map[string]string)}
}

// Required declares parameters that must be present and non-null in the
// input configuration.
func (s *ParamSpec) Required(keys ...string) {
	s.required = append(s.required, keys...)
}

// Discovered declares parameters a plugin may compute during configure.
func (s *ParamSpec) Discovered(keys ...string) {
	s.discovered = append(s.discovered, keys...)
}

// Default declares a parameter with a literal fallback value.
func (s *ParamSpec) Default(key, value string) {
	if _, ok := s.defaults[key]; !ok {
		s.defaultOrder = append(s.defaultOrder, key)
	}
	s.defaults[key] = value
}

// SetPriority registers the plugin's default priority for all phases.
func (s *ParamSpec) SetPriority(priority int) {
	s.priority = priority
}

// SetAttributes registers the plugin's default attribute tags.
func (s *ParamSpec) SetAttributes(attrs ...string) {
	s.attributes = append([]string{}, attrs...)
}

// RequiredKeys returns the declared required parameters.
func (s *ParamSpec) RequiredKeys() []string {
	return append([]string{}, s.required...)
}

// DiscoveredKeys returns the declared discovered parameters.
func (s *ParamSpec) DiscoveredKeys() []string {
	return append([]string{}, s.discovered...)
}

// DefaultKeys returns default-classified parameters in declaration order.
func (s *ParamSpec) DefaultKeys() []string {
	return append([]string{}, s.defaultOrder...)
}

// DefaultValue returns the fallback value for a default parameter.
func (s *ParamSpec) DefaultValue(key string) (string, bool) {
	v, ok := s.defaults[key]
	return v, ok
}

// Priority returns the registered default priority.
func (s *ParamSpec) Priority() int { return s.priority }

// DefaultAttributes returns the registered default attribute tags.
func (s *ParamSpec) DefaultAttributes() []string {
	return append([]string{}, s.attributes...)
}

// Unresolved returns every required or discovered parameter that is still
// null in the section. An empty result means the configure invariant
// holds.
func (s *ParamSpec) Unresolved(sec *config.Section) []string {
	var missing []string
	for _, key := range s.required {
		if sec.IsNull(key) {
			missing = append(missing, key)
		}
	}
	for _, key := range s.discovered {
		if sec.IsNull(key) {
			missing = append(missing, key)
		}
	}
	return missing
}
