// pkg/plugin/validator.go
package plugin

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/plugin_data_schema.json
var embeddedSchema []byte

// SchemaConstraint is the range of plugin-data schema versions this
// build of the engine can consume.
const SchemaConstraint = "^1.0"

// Validator checks plugin data objects against the shared structural
// schema. The check is purely structural; semantic validation stays
// inside the plugins.
type Validator struct {
	schema  *jsonschema.Schema
	version string
}

// NewValidator compiles the embedded plugin-data schema.
func NewValidator() (*Validator, error) {
	return NewValidatorWithSchema(embeddedSchema)
}

// NewValidatorWithSchema compiles an externally supplied schema document.
// The document must carry a top-level "version" field compatible with
// SchemaConstraint.
func NewValidatorWithSchema(doc []byte) (*Validator, error) {
	var header struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(doc, &header); err != nil {
		return nil, fmt.Errorf("parse plugin data schema: %w", err)
	}
	if header.Version == "" {
		return nil, fmt.Errorf("plugin data schema has no version field")
	}

	version, err := semver.NewVersion(header.Version)
	if err != nil {
		return nil, fmt.Errorf("parse schema version %q: %w", header.Version, err)
	}
	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return nil, fmt.Errorf("parse schema constraint: %w", err)
	}
	if !constraint.Check(version) {
		return nil, fmt.Errorf("schema version %s outside supported range %s", version, SchemaConstraint)
	}

	schema, err := jsonschema.CompileString("plugin_data_schema.json", string(doc))
	if err != nil {
		return nil, fmt.Errorf("compile plugin data schema: %w", err)
	}
	return &Validator{schema: schema, version: header.Version}, nil
}

// SchemaVersion returns the version of the compiled schema.
func (v *Validator) SchemaVersion() string { return v.version }

// Validate checks the wire form of one plugin data object against the
// schema. Any mismatch is returned as an error; nil means the object is
// admissible into the aggregated report.
func (v *Validator) Validate(pd any) error {
	raw, err := json.Marshal(pd)
	if err != nil {
		return fmt.Errorf("encode plugin data for validation: %w", err)
	}
	var wire any
	if err := json.Unmarshal(raw, &wire); err != nil {
		return fmt.Errorf("decode plugin data for validation: %w", err)
	}
	if err := v.schema.Validate(wire); err != nil {
		return fmt.Errorf("plugin data does not conform to schema: %w", err)
	}
	return nil
}
