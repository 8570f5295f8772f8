// pkg/config/document.go
// Package config models the ordered, section-based configuration document
// that drives a report run. One section is reserved for report-level
// metadata (CoreSection); every other section names a plugin.
package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

const (
	// CoreSection is the reserved section name for report-level metadata.
	CoreSection = "core"

	// NullValue marks a parameter that is present but unresolved.
	NullValue = "null"
)

// Section is an ordered set of string key/value pairs belonging to one
// configuration section. Mutating methods operate on the receiver; handlers
// that must not modify their input work on a Clone.
type Section struct {
	name   string
	keys   []string
	values map[string]string
}

// NewSection creates an empty section with the given name.
func NewSection(name string) *Section {
	return &Section{
		name:   name,
		values: make(map[string]string),
	}
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// Keys returns the key names in insertion order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Has reports whether the key is present.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Get returns the value for key, or the empty string if absent.
func (s *Section) Get(key string) string {
	return s.values[key]
}

// Lookup returns the value for key and whether it was present.
func (s *Section) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value, appending the key to the order on first write.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// IsNull reports whether the key is absent or carries the null marker.
func (s *Section) IsNull(key string) bool {
	v, ok := s.values[key]
	return !ok || v == NullValue
}

// Clone returns an independent copy of the section.
func (s *Section) Clone() *Section {
	out := NewSection(s.name)
	for _, k := range s.keys {
		out.Set(k, s.values[k])
	}
	return out
}

// Map returns the key/value pairs as a plain map.
func (s *Section) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Document is an ordered collection of uniquely named sections. Section
// order is preserved from the source and is authoritative for downstream
// processing and rendering order.
type Document struct {
	names    []string
	sections map[string]*Section
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{sections: make(map[string]*Section)}
}

// SectionNames returns section names in document order.
func (d *Document) SectionNames() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// PluginSections returns all section names except the reserved core
// section, in document order.
func (d *Document) PluginSections() []string {
	var out []string
	for _, name := range d.names {
		if name != CoreSection {
			out = append(out, name)
		}
	}
	return out
}

// Section returns the named section and whether it exists.
func (d *Document) Section(name string) (*Section, bool) {
	s, ok := d.sections[name]
	return s, ok
}

// SetSection stores a section. A new name is appended to the document
// order; an existing name is replaced in place, keeping its position.
func (d *Document) SetSection(s *Section) {
	if _, ok := d.sections[s.name]; !ok {
		d.names = append(d.names, s.name)
	}
	d.sections[s.name] = s
}

// HasCore reports whether the reserved core section is present.
func (d *Document) HasCore() bool {
	_, ok := d.sections[CoreSection]
	return ok
}

// Len returns the number of sections.
func (d *Document) Len() int { return len(d.names) }

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	out := NewDocument()
	for _, name := range d.names {
		out.SetSection(d.sections[name].Clone())
	}
	return out
}

// Load reads an INI file into an ordered Document.
func Load(path string) (*Document, error) {
	file, err := ini.LoadSources(ini.LoadOptions{}, path)
	if err != nil {
		return nil, fmt.Errorf("read config document %q: %w", path, err)
	}
	doc := NewDocument()
	for _, iniSec := range file.Sections() {
		if iniSec.Name() == ini.DefaultSection {
			// Unnamed top-level keys are not part of the document model.
			continue
		}
		sec := NewSection(iniSec.Name())
		for _, key := range iniSec.Keys() {
			sec.Set(key.Name(), key.Value())
		}
		doc.SetSection(sec)
	}
	return doc, nil
}

// Save writes the document to path in INI form, preserving section and
// key order.
func (d *Document) Save(path string) error {
	file := ini.Empty()
	for _, name := range d.names {
		iniSec, err := file.NewSection(name)
		if err != nil {
			return fmt.Errorf("compose section %q: %w", name, err)
		}
		sec := d.sections[name]
		for _, k := range sec.keys {
			if _, err := iniSec.NewKey(k, sec.values[k]); err != nil {
				return fmt.Errorf("compose key %q in section %q: %w", k, name, err)
			}
		}
	}
	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("write config document %q: %w", path, err)
	}
	return nil
}

// CheckWritable verifies that path can be created or overwritten. It is
// intended as a pre-flight check before expensive computation; a file
// created solely by the probe is removed again.
func CheckWritable(path string) error {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("output path %q not writable: %w", path, err)
	}
	if cerr := f.Close(); cerr != nil {
		return fmt.Errorf("output path %q not writable: %w", path, cerr)
	}
	if !existed {
		_ = os.Remove(path)
	}
	return nil
}
