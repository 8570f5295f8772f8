// pkg/core/configure.go
// Package core handles the one reserved configuration section carrying
// report-level metadata shared by all plugins.
package core

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/plugin"
)

// Keys of the reserved core section.
const (
	KeyReportID        = "report_id"
	KeyAuthor          = "author"
	KeyDocumentVersion = "document_version"
)

const (
	defaultAuthor          = "CGI Reporting Lab"
	defaultDocumentVersion = "1"
)

// Configurer resolves the core section: defaults are applied and a
// report identifier is discovered when none was supplied.
type Configurer struct {
	logger zerolog.Logger
	author string
}

// NewConfigurer creates the core section configurer.
func NewConfigurer(logger zerolog.Logger) *Configurer {
	return &Configurer{
		logger: logger.With().Str("component", "core.configure").Logger(),
		author: defaultAuthor,
	}
}

// SetDefaultAuthor overrides the author applied when the section carries
// none, typically from operator settings.
func (c *Configurer) SetDefaultAuthor(author string) {
	if author != "" {
		c.author = author
	}
}

// Spec declares the core section parameters: author and document version
// fall back to defaults, the report identifier is discovered.
func (c *Configurer) Spec() *plugin.ParamSpec {
	spec := plugin.NewParamSpec()
	spec.Discovered(KeyReportID)
	spec.Default(KeyAuthor, c.author)
	spec.Default(KeyDocumentVersion, defaultDocumentVersion)
	return spec
}

// Run returns the resolved core section. The input is not modified.
func (c *Configurer) Run(sec *config.Section) (*config.Section, error) {
	spec := c.Spec()
	out := sec.Clone()

	for _, key := range spec.DefaultKeys() {
		if !out.Has(key) {
			v, _ := spec.DefaultValue(key)
			out.Set(key, v)
		}
	}
	if out.IsNull(KeyReportID) {
		id := "GS-" + strings.ToUpper(uuid.NewString()[:8])
		out.Set(KeyReportID, id)
		c.logger.Debug().Str("report_id", id).Msg("generated report identifier")
	}
	return out, nil
}
