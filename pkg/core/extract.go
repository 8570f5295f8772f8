// pkg/core/extract.go
package core

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/report"
	"github.com/genoscribe/genoscribe/pkg/version"
)

// Extractor turns the resolved core section into the top level of the
// aggregated report data, with an empty plugins map for the orchestrator
// to populate.
type Extractor struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewExtractor creates the core extractor.
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{
		logger: logger.With().Str("component", "core.extract").Logger(),
		now:    time.Now,
	}
}

// Run builds report data from core fields only.
func (e *Extractor) Run(sec *config.Section) (*report.Data, error) {
	d := report.New()
	d.ReportID = sec.Get(KeyReportID)
	d.Author = sec.Get(KeyAuthor)
	d.DocumentVersion = sec.Get(KeyDocumentVersion)
	d.ExtractTime = e.now().UTC().Format(time.RFC3339)
	d.CoreVersion = version.Version
	e.logger.Debug().Str("report_id", d.ReportID).Msg("core fields extracted")
	return d, nil
}

// CoreSection returns the document's core section, or an empty one when
// the document has none. Render must stay well-formed either way.
func CoreSection(doc *config.Document) *config.Section {
	if sec, ok := doc.Section(config.CoreSection); ok {
		return sec
	}
	return config.NewSection(config.CoreSection)
}
