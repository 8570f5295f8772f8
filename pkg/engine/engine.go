// pkg/engine/engine.go
// Package engine sequences the configure, extract and render phases over
// the core section and every plugin section of a configuration document.
//
// The pipeline is strictly sequential: sections are handled in document
// order, a later phase never starts before the previous phase finished
// for all sections, and any failure aborts the current phase with no
// partial output.
package engine

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/genoscribe/genoscribe/pkg/config"
	"github.com/genoscribe/genoscribe/pkg/core"
	"github.com/genoscribe/genoscribe/pkg/plugin"
	"github.com/genoscribe/genoscribe/pkg/report"
	"github.com/genoscribe/genoscribe/pkg/workspace"
)

// Engine owns the pipeline state for one run: the shared workspace, the
// per-run plugin cache, the data validator and the core section handlers.
type Engine struct {
	ws         *workspace.Workspace
	loader     *plugin.Loader
	validator  *plugin.Validator
	configurer *core.Configurer
	extractor  *core.Extractor
	renderer   *core.Renderer
	logger     zerolog.Logger
}

// New creates an engine with the embedded plugin-data schema.
func New(ws *workspace.Workspace, logger zerolog.Logger) (*Engine, error) {
	validator, err := plugin.NewValidator()
	if err != nil {
		return nil, err
	}
	return newEngine(ws, validator, logger)
}

// NewWithSchema creates an engine validating against an externally
// supplied schema document.
func NewWithSchema(ws *workspace.Workspace, schemaDoc []byte, logger zerolog.Logger) (*Engine, error) {
	validator, err := plugin.NewValidatorWithSchema(schemaDoc)
	if err != nil {
		return nil, err
	}
	return newEngine(ws, validator, logger)
}

func newEngine(ws *workspace.Workspace, validator *plugin.Validator, logger zerolog.Logger) (*Engine, error) {
	renderer, err := core.NewRenderer()
	if err != nil {
		return nil, err
	}
	logger = logger.With().Str("component", "engine").Logger()
	return &Engine{
		ws:         ws,
		loader:     plugin.NewLoader(ws, validator, logger),
		validator:  validator,
		configurer: core.NewConfigurer(logger),
		extractor:  core.NewExtractor(logger),
		renderer:   renderer,
		logger:     logger,
	}, nil
}

// Loader exposes the per-run plugin cache.
func (e *Engine) Loader() *plugin.Loader { return e.loader }

// SetDefaultAuthor overrides the author applied to core sections that
// carry none.
func (e *Engine) SetDefaultAuthor(author string) {
	e.configurer.SetDefaultAuthor(author)
}

// Configure resolves every section of the input document: the core
// section through the core configurer, every other section through its
// plugin. The core section is resolved first regardless of its position,
// so every plugin can read core values during its own configure step;
// the returned document still carries each section in its original
// position. The input is never modified. When outPath is non-empty its
// writability is checked before any handler runs, and the result is
// persisted only after every section succeeded.
func (e *Engine) Configure(doc *config.Document, outPath string) (*config.Document, error) {
	if outPath != "" {
		if err := config.CheckWritable(outPath); err != nil {
			return nil, WrapOutputPathError(err)
		}
	}

	resolved := config.NewDocument()
	if sec, ok := doc.Section(config.CoreSection); ok {
		coreSec, err := e.configurer.Run(sec)
		if err != nil {
			return nil, WrapPhaseError("configure", config.CoreSection, err)
		}
		if missing := e.configurer.Spec().Unresolved(coreSec); len(missing) > 0 {
			return nil, NewParameterError(config.CoreSection, missing)
		}
		resolved.SetSection(coreSec)
		e.logger.Debug().Msg("core section configured")
	}

	out := config.NewDocument()
	for _, name := range doc.SectionNames() {
		if name == config.CoreSection {
			coreSec, _ := resolved.Section(config.CoreSection)
			out.SetSection(coreSec)
			continue
		}
		sec, _ := doc.Section(name)

		inst, err := e.loader.Load(name)
		if err != nil {
			return nil, NewPluginLoadError(name, err)
		}
		resolvedSec, err := inst.Plugin.Configure(&plugin.ConfigContext{
			Section:  sec.Clone(),
			Resolved: resolved,
		})
		if err != nil {
			return nil, WrapPhaseError("configure", name, err)
		}
		if missing := inst.Spec.Unresolved(resolvedSec); len(missing) > 0 {
			return nil, NewParameterError(name, missing)
		}
		out.SetSection(resolvedSec)
		resolved.SetSection(resolvedSec)
		e.logger.Debug().Str("plugin", name).Msg("section configured")
	}

	if outPath != "" {
		if err := out.Save(outPath); err != nil {
			return nil, WrapOutputPathError(err)
		}
	}
	return out, nil
}

// Extract produces the aggregated report data from a fully configured
// document. Core fields come first; each plugin's data is validated
// against the shared schema before being admitted under its identifier,
// preserving document order. Any plugin or validation failure aborts the
// phase with no partial report.
func (e *Engine) Extract(doc *config.Document, outPath string) (*report.Data, error) {
	if outPath != "" {
		if err := config.CheckWritable(outPath); err != nil {
			return nil, WrapOutputPathError(err)
		}
	}

	data, err := e.extractor.Run(core.CoreSection(doc))
	if err != nil {
		return nil, WrapPhaseError("extract", config.CoreSection, err)
	}

	for _, name := range doc.PluginSections() {
		inst, err := e.loader.Load(name)
		if err != nil {
			return nil, NewPluginLoadError(name, err)
		}
		sec, _ := doc.Section(name)
		pd, err := inst.Plugin.Extract(sec.Clone())
		if err != nil {
			return nil, WrapPhaseError("extract", name, err)
		}
		if err := e.validator.Validate(pd); err != nil {
			return nil, WrapValidationError(name, err)
		}
		data.Plugins.Set(name, pd)
		e.logger.Debug().Str("plugin", name).Msg("section extracted")
	}

	if outPath != "" {
		if err := data.Save(outPath); err != nil {
			return nil, WrapOutputPathError(err)
		}
	}
	return data, nil
}

// Render composes the final document: the core header, one fragment per
// plugin in insertion order (equal to configuration order), and the core
// footer, joined by single newlines. Priorities never reorder fragments;
// the configuration stays authoritative over presentation order.
func (e *Engine) Render(data *report.Data, outPath string) (string, error) {
	if outPath != "" {
		if err := config.CheckWritable(outPath); err != nil {
			return "", WrapOutputPathError(err)
		}
	}

	header, footer, err := e.renderer.Run(data)
	if err != nil {
		return "", WrapPhaseError("render", config.CoreSection, err)
	}

	parts := []string{header}
	for _, name := range data.Plugins.Names() {
		inst, err := e.loader.Load(name)
		if err != nil {
			return "", NewPluginLoadError(name, err)
		}
		pd, _ := data.Plugins.Get(name)
		fragment, err := inst.Plugin.Render(pd)
		if err != nil {
			return "", WrapPhaseError("render", name, err)
		}
		parts = append(parts, fragment)
		e.logger.Debug().Str("plugin", name).Msg("section rendered")
	}
	parts = append(parts, footer)

	document := strings.Join(parts, "\n")
	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(document), 0o644); err != nil {
			return "", WrapOutputPathError(err)
		}
	}
	return document, nil
}

// RunPaths holds the optional per-phase output destinations for Run.
type RunPaths struct {
	ConfigOut   string
	DataOut     string
	DocumentOut string
}

// Run executes all three phases under the workspace run lock and returns
// the final document.
func (e *Engine) Run(doc *config.Document, paths RunPaths) (string, error) {
	if err := e.ws.Acquire(); err != nil {
		return "", err
	}
	defer func() {
		if err := e.ws.Release(); err != nil {
			e.logger.Warn().Err(err).Msg("release workspace lock")
		}
	}()

	configured, err := e.Configure(doc, paths.ConfigOut)
	if err != nil {
		return "", err
	}
	data, err := e.Extract(configured, paths.DataOut)
	if err != nil {
		return "", err
	}
	return e.Render(data, paths.DocumentOut)
}
