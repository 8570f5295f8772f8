// pkg/plugin/registry.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/genoscribe/genoscribe/pkg/workspace"
)

// Factory constructs a plugin instance bound to its run-scoped deps.
type Factory func(deps Deps) Plugin

var (
	registryMu     sync.RWMutex
	pluginRegistry = make(map[string]Factory)
)

// Register adds a plugin factory under its identifier. Plugins register
// themselves at init time; a duplicate identifier is a programming error.
func Register(identifier string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := pluginRegistry[identifier]; exists {
		panic(fmt.Sprintf("plugin %q already registered", identifier))
	}
	pluginRegistry[identifier] = factory
}

// Registered returns all known plugin identifiers, sorted.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(pluginRegistry))
	for id := range pluginRegistry {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func lookup(identifier string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := pluginRegistry[identifier]
	return f, ok
}

// Instance is a loaded plugin together with the parameter specification
// it declared at construction.
type Instance struct {
	Identifier string
	Plugin     Plugin
	Spec       *ParamSpec
}

// Loader resolves plugin identifiers to instances. Each identifier is
// constructed once per run and cached; subsequent loads return the same
// instance.
type Loader struct {
	ws        *workspace.Workspace
	validator *Validator
	logger    zerolog.Logger
	instances map[string]*Instance
}

// NewLoader creates a loader for one run.
func NewLoader(ws *workspace.Workspace, validator *Validator, logger zerolog.Logger) *Loader {
	return &Loader{
		ws:        ws,
		validator: validator,
		logger:    logger,
		instances: make(map[string]*Instance),
	}
}

// Load returns the plugin instance for an identifier, constructing and
// caching it on first use. The instance is bound to its workspace scope
// and a component logger, and its Specify hook runs exactly once here.
func (l *Loader) Load(identifier string) (*Instance, error) {
	if inst, ok := l.instances[identifier]; ok {
		return inst, nil
	}

	factory, ok := lookup(identifier)
	if !ok {
		return nil, fmt.Errorf("no plugin registered for identifier %q", identifier)
	}

	scope, err := l.ws.Scope(identifier)
	if err != nil {
		return nil, fmt.Errorf("bind workspace for plugin %q: %w", identifier, err)
	}

	p := factory(Deps{
		Workspace: scope,
		Logger:    l.logger.With().Str("plugin", identifier).Logger(),
		Validator: l.validator,
	})

	spec := NewParamSpec()
	p.Specify(spec)

	inst := &Instance{Identifier: identifier, Plugin: p, Spec: spec}
	l.instances[identifier] = inst
	l.logger.Debug().Str("plugin", identifier).Msg("plugin loaded")
	return inst, nil
}
