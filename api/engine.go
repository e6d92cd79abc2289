package api

import "github.com/spidir/wasmssa/internal/logging"

// Engine is the top-level handle of spec.md §6.1: constructed with an
// optional Config, shared by every Store built from it. It owns the one
// process-wide logging sink (§5, "shared-resource policy").
type Engine struct {
	cfg *Config
	log *logging.Logger
}

// NewEngine constructs an Engine from cfg. A nil cfg is equivalent to
// NewConfig(), matching the Wasm embedding standard's "optional config"
// wording for wasm_engine_new_with_config.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Engine{cfg: cfg, log: logging.Nop()}
}

// WithLogger swaps the Engine's logging sink, used by cmd/wasmssa to wire
// the CLI's --log-level flag through to the embedding layer.
func (e *Engine) WithLogger(l *logging.Logger) *Engine {
	e.log = l
	return e
}

// Close releases e. An Engine holds no OS resources of its own; Close
// exists for parity with the embedding standard's wasm_engine_delete and
// to give embedders a single, uniform teardown call across every handle
// in this package.
func (e *Engine) Close() {}

// Store is a unit of isolation bound to one Engine (spec.md §6.1). This
// core neither instantiates nor executes modules, so Store carries no
// runtime state beyond the Engine it was built from; it exists so the
// embedding surface matches the standard's Engine → Store → Module
// hierarchy rather than collapsing Store into Engine.
type Store struct {
	engine *Engine
}

// NewStore binds a new Store to engine.
func NewStore(engine *Engine) *Store {
	return &Store{engine: engine}
}

// Close releases s.
func (s *Store) Close() {}
