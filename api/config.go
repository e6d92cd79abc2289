// Package api is the C-style embedding surface of spec.md §6.1: Engine,
// Config, Store, and Module constructors/destructors, value/function/
// memory/global/export type descriptors, and the homogeneous vec<T>
// family the Wasm embedding standard specifies.
//
// Config follows wazero's own RuntimeConfig clone-on-write functional
// option shape (config.go: NewRuntimeConfigJIT/WithContext/...): an option
// method never mutates its receiver, it returns a new, independently
// owned Config so a shared base config can be specialized per Engine
// without aliasing surprises.
package api

// IRDumpSink receives the textual IR dump of a compiled Module (spec.md
// §6.2, "module-level dump that streams textual IR to a callback sink").
// Returning false stops the dump early.
type IRDumpSink func(data []byte) (cont bool)

// Config carries the two embedding-level knobs spec.md §6.1 names:
// whether to run code-generator optimizations, and where to stream a
// compiled module's IR dump.
type Config struct {
	optimize   bool
	irDumpSink IRDumpSink
}

// NewConfig returns the default Config: optimizations off, no IR dump.
func NewConfig() *Config {
	return &Config{}
}

func (c *Config) clone() *Config {
	cp := *c
	return &cp
}

// WithOptimize toggles code-generator optimizations (§6.3, "--optimize").
// The optimizer itself is the third-party backend this repository hands
// IR off to; this flag is plumbed through for that backend to read.
func (c *Config) WithOptimize(enabled bool) *Config {
	ret := c.clone()
	ret.optimize = enabled
	return ret
}

// WithIRDumpSink installs a callback that receives the compiled module's
// textual IR (§6.3, "--ir-dump"). A nil sink disables dumping.
func (c *Config) WithIRDumpSink(sink IRDumpSink) *Config {
	ret := c.clone()
	ret.irDumpSink = sink
	return ret
}

// Optimize reports whether code-generator optimizations are requested.
func (c *Config) Optimize() bool { return c.optimize }
