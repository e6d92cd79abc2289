// Package bench compares this repository's parse-and-translate pipeline
// against wasmtime-go's and wasmer-go's own module-compilation step on the
// same fixture module, the comparative-benchmark shape of
// tetratelabs/wazero's own vs/bench_fac_test.go (BenchmarkFac_Init).
// Neither third-party runtime is asked to instantiate or execute the
// module: this repository never does either (spec.md §1, Non-goals), so
// the fair comparison point is compilation/module-construction cost, not
// invocation.
package bench

// ConstantModule is a minimal binary with one exported function "answer"
// of type () -> i32 returning the constant 42, used as the fixture every
// benchmark in this package compiles.
func ConstantModule() []byte {
	section := func(id byte, payload []byte) []byte {
		return append([]byte{id, byte(len(payload))}, payload...)
	}
	var out []byte
	out = append(out, 0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00)
	out = append(out, section(1, []byte{0x01, 0x60, 0x00, 0x01, 0x7F})...)
	out = append(out, section(3, []byte{0x01, 0x00})...)
	name := []byte("answer")
	exportPayload := append([]byte{0x01, byte(len(name))}, name...)
	exportPayload = append(exportPayload, 0x00, 0x00)
	out = append(out, section(7, exportPayload)...)
	body := []byte{0x00, 0x41, 0x2A, 0x0B}
	codePayload := append([]byte{0x01, byte(len(body))}, body...)
	out = append(out, section(10, codePayload)...)
	return out
}
