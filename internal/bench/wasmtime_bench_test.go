//go:build amd64 && cgo

// wasmtime-go requires cgo and an amd64 build of its bundled libwasmtime,
// matching tetratelabs/wazero's own vs/bench_fac_test.go build constraint.
package bench

import (
	"testing"

	"github.com/bytecodealliance/wasmtime-go"
)

// BenchmarkWasmtimeCompile tracks the time wasmtime-go spends compiling
// the same fixture module, the comparison point for BenchmarkWasmssaLoad.
func BenchmarkWasmtimeCompile(b *testing.B) {
	data := ConstantModule()
	engine := wasmtime.NewEngine()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wasmtime.NewModule(engine, data); err != nil {
			b.Fatal(err)
		}
	}
}
