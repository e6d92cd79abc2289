//go:build amd64 && cgo && !windows

// wasmer-go requires cgo and doesn't link on Windows, matching
// tetratelabs/wazero's own vs/bench_fac_test.go build constraint.
package bench

import (
	"testing"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// BenchmarkWasmerCompile tracks the time wasmer-go spends compiling the
// same fixture module, the comparison point for BenchmarkWasmssaLoad.
func BenchmarkWasmerCompile(b *testing.B) {
	data := ConstantModule()
	store := wasmer.NewStore(wasmer.NewEngine())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wasmer.NewModule(store, data); err != nil {
			b.Fatal(err)
		}
	}
}
