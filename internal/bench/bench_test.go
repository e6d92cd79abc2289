package bench

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spidir/wasmssa/internal/module"
)

// BenchmarkWasmssaLoad tracks the time spent parsing and translating the
// fixture module, this package's half of the wasmtime-go / wasmer-go
// comparison in wasmtime_bench_test.go / wasmer_bench_test.go (cgo-gated,
// since those two libraries require cgo).
func BenchmarkWasmssaLoad(b *testing.B) {
	data := ConstantModule()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m, err := module.Load(data)
		if err != nil {
			b.Fatal(err)
		}
		m.Close()
	}
}

func TestConstantModuleLoads(t *testing.T) {
	m, err := module.Load(ConstantModule())
	require.NoError(t, err)
	defer m.Close()
	require.Equal(t, 1, m.NumFunctions())
}
