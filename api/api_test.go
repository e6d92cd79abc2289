package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildConstantModule is a minimal binary with one exported function
// "answer" of type () -> i32 returning the constant 42, matching
// internal/module's own fixture.
func buildConstantModule() []byte {
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

func TestEngineStoreModuleLifecycle(t *testing.T) {
	engine := NewEngine(NewConfig().WithOptimize(true))
	defer engine.Close()
	store := NewStore(engine)
	defer store.Close()

	mod, err := NewModule(store, buildConstantModule())
	require.NoError(t, err)
	defer mod.Close()

	require.Equal(t, 1, mod.NumFunctions())
	idx, sig, ok := mod.ExportedFunction("answer")
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)
	require.Len(t, sig.Results, 1)
	require.Equal(t, ValKindI32, sig.Results[0].Kind())

	exports := mod.Exports()
	require.Equal(t, 1, exports.Len())
	require.Equal(t, "answer", exports.At(0).Name)
	require.Equal(t, ExternKindFunc, exports.At(0).Type.Kind)
}

func TestNewModuleRejectsMalformedInput(t *testing.T) {
	store := NewStore(NewEngine(nil))
	_, err := NewModule(store, []byte{0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)
}

func TestIRDumpSinkReceivesDump(t *testing.T) {
	var dumped string
	cfg := NewConfig().WithIRDumpSink(func(data []byte) bool {
		dumped += string(data)
		return true
	})
	store := NewStore(NewEngine(cfg))
	mod, err := NewModule(store, buildConstantModule())
	require.NoError(t, err)
	defer mod.Close()
	require.Contains(t, dumped, "func 0")
}

func TestVecCopyIsIndependent(t *testing.T) {
	v := NewVec([]byte{1, 2, 3})
	cp := v.Copy()
	cp.Set(0, 99)
	require.Equal(t, byte(1), v.At(0))
	require.Equal(t, byte(99), cp.At(0))

	empty := NewEmptyVec[byte]()
	require.Equal(t, 0, empty.Len())

	uninit := NewUninitializedVec[byte](4)
	require.Equal(t, 4, uninit.Len())

	v.Delete()
	require.Equal(t, 0, v.Len())
}
