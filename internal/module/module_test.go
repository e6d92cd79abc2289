package module

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spidir/wasmssa/internal/wasm"
)

func section(id byte, payload []byte) []byte {
	out := append([]byte{id, byte(len(payload))}, payload...)
	return out
}

// buildConstantModule assembles a minimal binary with one exported function
// "answer" of type () -> i32 returning the constant 42.
func buildConstantModule() []byte {
	var out []byte
	out = append(out, wasmMagic[:]...)
	out = append(out, wasmVersion[:]...)

	// Type section: one functype, () -> (i32).
	out = append(out, section(secType, []byte{0x01, 0x60, 0x00, 0x01, 0x7F})...)
	// Function section: one function, type index 0.
	out = append(out, section(secFunction, []byte{0x01, 0x00})...)
	// Export section: "answer" -> func 0.
	name := []byte("answer")
	exportPayload := append([]byte{0x01, byte(len(name))}, name...)
	exportPayload = append(exportPayload, 0x00, 0x00) // kind func, index 0
	out = append(out, section(secExport, exportPayload)...)
	// Code section: one body, local_count=0; i32.const 42; end.
	body := []byte{0x00, 0x41, 0x2A, 0x0B}
	codePayload := append([]byte{0x01, byte(len(body))}, body...)
	out = append(out, section(secCode, codePayload)...)
	return out
}

func TestLoadConstantModule(t *testing.T) {
	m, err := Load(buildConstantModule())
	require.NoError(t, err)
	require.Equal(t, 1, m.NumFunctions())

	idx, sig, ok := m.ExportedFunction("answer")
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)
	require.Equal(t, []wasm.ValueKind{wasm.KindI32}, sig.Results)

	fn := m.IR.Function(m.Functions[0].ID)
	require.True(t, fn.Translated())
	require.True(t, fn.Entry.Terminated())
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := append([]byte{0x00, 0x00, 0x00, 0x00}, wasmVersion[:]...)
	_, err := Load(data)
	require.Error(t, err)
	var malformed *wasm.MalformedModuleError
	require.ErrorAs(t, err, &malformed)
}

func TestLoadRejectsBadVersion(t *testing.T) {
	data := append(append([]byte{}, wasmMagic[:]...), 0x02, 0x00, 0x00, 0x00)
	_, err := Load(data)
	require.Error(t, err)
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	_, err := Load([]byte{0x00, 0x61})
	require.Error(t, err)
	var te *wasm.TruncatedInputError
	require.ErrorAs(t, err, &te)
}

func TestLoadRejectsCodeFunctionCountMismatch(t *testing.T) {
	var out []byte
	out = append(out, wasmMagic[:]...)
	out = append(out, wasmVersion[:]...)
	out = append(out, section(secType, []byte{0x01, 0x60, 0x00, 0x01, 0x7F})...)
	out = append(out, section(secFunction, []byte{0x01, 0x00})...)
	// Code section declares zero entries, but the function section declared one.
	out = append(out, section(secCode, []byte{0x00})...)

	_, err := Load(out)
	require.Error(t, err)
	var malformed *wasm.MalformedModuleError
	require.ErrorAs(t, err, &malformed)
}

func TestLoadRejectsCodeSectionWithoutFunctionSection(t *testing.T) {
	var out []byte
	out = append(out, wasmMagic[:]...)
	out = append(out, wasmVersion[:]...)
	out = append(out, section(secType, []byte{0x01, 0x60, 0x00, 0x01, 0x7F})...)
	// Code section with one entry, but no function section declared it.
	body := []byte{0x00, 0x41, 0x2A, 0x0B}
	codePayload := append([]byte{0x01, byte(len(body))}, body...)
	out = append(out, section(secCode, codePayload)...)

	_, err := Load(out)
	require.Error(t, err)
	var malformed *wasm.MalformedModuleError
	require.ErrorAs(t, err, &malformed)
}

func TestLoadRejectsImportSection(t *testing.T) {
	var out []byte
	out = append(out, wasmMagic[:]...)
	out = append(out, wasmVersion[:]...)
	out = append(out, section(secImport, []byte{0x00})...)

	_, err := Load(out)
	require.Error(t, err)
	var unsupported *wasm.UnsupportedFeatureError
	require.ErrorAs(t, err, &unsupported)
}

func TestLoadReturnsNilModuleOnError(t *testing.T) {
	m, err := Load([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	require.Error(t, err)
	require.Nil(t, m)
}

func TestCloseIsIdempotent(t *testing.T) {
	m, err := Load(buildConstantModule())
	require.NoError(t, err)
	m.Close()
	require.Nil(t, m.Functions)
	m.Close()
}
