package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildConstantModule is a minimal binary with one exported function
// "answer" of type () -> i32 returning the constant 42.
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

func writeModule(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "answer.wasm")
	require.NoError(t, os.WriteFile(path, buildConstantModule(), 0o644))
	return path
}

func TestDoMainTranslatesModule(t *testing.T) {
	path := writeModule(t)
	var stdout, stderr bytes.Buffer
	code := doMain(&stdout, &stderr, []string{"-module", path})
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "translated 1 function(s)")
	require.Empty(t, stderr.String())
}

func TestDoMainRequiresModuleFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := doMain(&stdout, &stderr, []string{})
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "missing required -module flag")
}

func TestDoMainReportsMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := doMain(&stdout, &stderr, []string{"-module", "/no/such/file.wasm"})
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "reading")
}

func TestDoMainReportsTranslateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wasm")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x00, 0x00, 0x00}, 0o644))

	var stdout, stderr bytes.Buffer
	code := doMain(&stdout, &stderr, []string{"-module", path})
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "translating")
}

func TestDoMainDumpsIRToStdout(t *testing.T) {
	path := writeModule(t)
	var stdout, stderr bytes.Buffer
	code := doMain(&stdout, &stderr, []string{"-module", path, "-ir-dump", "-"})
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "func 0")
}

func TestDoMainDumpsIRToFile(t *testing.T) {
	path := writeModule(t)
	dumpPath := filepath.Join(t.TempDir(), "out.ir")
	var stdout, stderr bytes.Buffer
	code := doMain(&stdout, &stderr, []string{"-module", path, "-ir-dump", dumpPath})
	require.Equal(t, 0, code)

	contents, err := os.ReadFile(dumpPath)
	require.NoError(t, err)
	require.Contains(t, string(contents), "func 0")
}
