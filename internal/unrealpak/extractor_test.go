package unrealpak

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCountsConfirmations(t *testing.T) {
	dest := t.TempDir()
	runner := &scriptRunner{lines: []string{
		"LogPakFile: Display: Using command line encryption key",
		`LogPakFile: Display: Extracted "Foo/Bar.uasset" to ` + dest,
		`LogPakFile: Display: Extracted "Foo/Bar.uexp" to ` + dest,
		"LogPakFile: Display: Finished extracting 2 files",
	}}
	expected := NameMapping{
		"Foo/Bar.uasset": "Game/Foo/Bar.uasset",
		"Foo/Bar.uexp":   "Game/Foo/Bar.uexp",
	}

	n, err := Extract(context.Background(), runner, "x.pak", dest, "/tmp/crypto.json", expected, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, runner.calls, 1)
	assert.Equal(t,
		[]string{"x.pak", "-extract", dest, "-cryptokeys=/tmp/crypto.json"},
		runner.calls[0])
}

func TestExtractUnexpectedName(t *testing.T) {
	dest := t.TempDir()
	runner := &scriptRunner{lines: []string{
		`Extracted "Foo/Bar.uasset" to ` + dest,
		`Extracted "Sneaky/Extra.uasset" to ` + dest,
	}}
	expected := NameMapping{"Foo/Bar.uasset": "Game/Foo/Bar.uasset"}

	_, err := Extract(context.Background(), runner, "x.pak", dest, "c.json", expected, nopLogger{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocolMismatch)
}

func TestExtractCountMismatch(t *testing.T) {
	dest := t.TempDir()
	runner := &scriptRunner{lines: []string{
		`Extracted "A.uasset" to ` + dest,
	}}
	expected := NameMapping{
		"A.uasset": "A.uasset",
		"B.uasset": "B.uasset",
	}

	n, err := Extract(context.Background(), runner, "x.pak", dest, "c.json", expected, nopLogger{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCountMismatch)
	assert.Equal(t, 1, n)
}

func TestExtractNilExpectedSkipsChecks(t *testing.T) {
	dest := t.TempDir()
	runner := &scriptRunner{lines: []string{
		`Extracted "Whatever.bin" to ` + dest,
		`Extracted "Anything.bin" to ` + dest,
	}}

	n, err := Extract(context.Background(), runner, "x.pak", dest, "c.json", nil, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExtractCreatesDestDir(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "staging", "deep")
	runner := &scriptRunner{}

	_, err := Extract(context.Background(), runner, "x.pak", dest, "c.json", NameMapping{}, nopLogger{})
	require.NoError(t, err)
	assert.DirExists(t, dest)
}
