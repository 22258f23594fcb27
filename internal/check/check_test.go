package check

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apocalyptech/wldata/internal/naming"
)

func TestToolsBarePathMissing(t *testing.T) {
	err := Tools("definitely-not-a-real-binary-name", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrealPakNotFound)
}

func TestToolsExplicitPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "UnrealPak.exe")

	require.ErrorIs(t, Tools(tool, ""), ErrUnrealPakNotFound)

	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755))
	assert.NoError(t, Tools(tool, ""))
}

func TestToolsWineMissing(t *testing.T) {
	err := Tools("UnrealPak.exe", "definitely-not-a-real-wine")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWineNotFound)
}

func TestToolsWinePresentSkipsBareToolLookup(t *testing.T) {
	// A bare tool name is resolved by wine itself, so only the wrapper has
	// to be on PATH. "sh" stands in for the wrapper.
	assert.NoError(t, Tools("UnrealPak.exe", "sh"))
}

func TestToolsWineWithExplicitToolPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "UnrealPak.exe")
	err := Tools(missing, "sh")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrealPakNotFound)
}

func TestDiskSpace(t *testing.T) {
	paks := []naming.PakFile{
		{SizeBytes: 10 << 30},
		{SizeBytes: 4 << 30},
	}

	requiredGB, freeGB, _, err := DiskSpace(t.TempDir(), paks)
	require.NoError(t, err)

	// (10 + 4 + 10 largest again) * 1.6 = 38.4, ceiled, plus the spare GiB.
	assert.Equal(t, uint64(40), requiredGB)
	assert.Greater(t, freeGB, uint64(0))
}

func TestDiskSpaceMissingDir(t *testing.T) {
	_, _, _, err := DiskSpace(filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
}

func TestPathLength(t *testing.T) {
	short, ok := PathLength("/data/out")
	assert.True(t, ok)
	assert.Equal(t, len("/data/out")+longestArchivePath, short)

	long, ok := PathLength(strings.Repeat("x", 200))
	assert.False(t, ok)
	assert.Equal(t, 200+longestArchivePath, long)
}
