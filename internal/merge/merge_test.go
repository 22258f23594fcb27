package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apocalyptech/wldata/internal/unrealpak"
)

func stage(t *testing.T, staging, name, content string) {
	t.Helper()
	path := filepath.Join(staging, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMergeMovesFiles(t *testing.T) {
	root := t.TempDir()
	staging := filepath.Join(root, "staging")
	final := filepath.Join(root, "final")

	stage(t, staging, "Foo/Bar.uasset", "bar")
	stage(t, staging, "Foo/Baz.uexp", "baz")
	mapping := unrealpak.NameMapping{
		"Foo/Bar.uasset": "Game/Foo/Bar.uasset",
		"Foo/Baz.uexp":   "Game/Foo/Baz.uexp",
	}

	require.NoError(t, Merge(staging, final, mapping))

	assert.Equal(t, "bar", readFile(t, filepath.Join(final, "Game", "Foo", "Bar.uasset")))
	assert.Equal(t, "baz", readFile(t, filepath.Join(final, "Game", "Foo", "Baz.uexp")))
	assert.NoDirExists(t, staging)
}

func TestMergeOverwritesExisting(t *testing.T) {
	root := t.TempDir()
	staging := filepath.Join(root, "staging")
	final := filepath.Join(root, "final")

	dst := filepath.Join(final, "Game", "Foo.uasset")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	stage(t, staging, "Foo.uasset", "new")
	mapping := unrealpak.NameMapping{"Foo.uasset": "Game/Foo.uasset"}

	require.NoError(t, Merge(staging, final, mapping))
	assert.Equal(t, "new", readFile(t, dst))
}

func TestMergeToleratesMissingListedFiles(t *testing.T) {
	root := t.TempDir()
	staging := filepath.Join(root, "staging")
	final := filepath.Join(root, "final")

	// Only one of the two listed files survived pruning.
	stage(t, staging, "Kept.uasset", "kept")
	mapping := unrealpak.NameMapping{
		"Kept.uasset": "Game/Kept.uasset",
		"Pruned.wem":  "Game/Pruned.wem",
	}

	require.NoError(t, Merge(staging, final, mapping))
	assert.FileExists(t, filepath.Join(final, "Game", "Kept.uasset"))
	assert.NoFileExists(t, filepath.Join(final, "Game", "Pruned.wem"))
}

func TestMergeUnmappedLeftover(t *testing.T) {
	root := t.TempDir()
	staging := filepath.Join(root, "staging")
	final := filepath.Join(root, "final")

	stage(t, staging, "Mapped.uasset", "ok")
	stage(t, staging, "Orphan/Unlisted.bin", "leftover")
	mapping := unrealpak.NameMapping{"Mapped.uasset": "Game/Mapped.uasset"}

	err := Merge(staging, final, mapping)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteMerge)

	// The mapped file moved anyway; the orphan stayed for inspection.
	assert.FileExists(t, filepath.Join(final, "Game", "Mapped.uasset"))
	assert.FileExists(t, filepath.Join(staging, "Orphan", "Unlisted.bin"))
}

func TestMergeMissingStagingIsNoop(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Merge(filepath.Join(root, "nope"), root, unrealpak.NameMapping{"a": "b"}))
}

func TestMergeIsReentrant(t *testing.T) {
	root := t.TempDir()
	staging := filepath.Join(root, "staging")
	final := filepath.Join(root, "final")

	stage(t, staging, "Foo.uasset", "x")
	mapping := unrealpak.NameMapping{"Foo.uasset": "Game/Foo.uasset"}

	require.NoError(t, Merge(staging, final, mapping))
	require.NoError(t, Merge(staging, final, mapping))
	assert.FileExists(t, filepath.Join(final, "Game", "Foo.uasset"))
}

func TestPrune(t *testing.T) {
	root := t.TempDir()
	stage(t, root, "Game/Audio/Track.wem", "x")
	stage(t, root, "Game/Audio/Init.bnk", "x")
	stage(t, root, "Game/GlobalShaderArchive-PCD3D.ushaderbytecode", "x")
	stage(t, root, "Game/PipelineCaches/cache.upipelinecache", "x")
	stage(t, root, "Game/TritonData/zone.bin", "x")
	stage(t, root, "Game/Keep/Model.uasset", "x")

	stats, err := Prune(root,
		[]string{"*.wem", "*.bnk", "*ShaderArchive*"},
		[]string{"*PipelineCaches*", "*TritonData*"})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 2, stats.Dirs)
	assert.NoFileExists(t, filepath.Join(root, "Game", "Audio", "Track.wem"))
	assert.NoDirExists(t, filepath.Join(root, "Game", "PipelineCaches"))
	assert.NoDirExists(t, filepath.Join(root, "Game", "TritonData"))
	assert.FileExists(t, filepath.Join(root, "Game", "Keep", "Model.uasset"))
}

func TestPruneMissingRoot(t *testing.T) {
	stats, err := Prune(filepath.Join(t.TempDir(), "nope"), []string{"*.wem"}, nil)
	require.NoError(t, err)
	assert.Equal(t, PruneStats{}, stats)
}
