package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "extracted_new", cfg.ExtractDir)
	assert.Equal(t, "crypto.json", cfg.CryptoPath)
	assert.Equal(t, "UnrealPak.exe", cfg.UnrealPak)
	assert.True(t, cfg.SkipAudioPaks)
	assert.True(t, cfg.DiskCheck)
	assert.True(t, cfg.PathLenCheck)
	assert.Equal(t, []int{2, 3, 48, 49, 50, 51, 52, 53}, cfg.AudioDatagroups)
	assert.Equal(t, "Game", cfg.RootOverrides["OakGame"])
	assert.Equal(t, "WwiseEditor", cfg.RootOverrides["Wwise"])
	assert.Equal(t, ColorAuto, cfg.ColorMode)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad color mode",
			mutate:  func(c *Config) { c.ColorMode = "sometimes" },
			wantErr: "color mode",
		},
		{
			name:    "empty extract dir",
			mutate:  func(c *Config) { c.ExtractDir = "" },
			wantErr: "extraction directory",
		},
		{
			name:    "empty crypto path",
			mutate:  func(c *Config) { c.CryptoPath = "" },
			wantErr: "crypto config",
		},
		{
			name:    "empty tool",
			mutate:  func(c *Config) { c.UnrealPak = "" },
			wantErr: "UnrealPak",
		},
		{
			name:    "bad prune pattern",
			mutate:  func(c *Config) { c.PruneFilePatterns = []string{"[oops"} },
			wantErr: "prune pattern",
		},
		{
			name: "incomplete case fix",
			mutate: func(c *Config) {
				c.CaseFixes[0].To = ""
			},
			wantErr: "case fix",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeDirArg(t *testing.T) {
	assert.Equal(t, "/data/out", NormalizeDirArg("/data/out/"))
	assert.Equal(t, "/data/out", NormalizeDirArg("/data/out"))
	assert.Equal(t, "/", NormalizeDirArg("/"))
	assert.Equal(t, "out", NormalizeDirArg("out///"))
}

func TestAudioSet(t *testing.T) {
	cfg := Config{AudioDatagroups: []int{2, 48}}
	set := cfg.AudioSet()
	assert.True(t, set[2])
	assert.True(t, set[48])
	assert.False(t, set[0])
}

func TestStagingDir(t *testing.T) {
	cfg := Config{ExtractDir: "/data/out"}
	assert.Equal(t, filepath.Join("/data/out", StagingDirName), cfg.StagingDir())
}

func TestNormalizerFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	n := cfg.Normalizer()
	assert.Equal(t, "Game/Foo.uasset", n.Normalize("OakGame/Content/Foo.uasset"))
	assert.Equal(t, "Game/Maps/Dungeons/Boss/Climb/D_Boss_Climb_p.umap",
		n.Normalize("OakGame/Content/Maps/Dungeons/Boss/Climb/D_Boss_Climb_P.umap"))
}
