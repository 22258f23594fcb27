package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/apocalyptech/wldata/internal/naming"
)

// fileConfig is the YAML shape of the optional wldata.yaml config file.
// Keys double as WLDATA_* environment variable names (upper-cased).
type fileConfig struct {
	Install   string `yaml:"install" mapstructure:"install"`
	ExtractTo string `yaml:"extract_to" mapstructure:"extract_to"`
	Crypto    string `yaml:"crypto" mapstructure:"crypto"`

	Unrealpak  string `yaml:"unrealpak" mapstructure:"unrealpak"`
	Wine       string `yaml:"wine" mapstructure:"wine"`
	WinePrefix string `yaml:"wine_prefix" mapstructure:"wine_prefix"`

	SkipAudioPaks bool `yaml:"skip_audio_paks" mapstructure:"skip_audio_paks"`

	AudioDatagroups []int            `yaml:"audio_datagroups" mapstructure:"audio_datagroups"`
	RootOverrides   []rootOverride   `yaml:"root_overrides" mapstructure:"root_overrides"`
	CaseFixes       []naming.CaseFix `yaml:"case_fixes" mapstructure:"case_fixes"`
	PruneFiles      []string         `yaml:"prune_files" mapstructure:"prune_files"`
	PruneDirs       []string         `yaml:"prune_dirs" mapstructure:"prune_dirs"`
}

// rootOverride is a from/to pair rather than a map entry: viper lowercases
// map keys on read, which would corrupt case-sensitive root names.
type rootOverride struct {
	From string `yaml:"from" mapstructure:"from"`
	To   string `yaml:"to" mapstructure:"to"`
}

// Load overlays cfg with values from an optional config file and WLDATA_*
// environment variables. Flag values are applied by the CLI after Load, so
// the effective precedence is flags > environment > file > defaults.
//
// With cfgFile empty, wldata.yaml is looked up in the working directory
// and the per-user config directory; a missing file is not an error. An
// explicitly named file must exist.
func Load(cfg *Config, cfgFile string) error {
	v := viper.New()
	v.SetConfigName("wldata")
	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "wldata"))
		}
	}

	v.SetEnvPrefix("WLDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("install", cfg.InstallDir)
	v.SetDefault("extract_to", cfg.ExtractDir)
	v.SetDefault("crypto", cfg.CryptoPath)
	v.SetDefault("unrealpak", cfg.UnrealPak)
	v.SetDefault("wine", cfg.Wine)
	v.SetDefault("wine_prefix", cfg.WinePrefix)
	v.SetDefault("skip_audio_paks", cfg.SkipAudioPaks)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// No config file anywhere is fine; a named or malformed one is not.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	cfg.InstallDir = v.GetString("install")
	cfg.ExtractDir = NormalizeDirArg(v.GetString("extract_to"))
	cfg.CryptoPath = v.GetString("crypto")
	cfg.UnrealPak = v.GetString("unrealpak")
	cfg.Wine = v.GetString("wine")
	cfg.WinePrefix = v.GetString("wine_prefix")
	cfg.SkipAudioPaks = v.GetBool("skip_audio_paks")

	// The fixed tables only change when the file (or environment) actually
	// sets them; an absent key keeps the built-in defaults.
	if v.IsSet("audio_datagroups") {
		cfg.AudioDatagroups = v.GetIntSlice("audio_datagroups")
	}
	if v.IsSet("root_overrides") {
		var overrides []rootOverride
		if err := v.UnmarshalKey("root_overrides", &overrides); err != nil {
			return fmt.Errorf("reading root_overrides: %w", err)
		}
		m := make(map[string]string, len(overrides))
		for _, o := range overrides {
			m[o.From] = o.To
		}
		cfg.RootOverrides = m
	}
	if v.IsSet("case_fixes") {
		var fixes []naming.CaseFix
		if err := v.UnmarshalKey("case_fixes", &fixes); err != nil {
			return fmt.Errorf("reading case_fixes: %w", err)
		}
		cfg.CaseFixes = fixes
	}
	if v.IsSet("prune_files") {
		cfg.PruneFilePatterns = v.GetStringSlice("prune_files")
	}
	if v.IsSet("prune_dirs") {
		cfg.PruneDirPatterns = v.GetStringSlice("prune_dirs")
	}
	return nil
}

const defaultFileHeader = `# wldata configuration.
#
# Every key here can also be supplied as a WLDATA_* environment variable
# (e.g. WLDATA_EXTRACT_TO) or overridden by the matching CLI flag.
`

// WriteDefault renders the built-in defaults as a commented YAML config
// file at path. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	def := DefaultConfig()
	froms := make([]string, 0, len(def.RootOverrides))
	for from := range def.RootOverrides {
		froms = append(froms, from)
	}
	sort.Strings(froms)
	overrides := make([]rootOverride, 0, len(froms))
	for _, from := range froms {
		overrides = append(overrides, rootOverride{From: from, To: def.RootOverrides[from]})
	}

	body, err := yaml.Marshal(fileConfig{
		Install:         def.InstallDir,
		ExtractTo:       def.ExtractDir,
		Crypto:          def.CryptoPath,
		Unrealpak:       def.UnrealPak,
		Wine:            def.Wine,
		WinePrefix:      def.WinePrefix,
		SkipAudioPaks:   def.SkipAudioPaks,
		AudioDatagroups: def.AudioDatagroups,
		RootOverrides:   overrides,
		CaseFixes:       def.CaseFixes,
		PruneFiles:      def.PruneFilePatterns,
		PruneDirs:       def.PruneDirPatterns,
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append([]byte(defaultFileHeader), body...), 0o644)
}
