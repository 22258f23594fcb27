package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apocalyptech/wldata/internal/config"
	"github.com/apocalyptech/wldata/internal/display"
	"github.com/apocalyptech/wldata/internal/install"
	"github.com/apocalyptech/wldata/internal/logging"
	"github.com/apocalyptech/wldata/internal/pipeline"
	"github.com/apocalyptech/wldata/internal/unrealpak"
)

// flagValues captures flag state that is only copied into the Config when
// the user actually set the flag, so config-file and environment values
// hold otherwise.
type flagValues struct {
	cfgFile    string
	extractTo  string
	installDir string
	crypto     string
	unrealPak  string
	wine       string
	winePrefix string
	color      string
	logFile    string

	noDiskCheck    bool
	noPathLenCheck bool
	includeAudio   bool
	dryRun         bool
	assumeYes      bool
	verbose        bool
}

func newRootCmd() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "wldata [flags] [path ...]",
		Short: "Unpack Wonderlands pak archives into their in-game layout",
		Long: `Unpack Wonderlands pak archives into their in-game layout.

Without arguments, every pakfile found in the configured install root is
processed in datagroup/patch order, so later archives overwrite earlier
ones at identical final paths. Pass individual pakfiles, or directories
full of them, to restrict the run.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, &fv)
			if err != nil {
				return err
			}
			cfg.Paths = args
			return runUnpack(cmd, cfg)
		},
	}

	addConfigFlags(cmd, &fv)
	cmd.Flags().BoolVarP(&fv.dryRun, "dry-run", "n", false, "List and map archives only; do not extract")
	cmd.Flags().BoolVar(&fv.noDiskCheck, "no-disk-check", false, "Skip the free-disk-space pre-flight check")
	cmd.Flags().BoolVar(&fv.noPathLenCheck, "no-path-len-check", false, "Skip the path-length pre-flight check")
	cmd.Flags().BoolVar(&fv.includeAudio, "include-audio", false, "Process audio-only pakfiles too")
	cmd.Flags().BoolVarP(&fv.assumeYes, "yes", "y", false, "Answer pre-flight prompts with yes")

	cmd.AddCommand(newSortCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}

// addConfigFlags registers the flags shared by the root and check
// commands.
func addConfigFlags(cmd *cobra.Command, fv *flagValues) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&fv.cfgFile, "config", "", "Config file (default: wldata.yaml in . or the user config dir)")
	f.StringVarP(&fv.extractTo, "extract-to", "o", def.ExtractDir, "Directory to extract data into")
	f.StringVar(&fv.installDir, "install", def.InstallDir, "Install root for Wonderlands")
	f.StringVar(&fv.crypto, "crypto", def.CryptoPath, "Path to crypto.json, for pakfile decryption")
	f.StringVar(&fv.unrealPak, "unrealpak", def.UnrealPak, "UnrealPak executable name or path")
	f.StringVar(&fv.wine, "wine", def.Wine, "Wine wrapper command (empty to run the tool directly)")
	f.StringVar(&fv.winePrefix, "wineprefix", def.WinePrefix, "WINEPREFIX for the wine wrapper")
	f.StringVar(&fv.color, "color", string(def.ColorMode), "Colored logs: auto | always | never")
	f.StringVarP(&fv.logFile, "log", "l", "", "Append logs to file")
	f.BoolVarP(&fv.verbose, "verbose", "v", false, "Verbose output")
}

// buildConfig layers defaults, config file, environment, and changed
// flags, then validates the result.
func buildConfig(cmd *cobra.Command, fv *flagValues) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := config.Load(&cfg, fv.cfgFile); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("extract-to") {
		cfg.ExtractDir = config.NormalizeDirArg(fv.extractTo)
	}
	if flags.Changed("install") {
		cfg.InstallDir = config.NormalizeDirArg(fv.installDir)
	}
	if flags.Changed("crypto") {
		cfg.CryptoPath = fv.crypto
	}
	if flags.Changed("unrealpak") {
		cfg.UnrealPak = fv.unrealPak
	}
	if flags.Changed("wine") {
		cfg.Wine = fv.wine
	}
	if flags.Changed("wineprefix") {
		cfg.WinePrefix = fv.winePrefix
	}
	cfg.ColorMode = config.ColorMode(fv.color)
	cfg.LogFile = fv.logFile
	cfg.Verbose = fv.verbose
	cfg.DryRun = fv.dryRun
	cfg.AssumeYes = fv.assumeYes
	if fv.noDiskCheck {
		cfg.DiskCheck = false
	}
	if fv.noPathLenCheck {
		cfg.PathLenCheck = false
	}
	if fv.includeAudio {
		cfg.SkipAudioPaks = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runUnpack(cmd *cobra.Command, cfg *config.Config) error {
	log, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner(version)

	// Only autodetect when discovery will actually use the install root.
	installRoot := cfg.InstallDir
	if len(cfg.Paths) == 0 {
		installRoot = install.FindRoot(cfg.InstallDir)
		if installRoot != cfg.InstallDir {
			log.Info("Autodetected install root: %s", installRoot)
		}
	}

	paks, label, err := pipeline.Discover(cfg.Paths, installRoot)
	if err != nil {
		return err
	}

	if cfg.SkipAudioPaks {
		audio := cfg.AudioSet()
		kept := paks[:0]
		for _, p := range paks {
			if p.AudioOnly(audio) {
				log.Info("Skipping %s: audio data only", filepath.Base(p.Filename))
				continue
			}
			kept = append(kept, p)
		}
		paks = kept
	}
	if len(paks) == 0 {
		return fmt.Errorf("no pakfiles left to process from %s", label)
	}
	log.Info("Processing %s from %s", display.Plural(len(paks), "pakfile"), label)

	extractAbs, err := filepath.Abs(cfg.ExtractDir)
	if err != nil {
		return err
	}
	cfg.ExtractDir = extractAbs
	if err := os.MkdirAll(cfg.ExtractDir, 0o755); err != nil {
		return err
	}

	if !cfg.DryRun {
		if err := preflight(cfg, paks, log); err != nil {
			return err
		}
		if err := ensureCrypto(cfg, log); err != nil {
			return err
		}
	}

	runner := pipeline.New(cfg, log,
		&unrealpak.ExecRunner{Opts: unrealpak.Options{
			Executable: cfg.UnrealPak,
			Wine:       cfg.Wine,
			WinePrefix: cfg.WinePrefix,
		}},
		cfg.Normalizer())

	_, err = runner.Run(cmd.Context(), paks)
	return err
}

// promptYesNo asks on stdout and reads one line from stdin. AssumeYes
// short-circuits it for non-interactive runs.
func promptYesNo(cfg *config.Config, question string) bool {
	if cfg.AssumeYes {
		return true
	}
	fmt.Printf("%s [y/N]? ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(line, "y")
}
