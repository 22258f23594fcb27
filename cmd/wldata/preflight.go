package main

import (
	"fmt"
	"os"

	"github.com/apocalyptech/wldata/internal/check"
	"github.com/apocalyptech/wldata/internal/config"
	"github.com/apocalyptech/wldata/internal/cryptoconf"
	"github.com/apocalyptech/wldata/internal/logging"
	"github.com/apocalyptech/wldata/internal/naming"
)

// preflight runs the pre-extraction checks: tool presence always, disk
// space and path length unless disabled. The space and length checks only
// warn and prompt; the original numbers are estimates, not guarantees.
func preflight(cfg *config.Config, paks []naming.PakFile, log *logging.Logger) error {
	if err := check.Tools(cfg.UnrealPak, cfg.Wine); err != nil {
		return err
	}

	if cfg.DiskCheck {
		requiredGB, freeGB, ok, err := check.DiskSpace(cfg.ExtractDir, paks)
		if err != nil {
			return err
		}
		if !ok {
			log.Warn("Extraction is predicted to need %dG but only %dG looks free", requiredGB, freeGB)
			if !promptYesNo(cfg, "Proceed with extraction anyway") {
				return fmt.Errorf("aborted: not enough free space (use --no-disk-check to skip)")
			}
		}
	}

	if cfg.PathLenCheck {
		if predicted, ok := check.PathLength(cfg.ExtractDir); !ok {
			log.Warn("Extraction may create paths of length %d, over the system maximum", predicted)
			if !promptYesNo(cfg, "Proceed with extraction anyway") {
				return fmt.Errorf("aborted: predicted path too long (use --no-path-len-check to skip)")
			}
		}
	}
	return nil
}

// ensureCrypto makes sure the crypto config exists, prompting for the
// encryption key and writing the file when it does not.
func ensureCrypto(cfg *config.Config, log *logging.Logger) error {
	if fileExists(cfg.CryptoPath) {
		return nil
	}

	fmt.Printf(`
The UnrealPak crypto-config file %q could not be found.

Enter the pakfile encryption key below to create one automatically. An
internet search for 'borderlands 3 pakfile aes key' should bring it up.

`, cfg.CryptoPath)

	fmt.Print("Input Encryption Key> ")
	var input string
	if _, err := fmt.Scanln(&input); err != nil {
		return fmt.Errorf("reading encryption key: %w", err)
	}

	key, err := cryptoconf.NormalizeKey(input)
	if err != nil {
		return err
	}
	if !cryptoconf.Matches(key) {
		log.Warn("The key does not match the expected pakfile encryption key")
		if !promptYesNo(cfg, fmt.Sprintf("Proceed with creating %q anyway", cfg.CryptoPath)) {
			return fmt.Errorf("aborted: encryption key rejected")
		}
	}
	if err := cryptoconf.Write(cfg.CryptoPath, key); err != nil {
		return err
	}
	log.Success("Created %q", cfg.CryptoPath)
	return nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
