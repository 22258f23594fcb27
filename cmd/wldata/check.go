package main

import (
	"github.com/spf13/cobra"

	"github.com/apocalyptech/wldata/internal/check"
	"github.com/apocalyptech/wldata/internal/install"
	"github.com/apocalyptech/wldata/internal/logging"
)

// newCheckCmd builds the `wldata check` subcommand, which runs the same
// environment diagnostics the unpack pre-flight does but reports all of
// them instead of stopping at the first problem. It carries its own flag
// state so flags.Changed reflects this command's invocation, not the
// root's.
func newCheckCmd() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:           "check",
		Short:         "Diagnose tool, crypto, install, and disk setup",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, &fv)
			if err != nil {
				return err
			}

			log, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			check.Run(cfg, install.FindRoot(cfg.InstallDir), log)
			return nil
		},
	}

	addConfigFlags(cmd, &fv)
	return cmd
}
