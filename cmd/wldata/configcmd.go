package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apocalyptech/wldata/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the wldata config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file populated with the defaults",
		Long: `Write a config file populated with the defaults.

With no path, wldata.yaml is created in the working directory. Existing
files are never overwritten.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "wldata.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	return cmd
}
