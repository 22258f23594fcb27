package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apocalyptech/wldata/internal/naming"
)

// newSortCmd builds the `wldata sort` subcommand: the standalone
// pak-ordering utility. It parses every name it is given and prints them
// in processing order, so the first line is the archive extracted first
// and the last line wins any overwrite.
func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort [pakname ...]",
		Short: "Print pak filenames in processing order",
		Long: `Print pak filenames in processing order.

Names are taken from the arguments, or from stdin one per line when no
arguments are given. A name that does not match the pak naming grammar
is an error.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				sc := bufio.NewScanner(os.Stdin)
				for sc.Scan() {
					if line := sc.Text(); line != "" {
						names = append(names, line)
					}
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}

			paks := make([]naming.PakFile, 0, len(names))
			for _, name := range names {
				pf, err := naming.ParsePakName(name)
				if err != nil {
					return err
				}
				paks = append(paks, pf)
			}

			naming.Sort(paks)
			for _, p := range paks {
				fmt.Fprintln(cmd.OutOrStdout(), p.Filename)
			}
			return nil
		},
	}
}
