package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/shortcodes"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the registered shortcode tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Registration never touches the host.
		reg := shortcodes.NewRegistry(nil, nil)
		for _, tag := range reg.Tags() {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shortcodes %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd, versionCmd)
}
