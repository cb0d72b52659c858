package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/shortcodes"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load options, theme mods, menus and posts from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := shortcodes.LoadSeed(args[0])
		if err != nil {
			return err
		}
		store, err := shortcodes.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ApplySeed(seed); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d options, %d theme mods, %d menus, %d posts into %s\n",
			len(seed.Options), len(seed.ThemeMods), len(seed.Menus), len(seed.Posts), dbPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
