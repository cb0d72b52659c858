// Command shortcodes serves a shortcode-enabled site and expands shortcodes
// from the command line.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/shortcodes"
)

// version is set at build time via ldflags.
var version = "dev"

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "shortcodes",
	Short: "Serve a site whose content embeds [shortcodes]",
	Long: `shortcodes serves posts stored in SQLite and replaces bracketed tags such as
[date], [site-name], [menu] and [logo] with live site data.

The database defaults to $DATABASE_PATH, or data/site.db.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", shortcodes.EnvOr("DATABASE_PATH", "data/site.db"), "SQLite database path")
}

// siteConfig reads the site settings shared by every command from the
// environment.
func siteConfig() shortcodes.SiteConfig {
	return shortcodes.SiteConfig{
		Name:         shortcodes.EnvOr("SITE_NAME", ""),
		URL:          shortcodes.EnvOr("SITE_URL", ""),
		Description:  shortcodes.EnvOr("SITE_DESCRIPTION", ""),
		AdminEmail:   shortcodes.EnvOr("ADMIN_EMAIL", ""),
		Timezone:     shortcodes.EnvOr("SITE_TIMEZONE", ""),
		DatabasePath: dbPath,
	}
}

func newLogger() *log.Logger {
	logger := log.New("shortcodes")
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.WARN)
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
