package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/shortcodes"
)

var (
	serveAddr   string
	serveStatic string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. ADMIN_PASSWORD and SESSION_SECRET must be set.
COOKIE_SECURE=true marks session cookies as HTTPS only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := siteConfig()
		cfg.Addr = serveAddr
		cfg.AdminPassword = shortcodes.MustEnv("ADMIN_PASSWORD")
		cfg.SessionSecret = shortcodes.MustEnv("SESSION_SECRET")
		cfg.CookieSecure = shortcodes.EnvOr("COOKIE_SECURE", "") == "true"

		app := shortcodes.New(cfg, shortcodes.WithStaticDir(serveStatic))
		defer app.Close()
		return app.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", shortcodes.EnvOr("ADDR", ":3000"), "listen address")
	serveCmd.Flags().StringVar(&serveStatic, "static", "public", "directory served under /public")
	rootCmd.AddCommand(serveCmd)
}
