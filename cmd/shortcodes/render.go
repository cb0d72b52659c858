package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/shortcodes"
	"github.com/eringen/shortcodes/markdown"
)

var (
	renderPost     string
	renderMarkdown bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Expand the shortcodes in a file, or stdin, against the site database",
	Long: `Expand the shortcodes in a file and print the result. With no file, or with
"-", the content is read from stdin. Output a shortcode echoes is printed
before the expanded content.`,
	Example: `  echo '(c) [date format="Y"] [site-name]' | shortcodes render
  shortcodes render --post hello --markdown post.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		cfg := siteConfig()
		store, err := shortcodes.NewStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		logger := newLogger()
		site := shortcodes.NewSite(cfg, store, shortcodes.NewPostCache(store, 0), logger)
		reg := shortcodes.NewRegistry(site, logger)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if renderPost != "" {
			post, err := store.GetPostAny(renderPost)
			if err != nil {
				return fmt.Errorf("post %s: %w", renderPost, err)
			}
			ctx = shortcodes.WithPost(ctx, post)
		}

		out := cmd.OutOrStdout()
		expanded := reg.Expand(ctx, out, content)
		if renderMarkdown {
			return markdown.Render(out, expanded)
		}
		_, err = io.WriteString(out, expanded)
		return err
	},
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}

func init() {
	renderCmd.Flags().StringVar(&renderPost, "post", "", "render as the post with this slug, for [title]")
	renderCmd.Flags().BoolVar(&renderMarkdown, "markdown", false, "render the expanded content as Markdown")
	rootCmd.AddCommand(renderCmd)
}
