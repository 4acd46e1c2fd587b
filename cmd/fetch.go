package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcgarrah/gpcdb/internal/fetch"
)

var (
	fetchURL      string
	fetchCacheDir string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the GPC feed, falling back to the cached copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := fetchURL
		if url == "" {
			url = cfg.FeedURL
		}
		dir := fetchCacheDir
		if dir == "" {
			dir = cfg.CacheDir
		}

		f := fetch.New(dir)
		path, err := f.Fetch(cmd.Context(), url)
		if err != nil {
			return err
		}
		cmd.Println(path)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "Feed URL (default from config)")
	fetchCmd.Flags().StringVar(&fetchCacheDir, "cache-dir", "", "Cache directory (default from config)")
	rootCmd.AddCommand(fetchCmd)
}
