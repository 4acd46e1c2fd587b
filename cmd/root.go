// Package cmd implements the gpcdb command-line interface.
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mcgarrah/gpcdb/internal/config"
)

var (
	cfgPath string
	verbose bool
	quiet   bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gpcdb",
	Short: "Import the GS1 GPC classification hierarchy into a relational database",
	Long: `gpcdb imports the GS1 Global Product Classification (GPC) feed —
segments, families, classes, bricks, and brick attributes — into SQLite
or Postgres, and re-exports the populated tables as portable SQL.

Imports are idempotent: re-running against a populated database updates
descriptions in place and never duplicates or deletes rows.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		switch {
		case quiet:
			log.SetLevel(log.ErrorLevel)
		case verbose:
			log.SetLevel(log.DebugLevel)
		default:
			log.SetLevel(log.InfoLevel)
		}

		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all logging except errors")
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		return err
	}
	return nil
}
