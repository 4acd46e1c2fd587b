package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mcgarrah/gpcdb/api"
	"github.com/mcgarrah/gpcdb/internal/feed"
	"github.com/mcgarrah/gpcdb/internal/importer"
	"github.com/mcgarrah/gpcdb/internal/store"
)

var (
	importXMLFile  string
	importJSONFile string
	importDSN      string
	importBackend  string
	importSegment  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a GPC feed file into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (importXMLFile == "") == (importJSONFile == "") {
			return fmt.Errorf("exactly one of --xml-file or --json-file is required")
		}

		var (
			tree *api.Schema
			err  error
		)
		if importXMLFile != "" {
			tree, err = feed.LoadXML(importXMLFile)
		} else {
			tree, err = feed.LoadJSON(importJSONFile)
		}
		if err != nil {
			return err
		}

		tree = tree.Filter(importSegment)
		if tree.Empty() {
			log.Warn("no segments matched; nothing to import")
		}

		st, err := store.Open(cmd.Context(), backendOrDefault(importBackend), dsnOrDefault(importDSN))
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		sum, err := importer.ImportTree(cmd.Context(), tree, st, importer.NopObserver{})
		if err != nil {
			return err
		}
		printSummary(cmd, sum)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importXMLFile, "xml-file", "", "Path to the GPC XML feed file")
	importCmd.Flags().StringVar(&importJSONFile, "json-file", "", "Path to the GPC JSON feed file")
	importCmd.Flags().StringVar(&importDSN, "db", "", "Database path (sqlite) or connection string (postgres)")
	importCmd.Flags().StringVar(&importBackend, "backend", "", "Database backend: sqlite or postgres")
	importCmd.Flags().StringVar(&importSegment, "segment", "", "Import only the segment with this code")
	rootCmd.AddCommand(importCmd)
}

func backendOrDefault(backend string) string {
	if backend != "" {
		return backend
	}
	return cfg.Database.Backend
}

func dsnOrDefault(dsn string) string {
	if dsn != "" {
		return dsn
	}
	return cfg.Database.DSN
}

func printSummary(cmd *cobra.Command, sum importer.Summary) {
	cmd.Printf("%-17s %9s %9s %9s\n", "level", "processed", "created", "updated")
	for _, l := range importer.Levels {
		c := sum.Level(l)
		cmd.Printf("%-17s %9d %9d %9d\n", string(l), c.Processed(), c.Created, c.Updated)
	}
}
