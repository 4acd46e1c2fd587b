package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mcgarrah/gpcdb/internal/export"
	"github.com/mcgarrah/gpcdb/internal/store"
)

var (
	exportDSN     string
	exportBackend string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the classification tables as portable SQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cmd.Context(), backendOrDefault(exportBackend), dsnOrDefault(exportDSN))
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		// An empty database still yields a valid DDL-only dump.
		if err := st.EnsureSchema(cmd.Context()); err != nil {
			return err
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		return export.Dump(cmd.Context(), st, out)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDSN, "db", "", "Database path (sqlite) or connection string (postgres)")
	exportCmd.Flags().StringVar(&exportBackend, "backend", "", "Database backend: sqlite or postgres")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
