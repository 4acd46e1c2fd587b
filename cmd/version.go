package cmd

import "github.com/spf13/cobra"

// version is stamped at build time with -ldflags "-X ...cmd.version=".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gpcdb version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("gpcdb " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
