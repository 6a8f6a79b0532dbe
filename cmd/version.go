package cmd

import (
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pid2go",
	Long:  `All software has versions. This is pid2go's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
