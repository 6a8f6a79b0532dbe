package cmd

import (
	"github.com/markusressel/pid2go/internal"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API and metrics endpoint",
	Long: `Starts the REST API to run and manage simulations over HTTP,
and the prometheus metrics endpoint if statistics are enabled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		printHeader()

		internal.RunServer()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
