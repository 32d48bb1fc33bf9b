package cmd

import (
	"github.com/bgraf/trackmix/cmd/serve"
	"github.com/bgraf/trackmix/config"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [SRC...]",
	Short: "Serve loaded tracks over HTTP",
	Long: `Starts the HTTP API. Tracks given as arguments are loaded before the
server starts; more tracks can be uploaded or fetched by URL later.`,
	RunE: serve.RunServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Listen address (default :8000)")
	bindFlag(serveCmd, config.KeyServeAddress, "address")
}
