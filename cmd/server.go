package cmd

import (
	"SqueezeFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the storefront HTTP server",
	Long:  `Starts the SqueezeFM HTTP server serving the catalog, licensing and favorites API.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
