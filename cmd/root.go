package cmd

import (
	"fmt"
	"log"
	"os"

	"SqueezeFM/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "squeezefm",
	Short: "SqueezeFM is a royalty-free music licensing storefront.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting SqueezeFM storefront server...")
		// server.Start handles its own port and logging for startup.
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
