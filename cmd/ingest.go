package cmd

import (
	"fmt"
	"log"

	"SqueezeFM/config"
	"SqueezeFM/core/ingest"
	"SqueezeFM/db"
	"SqueezeFM/logger"
	"SqueezeFM/repository"

	"github.com/spf13/cobra"
)

var ingestFile string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import catalog track JSON into the store",
	Long:  `Imports track JSON files (a single object or an array) from the import directory, or one specific file, into the catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.InitLogger(logger.Config{Level: logger.LogLevel(cfg.LogLevel)})

		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.DB.Close()

		if err := db.InitDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}

		repo := repository.NewMySQLTrackRepository()

		var count int
		var err error
		if ingestFile != "" {
			count, err = ingest.ImportFile(ingestFile, repo)
		} else {
			count, err = ingest.ImportDir(cfg.ImportDir, repo)
		}
		if err != nil {
			log.Fatalf("Import failed after %d tracks: %v", count, err)
		}
		fmt.Printf("Imported %d tracks.\n", count)
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "import a single JSON file instead of the import directory")
	rootCmd.AddCommand(ingestCmd)
}
