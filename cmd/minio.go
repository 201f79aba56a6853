package cmd

import (
	"fmt"
	"log"

	"SqueezeFM/config"
	"SqueezeFM/logger"
	"SqueezeFM/storage"

	"github.com/spf13/cobra"
)

var (
	minioPrefix string
	minioList   bool
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Inspect the downloads bucket",
	Long:  `Shows object counts and sizes for the MinIO downloads bucket, optionally listing every object under a prefix.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.InitLogger(logger.Config{Level: logger.LogLevel(cfg.LogLevel)})
		fmt.Printf("MinIO config: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}

		objects, stats, err := storage.ListBucketObjects(cfg.MinioBucket, minioPrefix)
		if err != nil {
			log.Fatalf("Failed to list bucket: %v", err)
		}

		fmt.Printf("Objects: %d (%s total), zip bundles: %d\n",
			stats.ObjectCount, storage.FormatSize(stats.TotalSize), stats.ZipCount)

		if minioList {
			for _, object := range objects {
				fmt.Printf("  %-60s %10s  %s\n",
					object.Key, storage.FormatSize(object.Size),
					object.LastModified.Format("2006-01-02 15:04"))
			}
		}
	},
}

func init() {
	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "", "only consider objects under this prefix")
	minioCmd.Flags().BoolVarP(&minioList, "list", "l", false, "list every object")
	rootCmd.AddCommand(minioCmd)
}
