package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

// NewRootCmd creates the root command. Without a subcommand it serves the gallery.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "media-gallery",
		Short: "A shuffled masonry gallery of photos and videos",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					log.Printf("Failed to load %s: %v", envFile, err)
				}
				return
			}
			if err := godotenv.Load(); err != nil {
				log.Println("No .env file found, using environment variables")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default is ./.env)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewCatalogueCmd())
	rootCmd.AddCommand(NewAssetsCmd())
	rootCmd.AddCommand(NewDeletionsCmd())

	return rootCmd
}
