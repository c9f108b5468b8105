package main

import (
	"context"
	"fmt"
	"time"

	"media-gallery/internal/config"
	"media-gallery/internal/platform/cache"
	"media-gallery/internal/platform/storage"
	"media-gallery/internal/services"

	"github.com/spf13/cobra"
)

const maintenanceTimeout = 5 * time.Minute

// NewAssetsCmd creates the assets command
func NewAssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage the photo and video files behind the catalogue",
	}
	cmd.AddCommand(newAssetsPushCmd())
	return cmd
}

func newAssetsPushCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload catalogue assets from a local directory to the storage bucket",
		Long: `Upload the file behind every catalogue entry from a local directory
(ASSETS_DIR by default) to the bucket configured by STORAGE_*, so the gallery
can run with ASSETS_BACKEND=minio.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if dir == "" {
				dir = cfg.Assets.Dir
			}

			entries, err := services.LoadSeed(cfg.Media)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), maintenanceTimeout)
			defer cancel()

			client, err := storage.NewMinIOClient(ctx, cfg.Storage, cfg.Assets.URLExpiry)
			if err != nil {
				return fmt.Errorf("failed to connect to storage: %w", err)
			}

			result, err := services.PushAssets(ctx, client, dir, entries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, src := range result.Missing {
				fmt.Fprintf(out, "missing  %s\n", src)
			}
			fmt.Fprintf(out, "uploaded %d of %d assets to %s\n",
				len(result.Uploaded), len(result.Uploaded)+len(result.Missing), cfg.Storage.BucketName)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the assets (default ASSETS_DIR)")
	return cmd
}

// NewDeletionsCmd creates the deletions command
func NewDeletionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deletions",
		Short: "Manage persisted deletions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget every persisted deletion so the next start shows the whole catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if !cfg.Cache.Enabled {
				return fmt.Errorf("deletion persistence is disabled (set CACHE_ENABLED=true)")
			}

			client, err := cache.NewRedisClient(cfg.Cache)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := services.ResetDeletions(cmd.Context(), client); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "persisted deletions cleared")
			return nil
		},
	})
	return cmd
}
