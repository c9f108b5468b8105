package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"media-gallery/internal/config"
	"media-gallery/internal/domain/media"
	"media-gallery/internal/gallery"
	"media-gallery/internal/services"

	"github.com/spf13/cobra"
)

type catalogueOutput struct {
	Filter  media.Filter  `json:"filter"`
	Counts  media.Counts  `json:"counts"`
	Entries []media.Entry `json:"entries"`
}

// NewCatalogueCmd creates the catalogue command
func NewCatalogueCmd() *cobra.Command {
	var (
		seedFile    string
		shuffleSeed uint64
		filter      string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Print the shuffled catalogue",
		Long:  `Shuffle the catalogue the way the gallery does at startup and print it with its counts.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := media.ParseFilter(filter)
			if err != nil {
				return err
			}

			entries, err := services.LoadSeed(config.MediaConfig{SeedFile: seedFile})
			if err != nil {
				return err
			}

			rng, err := services.NewRandomSource(shuffleSeed)
			if err != nil {
				return err
			}

			store := gallery.NewStore(rng)
			store.Initialize(entries)
			store.SetFilter(f)

			out := catalogueOutput{
				Filter:  store.Filter(),
				Counts:  store.Counts(),
				Entries: store.Visible(),
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return printCatalogue(cmd, out)
		},
	}

	cmd.Flags().StringVar(&seedFile, "seed-file", os.Getenv("MEDIA_SEED_FILE"), "YAML catalogue to load instead of the built-in one")
	cmd.Flags().Uint64Var(&shuffleSeed, "shuffle-seed", 0, "seed for a reproducible shuffle (0 picks one at random)")
	cmd.Flags().StringVar(&filter, "filter", string(media.FilterAll), "all, photo or video")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON")

	return cmd
}

func printCatalogue(cmd *cobra.Command, out catalogueOutput) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSIZE\tNAME\tSRC")
	for _, e := range out.Entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, gallery.Badge(e.Kind), gallery.FormatSize(e.SizeBytes), e.Name, e.Src)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "\nAll Media (%d)  Photos (%d)  Videos (%d)\n",
		out.Counts.Total, out.Counts.Photos, out.Counts.Videos)
	return err
}
