package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtext/internal/language"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <video>",
		Short: "List the available caption tracks for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := parseVideoID(args[0])
			if err != nil {
				return err
			}

			resolver, err := ctx.newResolver()
			if err != nil {
				return err
			}

			catalog, err := resolver.ListTracks(cmd.Context(), videoID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(catalog.Tracks))
			for _, track := range catalog.Tracks {
				name := track.DisplayName
				if name == "" {
					name = language.DisplayName(track.LanguageCode)
				}
				rows = append(rows, []string{
					track.LanguageCode,
					name,
					yesNo(track.AutoGenerated),
				})
			}

			fmt.Fprintln(out, renderTable(out, []string{"Language", "Name", "Auto"}, rows))
			fmt.Fprintf(out, "%d track(s) via %s\n", len(catalog.Tracks), catalog.Source)
			return nil
		},
	}
}
