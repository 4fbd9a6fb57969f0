package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"subtext/internal/render"
	"subtext/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Export translations for human review and merge the edits back",
	}

	reviewCmd.AddCommand(newReviewExportCommand(ctx))
	reviewCmd.AddCommand(newReviewMergeCommand(ctx))

	return reviewCmd
}

func newReviewExportCommand(ctx *commandContext) *cobra.Command {
	var langFlag string
	var autoFlag bool
	var sourceFlag string
	var targetFlag string
	var noCacheFlag bool

	cmd := &cobra.Command{
		Use:   "export <video>",
		Short: "Translate a transcript and write the review artifacts",
		Long: `Translate a transcript and write the review artifacts.

The artifact directory holds the original text, the machine translation, a
segment snapshot, and an editable review file. Edit the TRANSLATED lines of
the review file, then run "subtext review merge" to fold the edits back in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := parseVideoID(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			translated, _, err := runTranslation(ctx, cmd, videoID, translationOptions{
				LanguageCode: langFlag,
				PreferAuto:   autoFlag,
				SourceLang:   sourceFlag,
				TargetLang:   targetFlag,
				BypassCache:  noCacheFlag,
			})
			if err != nil {
				return err
			}

			dir := review.ArtifactDir(cfg.Paths.ReviewDir, reviewProvider, videoID)
			if err := review.Serialize(dir, translated); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Review artifacts written to %s\n", dir)
			fmt.Fprintf(out, "Edit %s and run: subtext review merge %s\n",
				filepath.Join(dir, review.EditableFileName), videoID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Preferred track language code")
	cmd.Flags().BoolVar(&autoFlag, "auto", false, "Prefer auto-generated tracks")
	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source language override (default: track language)")
	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", "Target language code")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the transcript cache")
	cmd.MarkFlagRequired("target")

	return cmd
}

func newReviewMergeCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "merge <video>",
		Short: "Merge edited review files and render the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := parseVideoID(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			dir := review.ArtifactDir(cfg.Paths.ReviewDir, reviewProvider, videoID)
			merged, err := review.Merge(dir)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cmd.OutOrStdout(), outputFlag)
			if err != nil {
				return err
			}
			if err := render.Write(out, format, merged); err != nil {
				closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Merged %d segment(s) from %s\n", len(merged), dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format (text, srt, vtt, json)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default stdout)")

	return cmd
}
