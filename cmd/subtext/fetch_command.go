package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subtext/internal/captions"
	"subtext/internal/render"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var langFlag string
	var autoFlag bool
	var allFlag bool
	var formatFlag string
	var outputFlag string
	var noCacheFlag bool

	cmd := &cobra.Command{
		Use:   "fetch <video>",
		Short: "Fetch a caption transcript",
		Long: `Fetch a caption transcript through the tiered source chain.

Without --lang the first track in the catalog wins, with --auto breaking ties
toward auto-generated tracks. With --all every track in the catalog is fetched
and written as one file per track.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := parseVideoID(args[0])
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			if allFlag {
				return runFetchAll(ctx, cmd, videoID, format, outputFlag)
			}

			track, segments, source, err := ctx.fetchTranscript(cmd.Context(), videoID, fetchOptions{
				LanguageCode: langFlag,
				PreferAuto:   autoFlag,
				BypassCache:  noCacheFlag,
			})
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cmd.OutOrStdout(), outputFlag)
			if err != nil {
				return err
			}
			if err := render.Write(out, format, captions.PassThrough(segments)); err != nil {
				closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Fetched %d segment(s) [%s/%s] via %s\n",
				len(segments), track.LanguageCode, kindLabel(track.AutoGenerated), source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Preferred track language code")
	cmd.Flags().BoolVar(&autoFlag, "auto", false, "Prefer auto-generated tracks")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Fetch every track in the catalog")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format (text, srt, vtt, json)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default stdout; a directory with --all)")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the transcript cache")

	return cmd
}

func runFetchAll(ctx *commandContext, cmd *cobra.Command, videoID string, format render.Format, outputDir string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.Paths.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	resolver, err := ctx.newResolver()
	if err != nil {
		return err
	}
	results, err := resolver.FetchAll(cmd.Context(), videoID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var written, failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(out, "skip %s: %v\n", result.Track.Key(), result.Err)
			continue
		}
		name := videoID + "." + result.Track.LanguageCode
		if result.Track.AutoGenerated {
			name += ".auto"
		}
		path := filepath.Join(outputDir, name+format.Extension())
		if err := writeRendered(path, format, captions.PassThrough(result.Segments)); err != nil {
			return err
		}
		written++
		fmt.Fprintf(out, "wrote %s (%d segments via %s)\n", path, len(result.Segments), result.Source)
	}

	fmt.Fprintf(out, "%d file(s) written, %d track(s) failed\n", written, failed)
	return nil
}

func writeRendered(path string, format render.Format, segments []captions.TranslatedSegment) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := render.Write(file, format, segments); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func kindLabel(auto bool) string {
	if auto {
		return "auto"
	}
	return "manual"
}
