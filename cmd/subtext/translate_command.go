package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtext/internal/captions"
	"subtext/internal/glossary"
	"subtext/internal/language"
	"subtext/internal/render"
	"subtext/internal/translate"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var langFlag string
	var autoFlag bool
	var sourceFlag string
	var targetFlag string
	var formatFlag string
	var outputFlag string
	var noCacheFlag bool

	cmd := &cobra.Command{
		Use:   "translate <video>",
		Short: "Fetch a transcript and translate it",
		Long: `Fetch a transcript and translate it through the configured language model.

Glossary entries for the language pair are applied to the model output, and
any terms the model missed are rewritten before rendering. The source language
defaults to the fetched track's language.`,
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

			out, closeOut, err := openOutput(cmd.OutOrStdout(), outputFlag)
			if err != nil {
				return err
			}
			if err := render.Write(out, format, translated); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Preferred track language code")
	cmd.Flags().BoolVar(&autoFlag, "auto", false, "Prefer auto-generated tracks")
	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source language override (default: track language)")
	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", "Target language code")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format (text, srt, vtt, json)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Bypass the transcript cache")
	cmd.MarkFlagRequired("target")

	return cmd
}

type translationOptions struct {
	LanguageCode string
	PreferAuto   bool
	SourceLang   string
	TargetLang   string
	BypassCache  bool
}

// runTranslation fetches a transcript and sends it through the translation
// client with the glossary for the language pair. It is shared by the
// translate command and the review export workflow.
func runTranslation(ctx *commandContext, cmd *cobra.Command, videoID string, opts translationOptions) ([]captions.TranslatedSegment, captions.Track, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, captions.Track{}, err
	}

	track, segments, source, err := ctx.fetchTranscript(cmd.Context(), videoID, fetchOptions{
		LanguageCode: opts.LanguageCode,
		PreferAuto:   opts.PreferAuto,
		BypassCache:  opts.BypassCache,
	})
	if err != nil {
		return nil, captions.Track{}, err
	}

	sourceLang := language.Normalize(opts.SourceLang)
	if sourceLang == "" {
		sourceLang = language.Normalize(track.LanguageCode)
	}
	targetLang := language.Normalize(opts.TargetLang)

	store, err := glossary.Open(cfg.Glossary.Dir, sourceLang, targetLang)
	if err != nil {
		return nil, captions.Track{}, err
	}

	translator, err := translate.NewClient(translate.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	if err != nil {
		return nil, captions.Track{}, err
	}

	translated, err := translator.Translate(cmd.Context(), segments, sourceLang, targetLang, store.Entries())
	if err != nil {
		return nil, captions.Track{}, err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Translated %d segment(s) %s -> %s (track %s via %s)\n",
		len(translated), sourceLang, targetLang, track.Key(), source)
	return translated, track, nil
}
