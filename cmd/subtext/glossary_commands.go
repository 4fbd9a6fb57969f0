package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"subtext/internal/glossary"
	"subtext/internal/language"
)

func newGlossaryCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string
	var targetFlag string

	glossaryCmd := &cobra.Command{
		Use:   "glossary",
		Short: "Maintain the terminology dictionary for a language pair",
	}

	glossaryCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "", "Source language code")
	glossaryCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "Target language code")
	glossaryCmd.MarkPersistentFlagRequired("source")
	glossaryCmd.MarkPersistentFlagRequired("target")

	openStore := func() (*glossary.Store, error) {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return nil, err
		}
		return glossary.Open(cfg.Glossary.Dir, language.Normalize(sourceFlag), language.Normalize(targetFlag))
	}

	glossaryCmd.AddCommand(newGlossaryAddCommand(openStore))
	glossaryCmd.AddCommand(newGlossaryRemoveCommand(openStore))
	glossaryCmd.AddCommand(newGlossaryListCommand(openStore))
	glossaryCmd.AddCommand(newGlossaryImportCommand(openStore))

	return glossaryCmd
}

type storeOpener func() (*glossary.Store, error)

func newGlossaryAddCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "add <term> <translation>",
		Short: "Add or replace a dictionary entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			if err := store.Add(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q -> %q (%d entries)\n", args[0], args[1], store.Len())
			return nil
		},
	}
}

func newGlossaryRemoveCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <term>",
		Short: "Remove a dictionary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			removed, err := store.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no entry for %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q (%d entries)\n", args[0], store.Len())
			return nil
		},
	}
}

func newGlossaryListCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dictionary entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}

			entries := store.Entries()
			terms := make([]string, 0, len(entries))
			for term := range entries {
				terms = append(terms, term)
			}
			sort.Strings(terms)

			rows := make([][]string, 0, len(terms))
			for _, term := range terms {
				rows = append(rows, []string{term, entries[term]})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Term", "Translation"}, rows))
			fmt.Fprintf(out, "%d entr%s in %s\n", len(terms), pluralY(len(terms)), store.Path())
			return nil
		},
	}
}

func newGlossaryImportCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries from a JSON object file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			count, err := store.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entr%s (%d total)\n", count, pluralY(count), store.Len())
			return nil
		},
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
