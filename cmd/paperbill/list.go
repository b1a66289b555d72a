package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/estlin/paperbill/internal/cli"
	"github.com/estlin/paperbill/internal/model"
	"github.com/estlin/paperbill/internal/tui"
)

func listCmd(kind model.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: fmt.Sprintf("List saved %ss, optionally filtered", kind),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, kind, strings.Join(args, " "))
		},
	}
}

func searchCmd(kind model.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: fmt.Sprintf("Search %ss by number, client, or business name", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, kind, args[0])
		},
	}
}

func runSearch(cmd *cobra.Command, kind model.Kind, query string) error {
	sess, err := openSession(cmd.Context(), kind)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sess.close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	docs := sess.store.Search(query)

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s History", kind.Title())))      //nolint:forbidigo // User-facing output
	fmt.Println(cli.FormatDocumentList(docs, sess.settings.Currency))          //nolint:forbidigo // User-facing output
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d record(s)", len(docs)))) //nolint:forbidigo // User-facing output
	return nil
}

func showCmd(kind model.Kind) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: fmt.Sprintf("Preview one %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), kind)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := sess.close(); closeErr != nil {
					slog.Error("failed to close database", "error", closeErr)
				}
			}()

			doc, ok := sess.store.Find(args[0])
			if !ok {
				return fmt.Errorf("no %s with number %s", kind, args[0])
			}

			if asHTML {
				path, htmlErr := sess.app.Exporter.ExportPrintHTML(doc)
				if htmlErr != nil {
					return htmlErr
				}
				fmt.Printf("Print document: %s\n", path) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatDocument(doc, sess.settings.Currency)) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "write a print-ready HTML document instead")
	return cmd
}

func statsCmd(kind model.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: fmt.Sprintf("Show %s counts and revenue", kind),
		Long: fmt.Sprintf(`Show statistics over all saved %ss.

Month and year figures are a snapshot against today's calendar date.`, kind),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context(), kind)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := sess.close(); closeErr != nil {
					slog.Error("failed to close database", "error", closeErr)
				}
			}()

			stats := sess.store.Summarize(time.Now())
			fmt.Println(cli.FormatStats(kind, stats, sess.settings.Currency)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func historyCmd(kind model.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: fmt.Sprintf("Browse %ss interactively with live search", kind),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context(), kind)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := sess.close(); closeErr != nil {
					slog.Error("failed to close database", "error", closeErr)
				}
			}()

			return tui.Run(sess.store, sess.settings.Currency)
		},
	}
}
