package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/estlin/paperbill/internal/cli"
	"github.com/estlin/paperbill/internal/common"
	"github.com/estlin/paperbill/internal/model"
)

func exportCmd(kind model.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: fmt.Sprintf("Export all %ss to a spreadsheet workbook", kind),
		Long: fmt.Sprintf(`Export every saved %s to a single .xlsx workbook.

The workbook holds a summary sheet, an item detail sheet, and one sheet
each for business and client information.`, kind),
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

			docs := sess.store.Documents()
			bar := cli.NewExportProgress(len(docs))
			path, err := sess.app.Exporter.ExportWorkbook(kind, docs, func() {
				_ = bar.Add(1)
			})
			if errors.Is(err, common.ErrNothingToExport) {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("No %ss to export.", kind))) //nolint:forbidigo // User-facing output
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d %s(s) to %s", len(docs), kind, path))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func pdfCmd(kind model.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "pdf <number>",
		Short: fmt.Sprintf("Write a PDF for one saved %s", kind),
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

			path, fellBack, err := sess.app.Exporter.ExportPDF(doc)
			if err != nil {
				return fmt.Errorf("failed to export %s %s: %w", kind, args[0], err)
			}
			if fellBack {
				fmt.Println(cli.FormatWarning("PDF generation failed, wrote a print-ready HTML document instead")) //nolint:forbidigo // User-facing output
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %s", path))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
