package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/estlin/paperbill/internal/model"
)

// kindCmd builds the full subcommand tree for one document kind. Estimates
// and invoices are structurally parallel applications sharing one store
// file, so the same constructors serve both.
func kindCmd(kind model.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Work with %ss", kind),
		Long: fmt.Sprintf(`Create, browse, and export %ss.

Every save persists the full record history and regenerates the %s
spreadsheet plus a print-ready PDF of the saved record.`, kind, kind),
	}

	cmd.AddCommand(newCmd(kind))
	cmd.AddCommand(editCmd(kind))
	cmd.AddCommand(duplicateCmd(kind))
	cmd.AddCommand(listCmd(kind))
	cmd.AddCommand(searchCmd(kind))
	cmd.AddCommand(showCmd(kind))
	cmd.AddCommand(statsCmd(kind))
	cmd.AddCommand(historyCmd(kind))
	cmd.AddCommand(deleteCmd(kind))
	cmd.AddCommand(exportCmd(kind))
	cmd.AddCommand(pdfCmd(kind))

	return cmd
}
