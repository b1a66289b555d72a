package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/estlin/paperbill/internal/app"
	"github.com/estlin/paperbill/internal/cli"
	"github.com/estlin/paperbill/internal/export"
	"github.com/estlin/paperbill/internal/model"
)

// draftFlags collects the form fields shared by new and edit.
type draftFlags struct {
	number       string
	date         string
	dueDate      string
	items        []string
	taxRate      string
	discount     string
	businessName string
	clientName   string
	clientPhone  string
	clientAddr   string
	clientEmail  string
}

func (f *draftFlags) register(cmd *cobra.Command, kind model.Kind) {
	cmd.Flags().StringVar(&f.number, "number", "", "document number (default: next free number)")
	cmd.Flags().StringVar(&f.date, "date", "", "issue date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringArrayVar(&f.items, "item", nil, "line item as description:quantity:rate (repeatable)")
	cmd.Flags().StringVar(&f.taxRate, "tax", "", "tax rate percent")
	cmd.Flags().StringVar(&f.businessName, "business-name", "", "business name (default: from config)")
	cmd.Flags().StringVar(&f.clientName, "client-name", "", "client name")
	cmd.Flags().StringVar(&f.clientPhone, "client-phone", "", "client phone")
	cmd.Flags().StringVar(&f.clientAddr, "client-address", "", "client address")

	if kind == model.KindInvoice {
		cmd.Flags().StringVar(&f.dueDate, "due-date", "", "due date as YYYY-MM-DD (default: 30 days out)")
		cmd.Flags().StringVar(&f.clientEmail, "client-email", "", "client email")
	} else {
		cmd.Flags().StringVar(&f.discount, "discount", "", "flat discount amount")
	}
}

// draft builds an app.Draft from the flags, filling business details from
// configuration where no flag was given.
func (f *draftFlags) draft(sess *session) (app.Draft, error) {
	items, err := parseItemSpecs(f.items)
	if err != nil {
		return app.Draft{}, err
	}

	issueDate, err := parseDate(f.date, "date")
	if err != nil {
		return app.Draft{}, err
	}
	dueDate, err := parseDate(f.dueDate, "due-date")
	if err != nil {
		return app.Draft{}, err
	}

	business := sess.settings.Business
	if f.businessName != "" {
		business.Name = f.businessName
	}

	taxRate := f.taxRate
	if taxRate == "" {
		taxRate = sess.settings.DefaultTaxRate
	}

	return app.Draft{
		Number:    f.number,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Business:  business,
		Client: model.Party{
			Name:    f.clientName,
			Phone:   f.clientPhone,
			Address: f.clientAddr,
			Email:   f.clientEmail,
		},
		Items:    items,
		TaxRate:  taxRate,
		Discount: f.discount,
	}, nil
}

func newCmd(kind model.Kind) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: fmt.Sprintf("Create and save a new %s", kind),
		Long: fmt.Sprintf(`Create a new %s from line items and save it.

Rows with an empty description or a non-positive quantity contribute
nothing to the totals and are left off the saved record.`, kind),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx, kind)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := sess.close(); closeErr != nil {
					slog.Error("failed to close database", "error", closeErr)
				}
			}()

			draft, err := flags.draft(sess)
			if err != nil {
				return err
			}

			doc, err := sess.app.BuildDocument(draft)
			if err != nil {
				return reportValidation(err)
			}

			outcome, err := sess.app.Save(ctx, doc, false)
			if err != nil {
				if errors.Is(err, app.ErrCancelled) {
					fmt.Println(cli.SubtleStyle.Render("Save cancelled.")) //nolint:forbidigo // User-facing output
					return nil
				}
				return err
			}

			reportSave(sess, outcome)
			return nil
		},
	}

	flags.register(cmd, kind)
	return cmd
}

func editCmd(kind model.Kind) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "edit <number>",
		Short: fmt.Sprintf("Re-save an existing %s under its number", kind),
		Long: fmt.Sprintf(`Edit an existing %s in place.

Only the flags you pass change; every other field keeps its stored value.
The record stays at its position in the history.`, kind),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx, kind)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := sess.close(); closeErr != nil {
					slog.Error("failed to close database", "error", closeErr)
				}
			}()

			existing, ok := sess.store.Find(args[0])
			if !ok {
				return fmt.Errorf("no %s with number %s", kind, args[0])
			}

			draft, err := flags.draft(sess)
			if err != nil {
				return err
			}
			draft.Number = existing.Number
			applyExisting(&draft, existing, cmd)

			doc, err := sess.app.BuildDocument(draft)
			if err != nil {
				return reportValidation(err)
			}
			doc.CreatedAt = existing.CreatedAt

			outcome, err := sess.app.Save(ctx, doc, true)
			if err != nil {
				return err
			}

			reportSave(sess, outcome)
			return nil
		},
	}

	flags.register(cmd, kind)
	_ = cmd.Flags().MarkHidden("number")
	return cmd
}

// applyExisting fills draft fields the user did not override from the
// stored record.
func applyExisting(draft *app.Draft, existing model.Document, cmd *cobra.Command) {
	flags := cmd.Flags()

	if !flags.Changed("date") {
		draft.IssueDate = existing.IssueDate
	}
	if f := flags.Lookup("due-date"); f != nil && !f.Changed {
		draft.DueDate = existing.DueDate
	}
	if !flags.Changed("item") {
		draft.Items = rawItemsFromDocument(existing)
	}
	if !flags.Changed("tax") {
		draft.TaxRate = existing.TaxRatePercent.String()
	}
	if f := flags.Lookup("discount"); f != nil && !f.Changed {
		draft.Discount = existing.DiscountAmount.String()
	}
	if !flags.Changed("business-name") {
		draft.Business = existing.Business
	}
	if !flags.Changed("client-name") {
		draft.Client.Name = existing.Client.Name
	}
	if !flags.Changed("client-phone") {
		draft.Client.Phone = existing.Client.Phone
	}
	if !flags.Changed("client-address") {
		draft.Client.Address = existing.Client.Address
	}
	if f := flags.Lookup("client-email"); f != nil && !f.Changed {
		draft.Client.Email = existing.Client.Email
	}
}

func duplicateCmd(kind model.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <number>",
		Short: fmt.Sprintf("Copy an existing %s into a new record", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx, kind)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := sess.close(); closeErr != nil {
					slog.Error("failed to close database", "error", closeErr)
				}
			}()

			doc, err := sess.app.Duplicate(args[0])
			if err != nil {
				return err
			}

			outcome, err := sess.app.Save(ctx, doc, false)
			if err != nil {
				if errors.Is(err, app.ErrCancelled) {
					fmt.Println(cli.SubtleStyle.Render("Duplicate cancelled.")) //nolint:forbidigo // User-facing output
					return nil
				}
				return err
			}

			reportSave(sess, outcome)
			return nil
		},
	}
}

// reportValidation prints the blocking list of validation problems.
func reportValidation(err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(cli.FormatError("Please fix the following:")) //nolint:forbidigo // User-facing output
		for _, problem := range verr.Problems {
			fmt.Printf("  - %s\n", problem) //nolint:forbidigo // User-facing output
		}
		return errors.New("validation failed")
	}
	return err
}

// reportSave prints the save confirmation and the export side effects.
func reportSave(sess *session, outcome app.SaveOutcome) {
	verb := "saved"
	if outcome.Updated {
		verb = "updated"
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s %s %s (total %s %s)", //nolint:forbidigo // User-facing output
		outcome.Doc.Kind.Title(), outcome.Doc.Number, verb,
		sess.settings.Currency, model.FormatAmount(outcome.Doc.Total))))

	reportExport(outcome.Export)
}

// reportExport surfaces the per-path export results. Only the PDF path may
// warn; spreadsheet failures were already logged.
func reportExport(res export.SaveResult) {
	if res.PDFPath != "" {
		fmt.Printf("  PDF: %s\n", res.PDFPath) //nolint:forbidigo // User-facing output
	}
	if res.FallbackPath != "" {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("PDF rendering failed; print document written to %s", res.FallbackPath))) //nolint:forbidigo // User-facing output
	}
	if res.Warning != "" {
		fmt.Println(cli.FormatWarning(res.Warning)) //nolint:forbidigo // User-facing output
	}
	if res.WorkbookPath != "" {
		fmt.Printf("  Spreadsheet: %s\n", res.WorkbookPath) //nolint:forbidigo // User-facing output
	}
}
