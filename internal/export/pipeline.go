package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/estlin/paperbill/internal/common"
	"github.com/estlin/paperbill/internal/model"
)

// Exporter writes export files for one document kind into a directory.
//
// Save-time exports are best effort: a failure never rolls back or blocks
// the save that triggered it. The PDF path gets one print-HTML fallback and
// a user-facing warning when both fail; the spreadsheet path only logs.
type Exporter struct {
	Dir      string
	Currency string
	Now      func() time.Time
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir, currency string) *Exporter {
	return &Exporter{Dir: dir, Currency: currency, Now: time.Now}
}

// SaveResult reports what AfterSave managed to produce.
type SaveResult struct {
	PDFPath      string // set when the PDF rendered
	FallbackPath string // set when the print-HTML fallback was used instead
	WorkbookPath string // set when the spreadsheet regenerated
	Warning      string // set when both the PDF and its fallback failed
}

// AfterSave regenerates the per-record PDF and the full workbook after a
// save. Always returns a result; inspect Warning for the one failure the
// user must hear about.
func (e *Exporter) AfterSave(ctx context.Context, doc model.Document, all []model.Document) SaveResult {
	var res SaveResult
	if ctx.Err() != nil {
		res.Warning = fmt.Sprintf("export skipped for %s %s: %v", doc.Kind.Title(), doc.Number, ctx.Err())
		return res
	}

	pdfPath, fellBack, err := e.ExportPDF(doc)
	switch {
	case err != nil:
		res.Warning = fmt.Sprintf(
			"could not generate a PDF or print document for %s %s; the record is saved, export it manually",
			doc.Kind.Title(), doc.Number)
	case fellBack:
		res.FallbackPath = pdfPath
	default:
		res.PDFPath = pdfPath
	}

	res.WorkbookPath = e.RefreshWorkbook(doc.Kind, all)

	return res
}

// RefreshWorkbook regenerates the full workbook as a background side
// effect: failures are logged, never returned. It reports the written path,
// or "" when nothing was written. An empty sequence leaves any existing
// file untouched.
func (e *Exporter) RefreshWorkbook(kind model.Kind, docs []model.Document) string {
	path, err := e.ExportWorkbook(kind, docs, nil)
	if err != nil {
		if !errors.Is(err, common.ErrNothingToExport) {
			common.LogError(err, "workbook regeneration failed", common.Fields{
				"kind": string(kind),
			})
		}
		return ""
	}
	return path
}

// ExportPDF renders one record to a PDF file, falling back to the
// print-ready HTML document when rendering fails. It returns the written
// path and whether the fallback was used.
func (e *Exporter) ExportPDF(doc model.Document) (string, bool, error) {
	if err := e.ensureDir(); err != nil {
		return "", false, err
	}

	path := filepath.Join(e.Dir, PDFFilename(doc))
	if err := WritePDF(doc, e.Currency, path); err != nil {
		common.LogError(err, "pdf generation failed, trying print fallback", common.Fields{
			"number": doc.Number,
		})
		fallback, fbErr := e.ExportPrintHTML(doc)
		if fbErr != nil {
			common.LogError(fbErr, "print fallback also failed", common.Fields{
				"number": doc.Number,
			})
			return "", false, fmt.Errorf("%w: %w", common.ErrExportFailed, err)
		}
		return fallback, true, nil
	}
	return path, false, nil
}

// ExportPrintHTML writes the print-ready HTML document for one record.
func (e *Exporter) ExportPrintHTML(doc model.Document) (string, error) {
	if err := e.ensureDir(); err != nil {
		return "", err
	}

	html, err := BuildPrintHTML(doc, e.Currency)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.Dir, PrintFilename(doc))
	if err := os.WriteFile(path, html, 0600); err != nil {
		return "", fmt.Errorf("failed to write print document: %w", err)
	}
	return path, nil
}

// ExportWorkbook writes the full four-sheet workbook for docs. onDoc, when
// non-nil, is invoked once per record while rows are assembled.
func (e *Exporter) ExportWorkbook(kind model.Kind, docs []model.Document, onDoc func()) (string, error) {
	if len(docs) == 0 {
		return "", common.ErrNothingToExport
	}
	if err := e.ensureDir(); err != nil {
		return "", err
	}

	wb := BuildWorkbook(kind, docs, onDoc)
	path := filepath.Join(e.Dir, WorkbookFilename(kind, e.Now()))
	if err := WriteXLSX(wb, path); err != nil {
		return "", err
	}

	slog.Debug("workbook written", "path", path, "records", len(docs))
	return path, nil
}

func (e *Exporter) ensureDir() error {
	if err := os.MkdirAll(e.Dir, 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	return nil
}
