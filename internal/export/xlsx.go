package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the workbook to an .xlsx file at path.
func WriteXLSX(wb Workbook, path string) error {
	if len(wb.Sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sheet := range wb.Sheets {
		name := sheet.Name
		if i == 0 {
			// Rename the default sheet rather than leaving it empty.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename sheet %q: %w", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("failed to create sheet %q: %w", name, err)
			}
		}

		if err := f.SetSheetRow(name, "A1", &sheet.Header); err != nil {
			return fmt.Errorf("failed to write header for %q: %w", name, err)
		}
		for row, values := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, row+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell for row %d: %w", row+2, err)
			}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return fmt.Errorf("failed to write row %d of %q: %w", row+2, name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
