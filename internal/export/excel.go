// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pogo-digest/pkg/types"
)

// WriteWorkbook renders the events digest workbook: an All sheet with
// every event, an Events sheet with only dated rows, and an Undated
// sheet with the rest.
func WriteWorkbook(path string, events []types.Record) error {
	var dated, undated []types.Record
	for _, rec := range events {
		if rec.Str("Start Date") != "" {
			dated = append(dated, rec)
		} else {
			undated = append(undated, rec)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "All"); err != nil {
		return fmt.Errorf("renaming workbook sheet: %w", err)
	}
	sheets := []struct {
		name string
		rows []types.Record
	}{
		{"All", events},
		{"Events", dated},
		{"Undated", undated},
	}
	for _, sheet := range sheets {
		if sheet.name != "All" {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet.name, err)
			}
		}
		if err := fillSheet(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func fillSheet(f *excelize.File, sheet string, records []types.Record) error {
	header := Header(types.DomainEvents)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}

	for i, rec := range records {
		row := Row(types.DomainEvents, rec)
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing %s row %d: %w", sheet, i+2, err)
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
