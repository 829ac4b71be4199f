package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DefaultTemplate builds a minimal invoice template: a title, the column
// header on row 13, the content row 14, then a footer holding the total and
// amount-in-words rows.
func DefaultTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Border: thinBorder,
	})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	cells := map[string]string{
		"B2":  "INVOICE",
		"B13": "Folder",
		"C13": "Category",
		"D13": "Date",
		"E13": "Quantity",
		"F13": "Rate",
		"G13": "Amount",
		"B15": "Total",
		"B16": "In Words:",
	}
	for cell, value := range cells {
		if err := f.SetCellStr(sheet, cell, value); err != nil {
			return nil, fmt.Errorf("write %s: %w", cell, err)
		}
	}
	steps := []error{
		f.SetCellStyle(sheet, "B2", "B2", title),
		f.SetCellStyle(sheet, "B13", "G13", header),
		f.SetCellStyle(sheet, "B15", "G15", bold),
		f.MergeCell(sheet, "B16", "G16"),
		f.SetColWidth(sheet, "B", "C", 24),
		f.SetColWidth(sheet, "D", "G", 14),
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
