package spreadsheet

import (
	"fmt"
	"strconv"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// Bank layout rows. Everything from BankSummaryRow down is replaced.
const (
	BankDateRow    = 8
	BankNumberRow  = 9
	BankSummaryRow = 13
	BankWordsRow   = 15
	BankDetailsRow = 19
	bankDateFormat = "2006-01-02"
)

var mediumBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 2},
	{Type: "right", Color: "000000", Style: 2},
	{Type: "top", Color: "000000", Style: 2},
	{Type: "bottom", Color: "000000", Style: 2},
}

type bankCell struct {
	cell  string
	value any
}

// renderBank writes the summary invoice: issue date and number in the header,
// unit and amount totals, the amount in words and a bordered bank details block.
func (r *Renderer) renderBank(f *excelize.File, sheet string, doc domain.InvoiceDocument) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read template rows: %w", err)
	}
	if _, err := cutMerges(f, sheet, BankSummaryRow); err != nil {
		return err
	}
	if err := clearRows(f, sheet, BankSummaryRow, len(rows)); err != nil {
		return err
	}

	date := strconv.Itoa(BankDateRow)
	number := strconv.Itoa(BankNumberRow)
	summary := strconv.Itoa(BankSummaryRow)
	cells := []bankCell{
		{"B" + date, "Date:"},
		{"C" + date, doc.Lines[0].Date.In(r.location).Format(bankDateFormat)},
		{"B" + number, "Invoice No:"},
		{"C" + number, doc.Reference},
		{"B" + summary, "Total Units:"},
		{"C" + summary, doc.TotalQuantity},
		{"D" + summary, fmt.Sprintf("Total Amount (%s):", doc.Currency)},
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheet, c.cell, c.value); err != nil {
			return fmt.Errorf("write %s: %w", c.cell, err)
		}
	}
	if err := f.SetCellFloat(sheet, "E"+summary, doc.TotalAmount.InexactFloat64(), 2, 64); err != nil {
		return fmt.Errorf("write total amount: %w", err)
	}

	if doc.AmountInWords != "" {
		words := strconv.Itoa(BankWordsRow)
		if err := f.SetCellStr(sheet, "B"+words, doc.AmountInWords); err != nil {
			return fmt.Errorf("write amount in words: %w", err)
		}
		if err := f.MergeCell(sheet, "B"+words, "E"+words); err != nil {
			return fmt.Errorf("merge amount in words: %w", err)
		}
	}
	return writeBankDetails(f, sheet, doc.BankDetails)
}

func writeBankDetails(f *excelize.File, sheet string, details []string) error {
	if len(details) == 0 {
		return nil
	}
	heading, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12, Family: "Arial"}})
	if err != nil {
		return fmt.Errorf("create bank heading style: %w", err)
	}
	boxed, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Family: "Arial"},
		Border:    mediumBorder,
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create bank details style: %w", err)
	}

	title := "B" + strconv.Itoa(BankDetailsRow)
	if err := f.SetCellStr(sheet, title, "BANK DETAILS"); err != nil {
		return fmt.Errorf("write bank heading: %w", err)
	}
	if err := f.SetCellStyle(sheet, title, title, heading); err != nil {
		return fmt.Errorf("style bank heading: %w", err)
	}
	for i, line := range details {
		cell := "B" + strconv.Itoa(BankDetailsRow+1+i)
		if err := f.SetCellStr(sheet, cell, line); err != nil {
			return fmt.Errorf("write bank details: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, boxed); err != nil {
			return fmt.Errorf("style bank details: %w", err)
		}
	}
	return nil
}
