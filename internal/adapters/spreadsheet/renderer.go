package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/core/ports"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
	"github.com/xuri/excelize/v2"
)

const (
	dateFormat   = "Jan 02, 2006"
	totalMarker  = "Total"
	wordsMarker  = "In Words"
	firstLineCol = 2 // B
	lastLineCol  = 7 // G
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// Renderer splices invoice lines into an xlsx template.
type Renderer struct {
	location *time.Location
}

// NewRenderer creates a renderer writing line dates in loc.
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{location: loc}
}

var _ ports.InvoiceRenderer = (*Renderer)(nil)

// capturedCell is a template cell copied by value before the body is cleared.
type capturedCell struct {
	col      int
	value    string
	numeric  bool
	formula  string
	styleID  int
	hasStyle bool
}

type capturedRow struct {
	height float64
	cells  []capturedCell
}

// label is the column B text of the row.
func (r capturedRow) label() string {
	for _, c := range r.cells {
		if c.col == 2 {
			return c.value
		}
	}
	return ""
}

type capturedMerge struct {
	startCol, startRow int
	endCol, endRow     int
}

// Render returns the xlsx bytes of doc laid out on template.
func (r *Renderer) Render(ctx context.Context, template []byte, doc domain.InvoiceDocument) ([]byte, error) {
	if len(doc.Lines) == 0 {
		return nil, ErrNoLines
	}
	f, err := excelize.OpenReader(bytes.NewReader(template))
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	switch doc.Layout {
	case domain.LayoutItemized:
		err = r.renderItemized(ctx, f, sheet, doc)
	case domain.LayoutBank:
		err = r.renderBank(f, sheet, doc)
	default:
		err = fmt.Errorf("unknown invoice layout %d", uint8(doc.Layout))
	}
	if err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// renderItemized plans the rows from the template shape, snapshots the body,
// clears it and writes the plan in one pass.
func (r *Renderer) renderItemized(ctx context.Context, f *excelize.File, sheet string, doc domain.InvoiceDocument) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read template rows: %w", err)
	}
	plan, err := PlanRows(len(doc.Lines), len(rows), findFooter(rows))
	if err != nil {
		return err
	}
	if !plan.HasFooter() {
		middleware.GetLoggerFromCtx(ctx).Warn("Invoice template has no footer, totals are not written", slog.String("sheet", sheet))
	}

	lineStyles, err := r.lineStyles(f, sheet)
	if err != nil {
		return err
	}
	width := lastLineCol
	for _, row := range rows {
		width = max(width, len(row))
	}
	body, err := captureRows(f, sheet, ContentStartRow, len(rows), width)
	if err != nil {
		return err
	}
	merges, err := cutMerges(f, sheet, ContentStartRow)
	if err != nil {
		return err
	}
	if err := clearRows(f, sheet, ContentStartRow, len(rows)); err != nil {
		return err
	}

	for i, planned := range plan.Rows() {
		out := plan.OutputRow(i)
		switch planned.Source {
		case FromLine:
			err = r.writeLine(f, sheet, out, doc.Lines[planned.Index], lineStyles)
		case FromTemplate:
			captured := body[planned.Index]
			err = writeCaptured(f, sheet, out, captured)
			if err == nil && planned.Footer {
				err = writeTotals(f, sheet, out, captured.label(), doc)
			}
		}
		if err != nil {
			return err
		}
	}
	return restoreMerges(f, sheet, plan, merges)
}

// findFooter returns the first row from ContentStartRow whose column B contains
// the total marker, or 0.
func findFooter(rows [][]string) int {
	for r := ContentStartRow; r <= len(rows); r++ {
		row := rows[r-1]
		if len(row) > 1 && strings.Contains(row[1], totalMarker) {
			return r
		}
	}
	return 0
}

// lineStyles derives the B..G line styles from the template content row with a thin border.
func (r *Renderer) lineStyles(f *excelize.File, sheet string) (map[int]int, error) {
	styles := make(map[int]int, lastLineCol-firstLineCol+1)
	for col := firstLineCol; col <= lastLineCol; col++ {
		cell, _ := excelize.CoordinatesToCellName(col, ContentStartRow)
		base := &excelize.Style{}
		if id, err := f.GetCellStyle(sheet, cell); err == nil && id != 0 {
			if st, err := f.GetStyle(id); err == nil && st != nil {
				base = st
			}
		}
		base.Border = thinBorder
		id, err := f.NewStyle(base)
		if err != nil {
			return nil, fmt.Errorf("create line style: %w", err)
		}
		styles[col] = id
	}
	return styles, nil
}

func (r *Renderer) writeLine(f *excelize.File, sheet string, row int, line domain.InvoiceLine, styles map[int]int) error {
	cell := func(col int) string {
		name, _ := excelize.CoordinatesToCellName(col, row)
		return name
	}
	writes := []func() error{
		func() error { return f.SetCellStr(sheet, cell(2), line.Folder) },
		func() error { return f.SetCellStr(sheet, cell(3), line.Category) },
		func() error { return f.SetCellStr(sheet, cell(4), line.Date.In(r.location).Format(dateFormat)) },
		func() error { return f.SetCellValue(sheet, cell(5), line.Quantity) },
		func() error { return f.SetCellFloat(sheet, cell(6), line.Rate.InexactFloat64(), 2, 64) },
		func() error { return f.SetCellFloat(sheet, cell(7), line.Amount.InexactFloat64(), 2, 64) },
	}
	for _, write := range writes {
		if err := write(); err != nil {
			return fmt.Errorf("write line row %d: %w", row, err)
		}
	}
	for col := firstLineCol; col <= lastLineCol; col++ {
		if err := f.SetCellStyle(sheet, cell(col), cell(col), styles[col]); err != nil {
			return fmt.Errorf("style line row %d: %w", row, err)
		}
	}
	return nil
}

// captureRows snapshots template rows from..to keyed by row number.
func captureRows(f *excelize.File, sheet string, from, to, width int) (map[int]capturedRow, error) {
	captured := make(map[int]capturedRow, max(to-from+1, 0))
	for row := from; row <= to; row++ {
		height, err := f.GetRowHeight(sheet, row)
		if err != nil {
			return nil, fmt.Errorf("read row height: %w", err)
		}
		c := capturedRow{height: height}
		for col := 1; col <= width; col++ {
			name, _ := excelize.CoordinatesToCellName(col, row)
			value, err := f.GetCellValue(sheet, name, excelize.Options{RawCellValue: true})
			if err != nil {
				return nil, fmt.Errorf("read cell %s: %w", name, err)
			}
			formula, _ := f.GetCellFormula(sheet, name)
			styleID, _ := f.GetCellStyle(sheet, name)
			if value == "" && formula == "" && styleID == 0 {
				continue
			}
			c.cells = append(c.cells, capturedCell{
				col:      col,
				value:    value,
				numeric:  isNumericCell(f, sheet, name, value),
				formula:  formula,
				styleID:  styleID,
				hasStyle: styleID != 0,
			})
		}
		captured[row] = c
	}
	return captured, nil
}

// clearRows removes rows from..to, bottom up.
func clearRows(f *excelize.File, sheet string, from, to int) error {
	for row := to; row >= from; row-- {
		if err := f.RemoveRow(sheet, row); err != nil {
			return fmt.Errorf("clear row %d: %w", row, err)
		}
	}
	return nil
}

func isNumericCell(f *excelize.File, sheet, cell, value string) bool {
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return false
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return false
	}
	_, err = strconv.ParseFloat(value, 64)
	return err == nil
}

// cutMerges unmerges ranges starting at or below fromRow and returns them.
func cutMerges(f *excelize.File, sheet string, fromRow int) ([]capturedMerge, error) {
	all, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("read merged cells: %w", err)
	}
	var merges []capturedMerge
	for _, mc := range all {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		if startRow < fromRow {
			continue
		}
		if err := f.UnmergeCell(sheet, mc.GetStartAxis(), mc.GetEndAxis()); err != nil {
			return nil, fmt.Errorf("unmerge %s: %w", mc.GetStartAxis(), err)
		}
		merges = append(merges, capturedMerge{startCol: startCol, startRow: startRow, endCol: endCol, endRow: endRow})
	}
	return merges, nil
}

func writeCaptured(f *excelize.File, sheet string, row int, captured capturedRow) error {
	if err := f.SetRowHeight(sheet, row, captured.height); err != nil {
		return fmt.Errorf("restore row height: %w", err)
	}
	for _, c := range captured.cells {
		name, _ := excelize.CoordinatesToCellName(c.col, row)
		var err error
		switch {
		case c.formula != "":
			err = f.SetCellFormula(sheet, name, c.formula)
		case c.numeric:
			v, _ := strconv.ParseFloat(c.value, 64)
			err = f.SetCellFloat(sheet, name, v, -1, 64)
		case c.value != "":
			err = f.SetCellStr(sheet, name, c.value)
		}
		if err != nil {
			return fmt.Errorf("restore cell %s: %w", name, err)
		}
		if c.hasStyle {
			if err := f.SetCellStyle(sheet, name, name, c.styleID); err != nil {
				return fmt.Errorf("restore style %s: %w", name, err)
			}
		}
	}
	return nil
}

// restoreMerges re-creates captured merges at their planned rows. Merges on
// the replaced content row are dropped.
func restoreMerges(f *excelize.File, sheet string, plan RowPlan, merges []capturedMerge) error {
	for _, m := range merges {
		startRow, endRow := plan.OutputRowOf(m.startRow), plan.OutputRowOf(m.endRow)
		if startRow == 0 || endRow == 0 {
			continue
		}
		start, _ := excelize.CoordinatesToCellName(m.startCol, startRow)
		end, _ := excelize.CoordinatesToCellName(m.endCol, endRow)
		if err := f.MergeCell(sheet, start, end); err != nil {
			return fmt.Errorf("restore merge %s:%s: %w", start, end, err)
		}
	}
	return nil
}

// writeTotals fills a footer row holding the total or amount-in-words marker.
func writeTotals(f *excelize.File, sheet string, row int, label string, doc domain.InvoiceDocument) error {
	r := strconv.Itoa(row)
	if strings.Contains(label, totalMarker) {
		if err := f.SetCellValue(sheet, "E"+r, doc.TotalQuantity); err != nil {
			return fmt.Errorf("write total quantity: %w", err)
		}
		if err := f.SetCellFloat(sheet, "G"+r, doc.TotalAmount.InexactFloat64(), 2, 64); err != nil {
			return fmt.Errorf("write total amount: %w", err)
		}
	}
	if strings.Contains(label, wordsMarker) && doc.AmountInWords != "" {
		if err := f.SetCellStr(sheet, "B"+r, doc.AmountInWords); err != nil {
			return fmt.Errorf("write amount in words: %w", err)
		}
	}
	return nil
}
