package spreadsheet

import (
	"errors"
	"fmt"
)

// ContentStartRow is the template row the first invoice line is written to.
const ContentStartRow = 14

// ErrNoLines is returned when asked to lay out an invoice without lines.
var ErrNoLines = errors.New("invoice has no lines")

// RowSource tells where a planned output row takes its content from.
type RowSource uint8

const (
	FromLine     RowSource = iota // an invoice line
	FromTemplate                  // a captured template row
)

// PlannedRow is one output row at or below ContentStartRow.
type PlannedRow struct {
	Source RowSource
	Index  int  // line index, or 1-based template row
	Footer bool // part of the footer block
}

// RowPlan is the output row sequence from ContentStartRow down. It is built
// once from the template shape and never changed afterwards.
type RowPlan struct {
	rows     []PlannedRow
	footerAt int
}

// PlanRows lays out lines content rows followed by the template rows below
// the content row, the footer block last. lastRow is the last used template
// row and footerStart the first footer row, 0 when the template has none.
func PlanRows(lines, lastRow, footerStart int) (RowPlan, error) {
	if lines <= 0 {
		return RowPlan{}, ErrNoLines
	}
	if footerStart != 0 && footerStart < ContentStartRow {
		return RowPlan{}, fmt.Errorf("footer row %d is above the content row %d", footerStart, ContentStartRow)
	}
	if footerStart > lastRow {
		return RowPlan{}, fmt.Errorf("footer row %d is past the last template row %d", footerStart, lastRow)
	}

	rows := make([]PlannedRow, 0, lines+max(lastRow-ContentStartRow, 0))
	for i := 0; i < lines; i++ {
		rows = append(rows, PlannedRow{Source: FromLine, Index: i})
	}
	plan := RowPlan{}
	for r := ContentStartRow; r <= lastRow; r++ {
		footer := footerStart != 0 && r >= footerStart
		if r == ContentStartRow && !footer {
			continue
		}
		if footer && plan.footerAt == 0 {
			plan.footerAt = ContentStartRow + len(rows)
		}
		rows = append(rows, PlannedRow{Source: FromTemplate, Index: r, Footer: footer})
	}
	plan.rows = rows
	return plan, nil
}

// Len is the number of planned rows.
func (p RowPlan) Len() int {
	return len(p.rows)
}

// Rows returns a copy of the planned sequence.
func (p RowPlan) Rows() []PlannedRow {
	out := make([]PlannedRow, len(p.rows))
	copy(out, p.rows)
	return out
}

// OutputRow is the sheet row of the i-th planned row.
func (p RowPlan) OutputRow(i int) int {
	return ContentStartRow + i
}

// HasFooter reports whether totals have somewhere to go.
func (p RowPlan) HasFooter() bool {
	return p.footerAt != 0
}

// FooterAt is the first footer row in the output, 0 without a footer.
func (p RowPlan) FooterAt() int {
	return p.footerAt
}

// OutputRowOf maps a template row onto its output row. Rows above the
// content row keep their place; the replaced content row maps to 0.
func (p RowPlan) OutputRowOf(templateRow int) int {
	if templateRow < ContentStartRow {
		return templateRow
	}
	for i, r := range p.rows {
		if r.Source == FromTemplate && r.Index == templateRow {
			return p.OutputRow(i)
		}
	}
	return 0
}
