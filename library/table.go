package library

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var monthAbbr = [12]string{
	"ENE", "FEB", "MAR", "ABR", "MAY", "JUN",
	"JUL", "AGO", "SEP", "OCT", "NOV", "DIC",
}

// TableRow is one line of an annual report: a display name and one value per
// month. Rows render in slice order; callers control it by how they build
// the slice.
type TableRow struct {
	Name   string
	Values [12]int64
}

const (
	tableNameWidth  = 50
	tableMonthWidth = 10
)

// FormatAnnual renders the name→monthly-values rows as an aligned text
// table. Zero cells stay blank; in money mode non-zero cells render as "$"
// plus two fixed decimals.
func FormatAnnual(rows []TableRow, year int, title string, money bool) string {
	total := tableNameWidth + 12*tableMonthWidth
	rule := strings.Repeat("-", total)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(center(title, total) + "\n")
	b.WriteString(rule + "\n")

	b.WriteString(fmt.Sprintf("%-*s", tableNameWidth, "Libros"))
	for _, m := range monthAbbr {
		b.WriteString(fmt.Sprintf("%*s", tableMonthWidth, fmt.Sprintf("%s.%02d", m, year%100)))
	}
	b.WriteString("\n" + rule + "\n")

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-*s", tableNameWidth, row.Name))
		for _, v := range row.Values {
			b.WriteString(fmt.Sprintf("%*s", tableMonthWidth, cell(v, money)))
		}
		b.WriteString("\n")
	}

	b.WriteString(rule)
	return b.String()
}

func cell(v int64, money bool) string {
	if v == 0 {
		return ""
	}
	if money {
		return "$" + decimal.NewFromInt(v).StringFixed(2)
	}
	return fmt.Sprintf("%d", v)
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
