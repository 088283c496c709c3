package library

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Reporter builds the month-bucketed summaries over the loan store. Reports
// only read; they never mutate any store.
type Reporter struct {
	members Store
	books   Store
	loans   Store
	log     *zap.Logger
}

func NewReporter(members, books, loans Store, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{members: members, books: books, loans: loans, log: log}
}

// Monthly lists every loan opened in the given month, one row per loan with
// the member and book names resolved (or an id-based fallback when the
// reference no longer resolves).
func (r *Reporter) Monthly(year, month int) (string, error) {
	lcol, err := r.loans.Load()
	if err != nil {
		return "", err
	}
	mcol, err := r.members.Load()
	if err != nil {
		return "", err
	}
	bcol, err := r.books.Load()
	if err != nil {
		return "", err
	}

	lines := []string{
		fmt.Sprintf("Listado de reservas del mes %d/%d", month, year),
		fmt.Sprintf("%-35s%-35s%-35s", "Fecha/Hora", "Alumno", "Libro"),
		strings.Repeat("-", 105),
	}

	prefix := fmt.Sprintf("%d-%02d", year, month)
	for _, id := range lcol.Keys() {
		loan, _ := lcol.Get(id)
		if !strings.HasPrefix(stringAt(loan, "fechaInicio"), prefix) {
			continue
		}

		memberID := stringAt(loan, "idAlumno")
		memberName := fmt.Sprintf("Alumno %s", memberID)
		if member, ok := mcol.Get(memberID); ok {
			if n := stringAt(member, "nombre"); n != "" {
				memberName = n
			}
		}

		bookID := stringAt(loan, "idLibro")
		bookTitle := bookTitleOf(bcol, bookID)

		lines = append(lines, fmt.Sprintf("%-35s%-35s%-35s", id, memberName, bookTitle))
	}

	return strings.Join(lines, "\n"), nil
}

// AnnualCounts tallies how many loans each book received per month of the
// given year. Every book in the store gets a row, even with no activity;
// loans against book ids no longer in the store are skipped.
func (r *Reporter) AnnualCounts(year int) (string, error) {
	lcol, err := r.loans.Load()
	if err != nil {
		return "", err
	}
	bcol, err := r.books.Load()
	if err != nil {
		return "", err
	}
	rows := annualCountRows(lcol, bcol, year)
	return FormatAnnual(rows, year, "Resumen Anual de Reservas por Libro (Cantidades)", false), nil
}

// AnnualAmounts accumulates the daily guarantee cost of each loaned book per
// month of the given year. Rows appear in the order the books are first
// encountered in the loan scan. The cost is added once per loan, not
// multiplied by elapsed days.
func (r *Reporter) AnnualAmounts(year int) (string, error) {
	lcol, err := r.loans.Load()
	if err != nil {
		return "", err
	}
	bcol, err := r.books.Load()
	if err != nil {
		return "", err
	}
	rows := annualAmountRows(lcol, bcol, year)
	return FormatAnnual(rows, year, "Resumen Anual de Reservas por Libro (Pesos)", true), nil
}

// AnnualIncorrectReturns counts, per month of the given year, the loans whose
// return was marked incorrect. A loan without the flag counts as correct.
// The layout is its own two-row table rather than the per-book formatter.
func (r *Reporter) AnnualIncorrectReturns(year int) (string, error) {
	lcol, err := r.loans.Load()
	if err != nil {
		return "", err
	}
	counts := incorrectReturnCounts(lcol, year)

	const width = 160
	rule := strings.Repeat("-", width)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(center("Resumen anual de reservas con devolución incorrecta", width) + "\n")
	b.WriteString(rule + "\n")

	b.WriteString(fmt.Sprintf("%-15s", "MESES"))
	for _, m := range monthAbbr {
		b.WriteString(center(fmt.Sprintf("%s.%02d", m, year%100), 12))
	}
	b.WriteString("\n" + rule + "\n")

	b.WriteString(fmt.Sprintf("%-15s", "Devol.Incorrect"))
	for _, v := range counts {
		b.WriteString(center(fmt.Sprintf("%d", v), 12))
	}
	b.WriteString("\n" + rule)

	return b.String(), nil
}

func annualCountRows(lcol, bcol *Collection, year int) []TableRow {
	rows := make([]TableRow, 0, bcol.Len())
	index := make(map[string]int, bcol.Len())
	for _, bookID := range bcol.Keys() {
		index[bookID] = len(rows)
		rows = append(rows, TableRow{Name: bookTitleOf(bcol, bookID)})
	}

	yearPrefix := fmt.Sprintf("%d-", year)
	for _, id := range lcol.Keys() {
		loan, _ := lcol.Get(id)
		start := stringAt(loan, "fechaInicio")
		if !strings.HasPrefix(start, yearPrefix) {
			continue
		}
		month, ok := monthOf(start)
		if !ok {
			continue
		}
		if i, known := index[stringAt(loan, "idLibro")]; known {
			rows[i].Values[month-1]++
		}
	}
	return rows
}

func annualAmountRows(lcol, bcol *Collection, year int) []TableRow {
	var rows []TableRow
	index := make(map[string]int)

	yearPrefix := fmt.Sprintf("%d-", year)
	for _, id := range lcol.Keys() {
		loan, _ := lcol.Get(id)
		start := stringAt(loan, "fechaInicio")
		if !strings.HasPrefix(start, yearPrefix) {
			continue
		}
		month, ok := monthOf(start)
		if !ok {
			continue
		}

		bookID := stringAt(loan, "idLibro")
		title := bookTitleOf(bcol, bookID)
		var cost int64
		if book, found := bcol.Get(bookID); found {
			cost = intAt(book, "costoGarantia", 0)
		}

		i, known := index[title]
		if !known {
			i = len(rows)
			index[title] = i
			rows = append(rows, TableRow{Name: title})
		}
		rows[i].Values[month-1] += cost
	}
	return rows
}

func incorrectReturnCounts(lcol *Collection, year int) [12]int64 {
	var counts [12]int64
	for month := 1; month <= 12; month++ {
		prefix := fmt.Sprintf("%d-%02d", year, month)
		for _, id := range lcol.Keys() {
			loan, _ := lcol.Get(id)
			if !strings.HasPrefix(stringAt(loan, "fechaInicio"), prefix) {
				continue
			}
			if !boolAt(loan, "estadoDevolucionCorrecto", true) {
				counts[month-1]++
			}
		}
	}
	return counts
}

// bookTitleOf resolves a book id to its title, with an id-based fallback for
// dangling references.
func bookTitleOf(bcol *Collection, bookID string) string {
	if book, ok := bcol.Get(bookID); ok {
		if t := stringAt(book, "titulo"); t != "" {
			return t
		}
	}
	return fmt.Sprintf("Libro %s", bookID)
}

// monthOf extracts the month from a YYYY-MM-DD start date.
func monthOf(date string) (int, bool) {
	if len(date) < 7 {
		return 0, false
	}
	month := int(date[5]-'0')*10 + int(date[6]-'0')
	if month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}
