package library

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	loanIDLayout = "2006.01.02 15:04:05"
	dateLayout   = "2006-01-02"
)

// LoanService drives the loan state machine: Open → Closed, no other states.
// It cross-references the member and book stores through the engine's id
// resolution primitives.
type LoanService struct {
	members Store
	books   Store
	loans   Store
	eng     *Engine
	log     *zap.Logger

	// now is the clock; replaced in tests.
	now func() time.Time
}

func NewLoanService(members, books, loans Store, eng *Engine, log *zap.Logger) *LoanService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoanService{
		members: members,
		books:   books,
		loans:   loans,
		eng:     eng,
		log:     log,
		now:     time.Now,
	}
}

// Open registers a new loan against an active member and an active book. The
// loan id is the open timestamp; two opens within the same wall-clock second
// collide and the later one overwrites the earlier, a known boundary of the
// record format.
func (s *LoanService) Open() error {
	mcol, err := s.members.Load()
	if err != nil {
		return err
	}
	memberID, ok := s.eng.resolveExistingID(mcol, MemberSchema())
	if !ok {
		return nil
	}

	bcol, err := s.books.Load()
	if err != nil {
		return err
	}
	bookID, ok := s.eng.resolveExistingID(bcol, BookSchema())
	if !ok {
		return nil
	}

	lcol, err := s.loans.Load()
	if err != nil {
		return err
	}

	opened := s.now()
	id := opened.Format(loanIDLayout)
	lcol.Put(id, Record{
		"idPrestamo":               id,
		"idAlumno":                 memberID,
		"idLibro":                  bookID,
		"cantidadDias":             int64(0),
		"fechaInicio":              opened.Format(dateLayout),
		"fechaFinalizacion":        "",
		"estadoDevolucionCorrecto": false,
	})

	if err := s.loans.Save(lcol); err != nil {
		return err
	}

	s.log.Info("préstamo registrado", zap.String("id", id),
		zap.String("alumno", memberID), zap.String("libro", bookID))
	fmt.Fprintf(s.eng.out, "Préstamo registrado con ID: %s\n", id)
	return nil
}

// Close finalizes an open loan: computes the elapsed days and the guarantee
// fee, records the end date, and posts an infraction to the member when the
// return is marked incorrect. The fee is reported, not stored.
func (s *LoanService) Close() error {
	lcol, err := s.loans.Load()
	if err != nil {
		return err
	}
	id, ok := s.eng.resolveOpenLoanID(lcol)
	if !ok {
		return nil
	}
	loan, _ := lcol.Get(id)

	start, err := time.Parse(dateLayout, stringAt(loan, "fechaInicio"))
	if err != nil {
		return fmt.Errorf("préstamo %s: fecha de inicio inválida: %w", id, err)
	}
	closed := s.now()
	closedDay := time.Date(closed.Year(), closed.Month(), closed.Day(), 0, 0, 0, 0, time.UTC)

	days := int64(closedDay.Sub(start).Hours() / 24)
	if days == 0 {
		// Same-day return still bills one day.
		days = 1
	}

	bcol, err := s.books.Load()
	if err != nil {
		return err
	}
	var dailyCost int64
	if book, found := bcol.Get(stringAt(loan, "idLibro")); found {
		dailyCost = intAt(book, "costoGarantia", 0)
	} else {
		s.log.Warn("libro del préstamo ausente", zap.String("prestamo", id),
			zap.String("libro", stringAt(loan, "idLibro")))
	}
	total := decimal.NewFromInt(dailyCost).Mul(decimal.NewFromInt(days))

	loan["fechaFinalizacion"] = closed.Format(dateLayout)
	loan["cantidadDias"] = days

	correct := s.eng.prompt.Confirm("¿La devolución es correcta? (s = sí / n = no)")
	loan["estadoDevolucionCorrecto"] = correct

	if !correct {
		if err := s.addInfraction(stringAt(loan, "idAlumno")); err != nil {
			return err
		}
		fmt.Fprintln(s.eng.out, "Se añadió 1 infracción al alumno.")
	}

	lcol.Put(id, loan)
	if err := s.loans.Save(lcol); err != nil {
		return err
	}

	s.log.Info("préstamo finalizado", zap.String("id", id),
		zap.Int64("dias", days), zap.Bool("devolucionCorrecta", correct))

	fmt.Fprintln(s.eng.out, "\nPréstamo finalizado correctamente.")
	fmt.Fprintf(s.eng.out, "Días prestados: %d\n", days)
	fmt.Fprintf(s.eng.out, "Costo por día : %d\n", dailyCost)
	fmt.Fprintf(s.eng.out, "Total a pagar : %s\n\n", total)
	return nil
}

func (s *LoanService) addInfraction(memberID string) error {
	mcol, err := s.members.Load()
	if err != nil {
		return err
	}
	member, found := mcol.Get(memberID)
	if !found {
		s.log.Warn("alumno del préstamo ausente", zap.String("alumno", memberID))
		return nil
	}
	member["infracciones"] = intAt(member, "infracciones", 0) + 1
	mcol.Put(memberID, member)
	return s.members.Save(mcol)
}
