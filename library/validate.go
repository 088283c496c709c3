package library

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Letter classes include the accented vowels and Ñ used in Spanish names.
const letters = `A-Za-zÁÉÍÓÚÜÑáéíóúüñ`

var (
	idPattern     = regexp.MustCompile(`^[A-Za-z][0-9]+$`)
	loanIDPattern = regexp.MustCompile(`^\d{4}\.(0[1-9]|1[0-2])\.(0[1-9]|[12]\d|3[01]) ([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)
	intPattern    = regexp.MustCompile(`^[+-]?\d+$`)
	emailPattern  = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
	namePattern   = regexp.MustCompile(`^[` + letters + `]+( [` + letters + `]+)*$`)
	addrPattern   = regexp.MustCompile(`^[` + letters + `0-9.]+( [` + letters + `0-9.]+)*$`)
	// Comma-separated name groups. The 3-author limit is enforced at write
	// time (the extra groups are truncated), not here.
	authorsPattern = regexp.MustCompile(`^[` + letters + `]+( [` + letters + `]+)*(\s*,\s*[` + letters + `]+( [` + letters + `]+)*)*$`)
)

// Validator holds the boolean predicates for every value kind. Predicates
// never fail outward: an unexpected fault is logged and reported as a plain
// validation failure.
type Validator struct {
	log *zap.Logger
}

func NewValidator(log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{log: log}
}

// Valid reports whether s is an acceptable value of the given kind. Empty or
// whitespace-only input is always rejected.
func (v *Validator) Valid(kind Kind, s string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Error("fallo interno de validación",
				zap.Any("causa", r),
				zap.Int("kind", int(kind)))
			ok = false
		}
	}()

	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	switch kind {
	case KindIdentifier:
		return idPattern.MatchString(s)
	case KindLoanID:
		return loanIDPattern.MatchString(s)
	case KindInteger:
		return intPattern.MatchString(s)
	case KindEmail:
		return emailPattern.MatchString(s)
	case KindAddress:
		return addrPattern.MatchString(s)
	case KindName:
		return namePattern.MatchString(s)
	case KindAuthors:
		return authorsPattern.MatchString(s)
	default:
		return false
	}
}
