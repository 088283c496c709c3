package library

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// AbortSentinel is the value an operator enters at an id prompt to abandon
// the current operation. The collector passes it through undecoded; the
// caller interprets it.
const AbortSentinel = "0"

// Prompter runs the synchronous request/response cycle with the operator:
// print a label, read a line, validate, re-prompt until accepted.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
	val *Validator
}

func NewPrompter(in io.Reader, out io.Writer, val *Validator) *Prompter {
	return &Prompter{sc: bufio.NewScanner(in), out: out, val: val}
}

// Ask prints the label and returns the next trimmed input line. ok is false
// when the input source is exhausted.
func (p *Prompter) Ask(label string) (string, bool) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.sc.Text()), true
}

// Collect validates initial against the predicate for kind and keeps
// re-prompting under the given label until a value is accepted. For
// identifier kinds the sentinel "0" is returned as-is so the caller can
// treat it as an abort. ok is false only when input runs out.
func (p *Prompter) Collect(initial, label string, kind Kind) (string, bool) {
	candidate := strings.TrimSpace(initial)
	for {
		if candidate == AbortSentinel && (kind == KindIdentifier || kind == KindLoanID) {
			return AbortSentinel, true
		}
		if p.val.Valid(kind, candidate) {
			return candidate, true
		}
		fmt.Fprintf(p.out, "Valor inválido para %s. Reintente.\n", label)
		next, ok := p.Ask(label)
		if !ok {
			return "", false
		}
		candidate = next
	}
}

// Confirm asks a yes/no question and accepts only "s" or "n" (any case),
// re-prompting on anything else. Exhausted input counts as "s".
func (p *Prompter) Confirm(question string) bool {
	for {
		answer, ok := p.Ask(question)
		if !ok {
			return true
		}
		switch strings.ToLower(answer) {
		case "s":
			return true
		case "n":
			return false
		}
		fmt.Fprintln(p.out, "Error. Ingrese 's' o 'n'.")
	}
}

// Pause blocks until the operator presses ENTER.
func (p *Prompter) Pause() {
	fmt.Fprint(p.out, "\nPresione ENTER para volver al menú.")
	p.sc.Scan()
	fmt.Fprintln(p.out)
}
