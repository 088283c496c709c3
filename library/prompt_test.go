package library

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewPrompter(strings.NewReader(input), out, NewValidator(nil)), out
}

func TestAskTrimsInput(t *testing.T) {
	p, _ := newTestPrompter("  A1001  \n")
	got, ok := p.Ask("ID")
	assert.True(t, ok)
	assert.Equal(t, "A1001", got)
}

func TestAskReportsExhaustedInput(t *testing.T) {
	p, _ := newTestPrompter("")
	_, ok := p.Ask("ID")
	assert.False(t, ok)
}

func TestCollectAcceptsValidInitial(t *testing.T) {
	p, out := newTestPrompter("")
	got, ok := p.Collect("Ana", "Nombre", KindName)
	assert.True(t, ok)
	assert.Equal(t, "Ana", got)
	assert.Empty(t, out.String())
}

func TestCollectRepromptsUntilValid(t *testing.T) {
	p, out := newTestPrompter("tampoco\nAna\n")
	got, ok := p.Collect("Ana3", "Nombre", KindName)
	assert.True(t, ok)
	assert.Equal(t, "Ana", got)
	assert.Contains(t, out.String(), "Valor inválido para Nombre. Reintente.")
}

func TestCollectSentinelOnlyForIdentifiers(t *testing.T) {
	p, _ := newTestPrompter("")
	got, ok := p.Collect("0", "ID", KindIdentifier)
	assert.True(t, ok)
	assert.Equal(t, AbortSentinel, got)

	p, _ = newTestPrompter("")
	got, ok = p.Collect("0", "ID de préstamo", KindLoanID)
	assert.True(t, ok)
	assert.Equal(t, AbortSentinel, got)

	// For a name field "0" is just an invalid value, not an abort.
	p, _ = newTestPrompter("Ana\n")
	got, ok = p.Collect("0", "Nombre", KindName)
	assert.True(t, ok)
	assert.Equal(t, "Ana", got)
}

func TestCollectStopsOnExhaustedInput(t *testing.T) {
	p, _ := newTestPrompter("")
	_, ok := p.Collect("Ana3", "Nombre", KindName)
	assert.False(t, ok)
}

func TestConfirm(t *testing.T) {
	p, _ := newTestPrompter("s\n")
	assert.True(t, p.Confirm("¿Continuar?"))

	p, _ = newTestPrompter("N\n")
	assert.False(t, p.Confirm("¿Continuar?"))

	p, out := newTestPrompter("quizás\nn\n")
	assert.False(t, p.Confirm("¿Continuar?"))
	assert.Contains(t, out.String(), "Error. Ingrese 's' o 'n'.")

	// Exhausted input resolves as an affirmative.
	p, _ = newTestPrompter("")
	assert.True(t, p.Confirm("¿Continuar?"))
}
