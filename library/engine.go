package library

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Engine implements the schema-driven create/modify/deactivate/list
// operations. It is generic over the entity type: every operation takes the
// store to act on and the schema describing the records.
type Engine struct {
	prompt *Prompter
	out    io.Writer
	log    *zap.Logger
}

func NewEngine(prompt *Prompter, out io.Writer, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{prompt: prompt, out: out, log: log}
}

// Create registers a new record: a not-yet-used id, one collected value per
// schema field, active flag on. Aborts silently when the operator enters "0"
// at the id prompt.
func (e *Engine) Create(st Store, sc Schema) error {
	col, err := st.Load()
	if err != nil {
		return err
	}

	id, ok := e.resolveNewID(col, sc)
	if !ok {
		return nil
	}

	rec := Record{"activo": true}
	for _, f := range sc.Fields {
		if !e.collectField(rec, f) {
			return nil
		}
	}
	if sc.Name == "alumno" {
		rec["infracciones"] = int64(0)
	}

	col.Put(id, rec)
	if err := st.Save(col); err != nil {
		return err
	}

	e.log.Info("registro creado", zap.String("tipo", sc.Name), zap.String("id", id))
	fmt.Fprintf(e.out, "%s %s registrado correctamente.\n", sc.Singular, id)
	return nil
}

// Modify changes one field of an existing active record.
func (e *Engine) Modify(st Store, sc Schema) error {
	col, err := st.Load()
	if err != nil {
		return err
	}

	id, ok := e.resolveExistingID(col, sc)
	if !ok {
		return nil
	}
	rec, _ := col.Get(id)

	fmt.Fprintln(e.out, "\nCampos disponibles para modificar:")
	for _, f := range sc.Fields {
		fmt.Fprintf(e.out, "  - %s\n", f.Label)
	}

	field, ok := e.chooseField(sc)
	if !ok {
		return nil
	}
	if !e.collectField(rec, field) {
		return nil
	}

	col.Put(id, rec)
	if err := st.Save(col); err != nil {
		return err
	}

	e.log.Info("registro modificado", zap.String("tipo", sc.Name),
		zap.String("id", id), zap.String("campo", field.Path))
	fmt.Fprintf(e.out, "Modificación del campo %s exitosa.\n", field.Label)
	return nil
}

// Deactivate performs the soft delete: records are never removed, only
// flagged inactive.
func (e *Engine) Deactivate(st Store, sc Schema) error {
	col, err := st.Load()
	if err != nil {
		return err
	}

	id, ok := e.resolveExistingID(col, sc)
	if !ok {
		return nil
	}
	rec, _ := col.Get(id)
	rec["activo"] = false

	col.Put(id, rec)
	if err := st.Save(col); err != nil {
		return err
	}

	e.log.Info("registro inactivado", zap.String("tipo", sc.Name), zap.String("id", id))
	fmt.Fprintf(e.out, "%s %s inactivado.\n", sc.Singular, id)
	return nil
}

// List prints every active record with its schema fields resolved.
func (e *Engine) List(st Store, sc Schema) error {
	col, err := st.Load()
	if err != nil {
		return err
	}

	fmt.Fprintf(e.out, "\nLISTADO DE %s ACTIVOS\n", strings.ToUpper(sc.Plural))
	fmt.Fprintln(e.out, strings.Repeat("-", 50))

	active := 0
	for _, id := range col.Keys() {
		rec, _ := col.Get(id)
		if !boolAt(rec, "activo", false) {
			continue
		}
		active++

		fmt.Fprintf(e.out, "ID: %s\n", id)
		for _, f := range sc.Fields {
			shown, err := e.displayValue(rec, f)
			if err != nil {
				return fmt.Errorf("listar %s %s: %w", sc.Name, id, err)
			}
			fmt.Fprintf(e.out, "%s: %s\n", strings.ToUpper(f.Label), shown)
		}
		if sc.Name == "alumno" {
			fmt.Fprintf(e.out, "INFRACCIONES: %d\n", intAt(rec, "infracciones", 0))
		}
		fmt.Fprintln(e.out, strings.Repeat("-", 50))
	}

	if active == 0 {
		fmt.Fprintf(e.out, "No hay %s activos registrados.\n", sc.Plural)
	}
	return nil
}

func (e *Engine) displayValue(rec Record, f Field) (string, error) {
	if f.Kind == KindAuthors {
		return fmt.Sprintf("%s , %s , %s",
			stringAt(rec, f.Path+".autor1"),
			stringAt(rec, f.Path+".autor2"),
			stringAt(rec, f.Path+".autor3")), nil
	}
	v, err := getPath(rec, f.Path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", v), nil
}

// collectField prompts for one value of the field's kind and writes it at the
// field's path. Returns false when input runs out.
func (e *Engine) collectField(rec Record, f Field) bool {
	raw, ok := e.prompt.Ask(f.Label)
	if !ok {
		return false
	}
	val, ok := e.prompt.Collect(raw, f.Label, f.Kind)
	if !ok {
		return false
	}
	e.writeField(rec, f, val)
	return true
}

func (e *Engine) writeField(rec Record, f Field, val string) {
	switch f.Kind {
	case KindAuthors:
		a := splitAuthors(val)
		setPath(rec, f.Path+".autor1", a[0])
		setPath(rec, f.Path+".autor2", a[1])
		setPath(rec, f.Path+".autor3", a[2])
	case KindInteger:
		n, _ := strconv.ParseInt(val, 10, 64)
		setPath(rec, f.Path, n)
	default:
		setPath(rec, f.Path, val)
	}
}

// chooseField asks for one of the schema's field labels, re-prompting on
// free-text failures and unknown labels. "0" aborts.
func (e *Engine) chooseField(sc Schema) (Field, bool) {
	for {
		raw, ok := e.prompt.Ask("Campo a modificar (0 para volver)")
		if !ok || raw == AbortSentinel {
			return Field{}, false
		}
		if !e.prompt.val.Valid(KindName, raw) {
			fmt.Fprintln(e.out, "Valor inválido para Campo a modificar. Reintente.")
			continue
		}
		for _, f := range sc.Fields {
			if strings.EqualFold(f.Label, raw) {
				return f, true
			}
		}
		fmt.Fprintln(e.out, "Campo inválido.")
	}
}

// resolveExistingID loops until the operator names an id that is present and
// active, or aborts with "0". Absent and inactive ids produce distinct
// messages.
func (e *Engine) resolveExistingID(col *Collection, sc Schema) (string, bool) {
	label := fmt.Sprintf("Ingrese el ID del %s (ej. %s, 0 para volver)",
		strings.ToLower(sc.Singular), sc.IDExample)

	raw, ok := e.prompt.Ask(label)
	if !ok {
		return "", false
	}
	for {
		id, ok := e.prompt.Collect(raw, label, KindIdentifier)
		if !ok || id == AbortSentinel {
			return "", false
		}
		id = strings.ToUpper(id)

		rec, found := col.Get(id)
		switch {
		case !found:
			fmt.Fprintf(e.out, "Error: el ID %s no existe.\n", id)
		case !boolAt(rec, "activo", false):
			fmt.Fprintf(e.out, "Error: el registro %s está inactivo.\n", id)
		default:
			return id, true
		}

		raw, ok = e.prompt.Ask(label)
		if !ok {
			return "", false
		}
	}
}

// resolveNewID loops until the operator names an id not yet present in the
// store, or aborts with "0".
func (e *Engine) resolveNewID(col *Collection, sc Schema) (string, bool) {
	label := fmt.Sprintf("Ingrese el ID del %s (ej. %s, 0 para volver)",
		strings.ToLower(sc.Singular), sc.IDExample)

	raw, ok := e.prompt.Ask(label)
	if !ok {
		return "", false
	}
	for {
		id, ok := e.prompt.Collect(raw, label, KindIdentifier)
		if !ok || id == AbortSentinel {
			return "", false
		}
		id = strings.ToUpper(id)

		if !col.Has(id) {
			return id, true
		}
		fmt.Fprintf(e.out, "Error: el ID %s ya existe.\n", id)

		raw, ok = e.prompt.Ask(label)
		if !ok {
			return "", false
		}
	}
}

// resolveOpenLoanID is the loan variant of the existing-id protocol: the loan
// must be present and still open. A present loan with an end date set is
// reported as already finalized, not as missing.
func (e *Engine) resolveOpenLoanID(col *Collection) (string, bool) {
	const label = "Ingrese el ID del préstamo (0 para volver)"

	raw, ok := e.prompt.Ask(label)
	if !ok {
		return "", false
	}
	for {
		id, ok := e.prompt.Collect(raw, label, KindLoanID)
		if !ok || id == AbortSentinel {
			return "", false
		}

		rec, found := col.Get(id)
		switch {
		case !found:
			fmt.Fprintln(e.out, "Error: el préstamo no existe.")
		case stringAt(rec, "fechaFinalizacion") != "":
			fmt.Fprintln(e.out, "Error: el préstamo ya fue finalizado.")
		default:
			return id, true
		}

		raw, ok = e.prompt.Ask(label)
		if !ok {
			return "", false
		}
	}
}
