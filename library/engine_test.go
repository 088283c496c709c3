package library

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(input string) (*Engine, *bytes.Buffer) {
	out := &bytes.Buffer{}
	prompt := NewPrompter(strings.NewReader(input), out, NewValidator(nil))
	return NewEngine(prompt, out, nil), out
}

func seedCollection(t *testing.T, st Store, recs map[string]Record, order []string) {
	t.Helper()
	col := NewCollection()
	for _, id := range order {
		col.Put(id, recs[id])
	}
	require.NoError(t, st.Save(col))
}

func TestCreateMember(t *testing.T) {
	st := tempStore(t)
	eng, _ := newTestEngine("a1001\nAna\nLópez\nCalle Falsa 123\nana@mail.com\n1122334455\n0\n")

	require.NoError(t, eng.Create(st, MemberSchema()))

	col, err := st.Load()
	require.NoError(t, err)
	rec, ok := col.Get("A1001") // id uppercased on acceptance
	require.True(t, ok)

	assert.True(t, boolAt(rec, "activo", false))
	assert.Equal(t, "Ana", stringAt(rec, "nombre"))
	assert.Equal(t, "López", stringAt(rec, "apellido"))
	assert.Equal(t, "Calle Falsa 123", stringAt(rec, "direccion"))
	assert.Equal(t, "ana@mail.com", stringAt(rec, "email"))
	assert.Equal(t, int64(1122334455), intAt(rec, "telefono.celular", 0))
	assert.Equal(t, int64(0), intAt(rec, "telefono.fijo", -1))
	assert.Equal(t, int64(0), intAt(rec, "infracciones", -1))
}

func TestCreateBookFansOutAuthors(t *testing.T) {
	st := tempStore(t)
	eng, _ := newTestEngine("L1001\nPrueba\nAna, Beto, Carla, Dario, Elena\nNovela\nPlaneta\n1000\n")

	require.NoError(t, eng.Create(st, BookSchema()))

	col, err := st.Load()
	require.NoError(t, err)
	rec, ok := col.Get("L1001")
	require.True(t, ok)

	assert.Equal(t, "Ana", stringAt(rec, "autores.autor1"))
	assert.Equal(t, "Beto", stringAt(rec, "autores.autor2"))
	assert.Equal(t, "Carla", stringAt(rec, "autores.autor3"))
	assert.Equal(t, int64(1000), intAt(rec, "costoGarantia", 0))
	// Books never carry the infraction counter.
	_, err = getPath(rec, "infracciones")
	assert.Error(t, err)
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"A1001": {"activo": true, "nombre": "Ana"},
	}, []string{"A1001"})

	eng, out := newTestEngine("A1001\nA1002\nBeto\nGómez\nBelgrano 101\nbeto@mail.com\n111\n0\n")
	require.NoError(t, eng.Create(st, MemberSchema()))

	assert.Contains(t, out.String(), "ya existe")

	col, _ := st.Load()
	assert.True(t, col.Has("A1002"))
	assert.Equal(t, 2, col.Len())
}

func TestCreateAbortsOnSentinel(t *testing.T) {
	st := tempStore(t)
	eng, _ := newTestEngine("0\n")

	require.NoError(t, eng.Create(st, MemberSchema()))

	col, _ := st.Load()
	assert.Equal(t, 0, col.Len())
}

func TestCreateRepromptsOnInvalidValue(t *testing.T) {
	st := tempStore(t)
	eng, out := newTestEngine("A1001\nAna3\nAna\nLópez\nBelgrano 101\nana@mail.com\n111\n0\n")

	require.NoError(t, eng.Create(st, MemberSchema()))

	assert.Contains(t, out.String(), "Valor inválido para Nombre")
	col, _ := st.Load()
	rec, _ := col.Get("A1001")
	assert.Equal(t, "Ana", stringAt(rec, "nombre"))
}

func TestModifyField(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"A1001": {"activo": true, "nombre": "Ana", "apellido": "López"},
	}, []string{"A1001"})

	eng, _ := newTestEngine("A1001\nNombre\nMaría\n")
	require.NoError(t, eng.Modify(st, MemberSchema()))

	col, _ := st.Load()
	rec, _ := col.Get("A1001")
	assert.Equal(t, "María", stringAt(rec, "nombre"))
	assert.Equal(t, "López", stringAt(rec, "apellido"))
}

func TestModifyRepromptsOnUnknownLabel(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"A1001": {"activo": true, "nombre": "Ana"},
	}, []string{"A1001"})

	eng, out := newTestEngine("A1001\nColor\nNombre\nMaría\n")
	require.NoError(t, eng.Modify(st, MemberSchema()))

	assert.Contains(t, out.String(), "Campo inválido.")
	col, _ := st.Load()
	rec, _ := col.Get("A1001")
	assert.Equal(t, "María", stringAt(rec, "nombre"))
}

func TestModifyAbortsOnSentinelAtLabel(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"A1001": {"activo": true, "nombre": "Ana"},
	}, []string{"A1001"})

	eng, _ := newTestEngine("A1001\n0\n")
	require.NoError(t, eng.Modify(st, MemberSchema()))

	col, _ := st.Load()
	rec, _ := col.Get("A1001")
	assert.Equal(t, "Ana", stringAt(rec, "nombre"))
}

func TestDeactivate(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"A1001": {"activo": true, "nombre": "Ana"},
	}, []string{"A1001"})

	eng, _ := newTestEngine("A1001\n")
	require.NoError(t, eng.Deactivate(st, MemberSchema()))

	col, _ := st.Load()
	rec, _ := col.Get("A1001")
	assert.False(t, boolAt(rec, "activo", true))
}

func TestDeactivateTwiceReportsInactive(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"A1001": {"activo": false, "nombre": "Ana"},
	}, []string{"A1001"})

	// The second pass finds the record already inactive: the resolution loop
	// reports it and the operator backs out with "0". No error, no change.
	eng, out := newTestEngine("A1001\n0\n")
	require.NoError(t, eng.Deactivate(st, MemberSchema()))

	assert.Contains(t, out.String(), "está inactivo")
	col, _ := st.Load()
	rec, _ := col.Get("A1001")
	assert.False(t, boolAt(rec, "activo", true))
}

func TestDeactivateUnknownIDReprompts(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"A1001": {"activo": true, "nombre": "Ana"},
	}, []string{"A1001"})

	eng, out := newTestEngine("A9999\nA1001\n")
	require.NoError(t, eng.Deactivate(st, MemberSchema()))

	assert.Contains(t, out.String(), "no existe")
	col, _ := st.Load()
	rec, _ := col.Get("A1001")
	assert.False(t, boolAt(rec, "activo", true))
}

func TestListShowsOnlyActiveRecords(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"A1001": {
			"activo": true, "nombre": "Ana", "apellido": "López",
			"direccion": "Belgrano 101", "email": "ana@mail.com",
			"telefono":     map[string]any{"celular": int64(111), "fijo": int64(0)},
			"infracciones": int64(2),
		},
		"A1002": {
			"activo": false, "nombre": "Carlos", "apellido": "Gómez",
			"direccion": "Cabildo 202", "email": "carlos@mail.com",
			"telefono":     map[string]any{"celular": int64(222), "fijo": int64(0)},
			"infracciones": int64(0),
		},
	}, []string{"A1001", "A1002"})

	eng, out := newTestEngine("")
	require.NoError(t, eng.List(st, MemberSchema()))

	s := out.String()
	assert.Contains(t, s, "LISTADO DE ALUMNOS ACTIVOS")
	assert.Contains(t, s, "ID: A1001")
	assert.Contains(t, s, "NOMBRE: Ana")
	assert.Contains(t, s, "INFRACCIONES: 2")
	assert.NotContains(t, s, "A1002")
	assert.NotContains(t, s, "Carlos")
}

func TestListEmptyStore(t *testing.T) {
	st := tempStore(t)
	eng, out := newTestEngine("")

	require.NoError(t, eng.List(st, MemberSchema()))
	assert.Contains(t, out.String(), "No hay alumnos activos registrados.")
}

func TestListBookJoinsAuthorSlots(t *testing.T) {
	st := tempStore(t)
	seedCollection(t, st, map[string]Record{
		"L1001": {
			"activo": true, "titulo": "Prueba",
			"autores":   map[string]any{"autor1": "Ana", "autor2": "Beto", "autor3": ""},
			"genero":    "Novela",
			"editorial": "Planeta", "costoGarantia": int64(1000),
		},
	}, []string{"L1001"})

	eng, out := newTestEngine("")
	require.NoError(t, eng.List(st, BookSchema()))

	assert.Contains(t, out.String(), "AUTORES: Ana , Beto , ")
}
