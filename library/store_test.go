package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "almacen.json"), nil)
}

func TestLoadMissingFileYieldsEmptyCollection(t *testing.T) {
	st := tempStore(t)

	col, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, col.Len())
}

func TestRoundTrip(t *testing.T) {
	st := tempStore(t)

	col := NewCollection()
	col.Put("A1001", Record{
		"activo":    true,
		"nombre":    "Ana",
		"apellido":  "López",
		"direccion": "Calle Falsa 123",
		"email":     "ana@mail.com",
		"telefono": map[string]any{
			"celular": int64(1122334455),
			"fijo":    int64(47891234),
		},
		"infracciones": int64(0),
	})
	col.Put("A1002", Record{"activo": false, "nombre": "Carlos", "infracciones": int64(2)})

	require.NoError(t, st.Save(col))

	got, err := st.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"A1001", "A1002"}, got.Keys())

	ana, ok := got.Get("A1001")
	require.True(t, ok)
	assert.Equal(t, "Ana", stringAt(ana, "nombre"))
	assert.Equal(t, "López", stringAt(ana, "apellido"))
	assert.Equal(t, int64(1122334455), intAt(ana, "telefono.celular", 0))
	assert.Equal(t, int64(47891234), intAt(ana, "telefono.fijo", 0))
	assert.Equal(t, int64(0), intAt(ana, "infracciones", -1))
	assert.True(t, boolAt(ana, "activo", false))

	carlos, ok := got.Get("A1002")
	require.True(t, ok)
	assert.False(t, boolAt(carlos, "activo", true))
	assert.Equal(t, int64(2), intAt(carlos, "infracciones", 0))
}

func TestKeyOrderSurvivesRoundTrip(t *testing.T) {
	st := tempStore(t)

	col := NewCollection()
	for _, id := range []string{"L1003", "L1001", "L1002"} {
		col.Put(id, Record{"titulo": id, "activo": true})
	}
	require.NoError(t, st.Save(col))

	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"L1003", "L1001", "L1002"}, got.Keys())
}

func TestPutKeepsPositionOnReplace(t *testing.T) {
	col := NewCollection()
	col.Put("A1", Record{"n": int64(1)})
	col.Put("A2", Record{"n": int64(2)})
	col.Put("A1", Record{"n": int64(3)})

	assert.Equal(t, []string{"A1", "A2"}, col.Keys())
	rec, _ := col.Get("A1")
	assert.Equal(t, int64(3), intAt(rec, "n", 0))
}

func TestSaveCreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "libros.json")
	st := NewFileStore(path, nil)

	require.NoError(t, st.Save(NewCollection()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadCorruptStoreFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roto.json")
	require.NoError(t, os.WriteFile(path, []byte("esto no es JSON"), 0o644))

	_, err := NewFileStore(path, nil).Load()
	assert.Error(t, err)
}
