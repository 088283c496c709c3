package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Record is one entity (alumno, libro or préstamo) as stored: a nested
// mapping of field names to values. Numeric values decoded from disk are
// json.Number so integer fields keep their exact representation.
type Record map[string]any

// Store is the capability a record store exposes to the core: read the whole
// document into memory, write the whole mapping back. Every mutating
// operation is a full read-modify-write cycle.
type Store interface {
	Load() (*Collection, error)
	Save(*Collection) error
}

// Collection is an id→Record mapping that preserves the insertion order of
// its top-level keys, both in memory and across serialization.
type Collection struct {
	keys []string
	recs map[string]Record
}

func NewCollection() *Collection {
	return &Collection{recs: make(map[string]Record)}
}

func (c *Collection) Get(id string) (Record, bool) {
	r, ok := c.recs[id]
	return r, ok
}

func (c *Collection) Has(id string) bool {
	_, ok := c.recs[id]
	return ok
}

// Put inserts or replaces the record for id. A new id is appended to the key
// order; an existing id keeps its position.
func (c *Collection) Put(id string, r Record) {
	if _, ok := c.recs[id]; !ok {
		c.keys = append(c.keys, id)
	}
	c.recs[id] = r
}

// Keys returns the ids in insertion order.
func (c *Collection) Keys() []string { return c.keys }

func (c *Collection) Len() int { return len(c.keys) }

func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		rb, err := json.Marshal(c.recs[k])
		if err != nil {
			return nil, err
		}
		buf.Write(rb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	c.keys = nil
	c.recs = make(map[string]Record)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("se esperaba un objeto JSON, se encontró %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("clave inválida %v", keyTok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("registro %q: %w", key, err)
		}
		c.Put(key, rec)
	}

	_, err = dec.Token()
	return err
}

// FileStore persists one collection as a single human-readable JSON document.
type FileStore struct {
	path string
	log  *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

// Load parses the whole document. A missing file is a valid first run and
// yields an empty collection.
func (s *FileStore) Load() (*Collection, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewCollection(), nil
	}
	if err != nil {
		s.log.Error("lectura de almacén fallida", zap.String("path", s.path), zap.Error(err))
		return nil, fmt.Errorf("leer almacén %s: %w", s.path, err)
	}

	col := NewCollection()
	if err := json.Unmarshal(data, col); err != nil {
		s.log.Error("almacén corrupto", zap.String("path", s.path), zap.Error(err))
		return nil, fmt.Errorf("interpretar almacén %s: %w", s.path, err)
	}
	return col, nil
}

// Save serializes the whole mapping back, indented for human inspection.
func (s *FileStore) Save(col *Collection) error {
	raw, err := json.Marshal(col)
	if err != nil {
		return fmt.Errorf("serializar almacén %s: %w", s.path, err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return fmt.Errorf("serializar almacén %s: %w", s.path, err)
	}
	pretty.WriteByte('\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio de datos: %w", err)
		}
	}
	if err := os.WriteFile(s.path, pretty.Bytes(), 0o644); err != nil {
		s.log.Error("escritura de almacén fallida", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("escribir almacén %s: %w", s.path, err)
	}
	return nil
}
