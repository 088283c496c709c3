package library

// Kind identifies the semantic type of a collected value and selects the
// validation rule applied to it.
type Kind int

const (
	KindIdentifier Kind = iota
	KindLoanID
	KindInteger
	KindEmail
	KindAddress
	KindName
	KindAuthors
)

// Field describes one entry of an entity schema: the label shown to the
// operator, the dot-separated storage path inside the record, and the value
// kind collected for it.
type Field struct {
	Label string
	Path  string
	Kind  Kind
}

// Schema is the declarative description of an entity type. It is pure data:
// operations of the entity engine are parameterized by it and never mutate it.
type Schema struct {
	// Name is the internal entity kind ("alumno", "libro").
	Name string
	// Singular and Plural are the operator-facing display names.
	Singular string
	Plural   string
	// IDExample is shown in the id prompt (e.g. "A1003").
	IDExample string
	Fields    []Field
}

// MemberSchema returns the fixed schema for student records.
func MemberSchema() Schema {
	return Schema{
		Name:      "alumno",
		Singular:  "Alumno",
		Plural:    "alumnos",
		IDExample: "A1003",
		Fields: []Field{
			{Label: "Nombre", Path: "nombre", Kind: KindName},
			{Label: "Apellido", Path: "apellido", Kind: KindName},
			{Label: "Dirección", Path: "direccion", Kind: KindAddress},
			{Label: "Email", Path: "email", Kind: KindEmail},
			{Label: "Teléfono celular", Path: "telefono.celular", Kind: KindInteger},
			{Label: "Teléfono fijo", Path: "telefono.fijo", Kind: KindInteger},
		},
	}
}

// BookSchema returns the fixed schema for book records.
func BookSchema() Schema {
	return Schema{
		Name:      "libro",
		Singular:  "Libro",
		Plural:    "libros",
		IDExample: "L1007",
		Fields: []Field{
			{Label: "Título", Path: "titulo", Kind: KindAddress},
			{Label: "Autores", Path: "autores", Kind: KindAuthors},
			{Label: "Género", Path: "genero", Kind: KindName},
			{Label: "Editorial", Path: "editorial", Kind: KindAddress},
			{Label: "Costo de garantía", Path: "costoGarantia", Kind: KindInteger},
		},
	}
}
