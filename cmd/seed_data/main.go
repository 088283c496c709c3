package main

import (
	"fmt"
	"os"

	"biblioteca/library"
)

// Loads the demo data set into the three stores, replacing whatever is there.
// Useful for a first run and for exercising the reports.
func main() {
	cfg, err := library.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error de configuración: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Eliminando almacenes existentes...")
	for _, path := range []string{cfg.MembersFile, cfg.BooksFile, cfg.LoansFile} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Aviso: no se pudo eliminar %s: %v\n", path, err)
		}
	}

	stores := []struct {
		name  string
		store library.Store
		col   *library.Collection
	}{
		{"alumnos", library.NewFileStore(cfg.MembersFile, nil), seedMembers()},
		{"libros", library.NewFileStore(cfg.BooksFile, nil), seedBooks()},
		{"prestamos", library.NewFileStore(cfg.LoansFile, nil), seedLoans()},
	}

	for _, s := range stores {
		if err := s.store.Save(s.col); err != nil {
			fmt.Fprintf(os.Stderr, "Error al guardar %s: %v\n", s.name, err)
			os.Exit(1)
		}
		fmt.Printf("Almacén de %s cargado: %d registros\n", s.name, s.col.Len())
	}

	fmt.Println("\nCarga de datos de ejemplo completa.")
}

func member(nombre, apellido, direccion, email string, celular, fijo, infracciones int64, activo bool) library.Record {
	return library.Record{
		"activo":    activo,
		"nombre":    nombre,
		"apellido":  apellido,
		"direccion": direccion,
		"email":     email,
		"telefono": map[string]any{
			"celular": celular,
			"fijo":    fijo,
		},
		"infracciones": infracciones,
	}
}

func book(titulo, autor, genero, editorial string, costo int64, activo bool) library.Record {
	return library.Record{
		"titulo":        titulo,
		"autores":       map[string]any{"autor1": autor, "autor2": "", "autor3": ""},
		"activo":        activo,
		"genero":        genero,
		"editorial":     editorial,
		"costoGarantia": costo,
	}
}

func loan(id, alumno, libro string, dias int64, inicio, fin string, correcto bool) library.Record {
	return library.Record{
		"idPrestamo":               id,
		"idAlumno":                 alumno,
		"idLibro":                  libro,
		"cantidadDias":             dias,
		"fechaInicio":              inicio,
		"fechaFinalizacion":        fin,
		"estadoDevolucionCorrecto": correcto,
	}
}

func seedMembers() *library.Collection {
	col := library.NewCollection()
	col.Put("A1001", member("Ana", "López", "Calle Falsa 123, CABA", "ana@mail.com", 1122334455, 47891234, 0, true))
	col.Put("A1002", member("Carlos", "Gómez", "Av. Libertador 456, CABA", "carlos@mail.com", 1155667788, 0, 2, false))
	col.Put("A1003", member("Luisa", "Martínez", "Corrientes 789, CABA", "luisa@mail.com", 1199887766, 43021987, 1, true))
	col.Put("A1004", member("Pedro", "Díaz", "Belgrano 101, CABA", "pedro@mail.com", 1133445566, 45612378, 3, true))
	col.Put("A1005", member("Marta", "Pérez", "Cabildo 202, CABA", "marta@mail.com", 1177889900, 0, 0, true))
	col.Put("A1006", member("Jorge", "Rodríguez", "Scalabrini Ortiz 333, CABA", "jorge@mail.com", 1122334455, 48235791, 1, false))
	col.Put("A1007", member("Sofía", "Fernández", "Av. Rivadavia 8500, CABA", "sofia@mail.com", 1144221133, 0, 2, true))
	col.Put("A1008", member("Diego", "Suárez", "Av. San Juan 2500, CABA", "diego@mail.com", 1188997766, 43006789, 0, true))
	col.Put("A1009", member("Valeria", "Prieto", "José León Suárez 1550, CABA", "valeria@mail.com", 1133556688, 0, 1, true))
	col.Put("A1010", member("Esteban", "Ramos", "Av. Las Heras 3400, CABA", "esteban@mail.com", 1166442211, 47771234, 3, true))
	return col
}

func seedBooks() *library.Collection {
	col := library.NewCollection()
	col.Put("L1001", book("Cien años de soledad", "Gabriel García Márquez", "Realismo mágico", "Sudamericana", 3200, true))
	col.Put("L1002", book("1984", "George Orwell", "Distopía", "Secker & Warburg", 4100, true))
	col.Put("L1003", book("Orgullo y prejuicio", "Jane Austen", "Novela romántica", "T. Egerton", 2700, true))
	col.Put("L1004", book("El nombre de la rosa", "Umberto Eco", "Novela histórica", "Bompiani", 4800, true))
	col.Put("L1005", book("Crónica de una muerte anunciada", "Gabriel García Márquez", "Novela corta", "Oveja Negra", 2500, true))
	col.Put("L1006", book("El principito", "Antoine de Saint-Exupéry", "Fábula", "Reynal & Hitchcock", 1500, true))
	col.Put("L1007", book("Los detectives salvajes", "Roberto Bolaño", "Novela", "Anagrama", 3400, true))
	col.Put("L1008", book("La sombra del viento", "Carlos Ruiz Zafón", "Misterio", "Planeta", 3900, true))
	col.Put("L1009", book("Rayuela", "Julio Cortázar", "Novela experimental", "Sudamericana", 1800, true))
	col.Put("L1010", book("El amor en los tiempos del cólera", "Gabriel García Márquez", "Novela", "Oveja Negra", 3000, false))
	return col
}

func seedLoans() *library.Collection {
	col := library.NewCollection()
	col.Put("2025.05.01 09:15:32", loan("2025.05.01 09:15:32", "A1001", "L1002", 14, "2025-05-01", "2025-05-15", true))
	col.Put("2025.05.03 14:07:45", loan("2025.05.03 14:07:45", "A1002", "L1005", 7, "2025-05-03", "2025-05-10", true))
	col.Put("2025.04.20 11:55:12", loan("2025.04.20 11:55:12", "A1003", "L1001", 21, "2025-04-20", "2025-05-11", false))
	col.Put("2025.05.25 16:20:05", loan("2025.05.25 16:20:05", "A1004", "L1008", 10, "2025-05-25", "2025-06-04", true))
	col.Put("2025.04.10 10:40:00", loan("2025.04.10 10:40:00", "A1005", "L1004", 30, "2025-04-10", "2025-05-10", true))
	col.Put("2025.05.18 13:27:18", loan("2025.05.18 13:27:18", "A1006", "L1006", 15, "2025-05-18", "2025-06-02", false))
	col.Put("2025.05.22 08:50:01", loan("2025.05.22 08:50:01", "A1007", "L1003", 12, "2025-05-22", "2025-06-03", true))
	col.Put("2025.05.28 12:12:09", loan("2025.05.28 12:12:09", "A1008", "L1009", 20, "2025-05-28", "2025-06-17", true))
	col.Put("2025.05.30 18:33:44", loan("2025.05.30 18:33:44", "A1009", "L1010", 8, "2025-05-30", "2025-06-07", false))
	col.Put("2025.05.05 15:05:29", loan("2025.05.05 15:05:29", "A1010", "L1007", 25, "2025-05-05", "2025-05-30", true))
	return col
}
