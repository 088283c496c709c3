package main

import (
	"fmt"
	"os"
	"strconv"

	"biblioteca/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:          "biblioteca",
		Short:        "Gestión de préstamos de libros para una biblioteca educativa",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", "", "ruta del archivo de configuración")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := library.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	logger, err := library.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	newApp(cfg, logger).mainMenu()
	return nil
}

// app wires the interactive shell to the core components. Every menu action
// runs synchronously, prints its own result, and returns control here.
type app struct {
	prompt  *library.Prompter
	eng     *library.Engine
	loans   *library.LoanService
	reports *library.Reporter

	memberStore library.Store
	bookStore   library.Store

	log *zap.Logger
}

func newApp(cfg *library.Config, logger *zap.Logger) *app {
	members := library.NewFileStore(cfg.MembersFile, logger)
	books := library.NewFileStore(cfg.BooksFile, logger)
	loans := library.NewFileStore(cfg.LoansFile, logger)

	prompt := library.NewPrompter(os.Stdin, os.Stdout, library.NewValidator(logger))
	eng := library.NewEngine(prompt, os.Stdout, logger)

	return &app{
		prompt:      prompt,
		eng:         eng,
		loans:       library.NewLoanService(members, books, loans, eng, logger),
		reports:     library.NewReporter(members, books, loans, logger),
		memberStore: members,
		bookStore:   books,
		log:         logger,
	}
}

func (a *app) mainMenu() {
	for {
		choice := a.menu("MENÚ PRINCIPAL", []string{
			"Gestión de alumnos",
			"Gestión de libros",
			"Gestión de préstamos",
			"Informes",
		}, "Salir del programa")

		switch choice {
		case "0":
			fmt.Println("Hasta luego.")
			return
		case "1":
			a.memberMenu()
		case "2":
			a.bookMenu()
		case "3":
			a.loanMenu()
		case "4":
			a.reportMenu()
		}
	}
}

func (a *app) memberMenu() {
	for {
		choice := a.menu("MENÚ PRINCIPAL > GESTIÓN DE ALUMNOS", []string{
			"Ingresar alumno",
			"Modificar alumno",
			"Inactivar alumno",
			"Listar alumnos",
		}, "Volver al menú anterior")

		sc := library.MemberSchema()
		switch choice {
		case "0":
			return
		case "1":
			a.safely("ingresar alumno", func() error { return a.eng.Create(a.memberStore, sc) })
		case "2":
			a.safely("modificar alumno", func() error { return a.eng.Modify(a.memberStore, sc) })
		case "3":
			a.safely("inactivar alumno", func() error { return a.eng.Deactivate(a.memberStore, sc) })
		case "4":
			a.safely("listar alumnos", func() error { return a.eng.List(a.memberStore, sc) })
		}
		a.prompt.Pause()
	}
}

func (a *app) bookMenu() {
	for {
		choice := a.menu("MENÚ PRINCIPAL > GESTIÓN DE LIBROS", []string{
			"Ingresar libro",
			"Modificar libro",
			"Inactivar libro",
			"Listado de libros",
		}, "Volver al menú anterior")

		sc := library.BookSchema()
		switch choice {
		case "0":
			return
		case "1":
			a.safely("ingresar libro", func() error { return a.eng.Create(a.bookStore, sc) })
		case "2":
			a.safely("modificar libro", func() error { return a.eng.Modify(a.bookStore, sc) })
		case "3":
			a.safely("inactivar libro", func() error { return a.eng.Deactivate(a.bookStore, sc) })
		case "4":
			a.safely("listar libros", func() error { return a.eng.List(a.bookStore, sc) })
		}
		a.prompt.Pause()
	}
}

func (a *app) loanMenu() {
	for {
		choice := a.menu("MENÚ PRINCIPAL > GESTIÓN DE PRÉSTAMOS", []string{
			"Registro de préstamo",
			"Finalización de préstamo",
		}, "Volver al menú anterior")

		switch choice {
		case "0":
			return
		case "1":
			a.safely("registrar préstamo", a.loans.Open)
		case "2":
			a.safely("finalizar préstamo", a.loans.Close)
		}
		a.prompt.Pause()
	}
}

func (a *app) reportMenu() {
	for {
		choice := a.menu("MENÚ PRINCIPAL > INFORMES", []string{
			"Reservas del mes",
			"Resumen Anual de Reservas por Libro (Cantidades)",
			"Resumen Anual de Reservas por Libro (Pesos)",
			"Resumen anual de reservas con devolución incorrecta",
		}, "Volver al menú anterior")

		switch choice {
		case "0":
			return
		case "1":
			a.safely("reservas del mes", func() error {
				year, ok := a.askInt("Ingrese el año (formato AAAA)")
				if !ok {
					return nil
				}
				month, ok := a.askInt("Ingrese el mes (1-12)")
				if !ok {
					return nil
				}
				out, err := a.reports.Monthly(year, month)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			})
		case "2":
			a.safely("resumen anual cantidades", a.annualReport(a.reports.AnnualCounts))
		case "3":
			a.safely("resumen anual pesos", a.annualReport(a.reports.AnnualAmounts))
		case "4":
			a.safely("resumen devoluciones incorrectas", a.annualReport(a.reports.AnnualIncorrectReturns))
		}
		a.prompt.Pause()
	}
}

func (a *app) annualReport(report func(int) (string, error)) func() error {
	return func() error {
		year, ok := a.askInt("Ingrese el año (formato AAAA)")
		if !ok {
			return nil
		}
		out, err := report(year)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
}

// menu prints a numbered menu and returns the chosen option, re-prompting on
// anything outside the range.
func (a *app) menu(title string, options []string, exitLabel string) string {
	for {
		fmt.Println()
		fmt.Println("---------------------------")
		fmt.Println(title)
		fmt.Println("---------------------------")
		for i, opt := range options {
			fmt.Printf("[%d] %s\n", i+1, opt)
		}
		fmt.Println("---------------------------")
		fmt.Printf("[0] %s\n", exitLabel)
		fmt.Println("---------------------------")

		choice, ok := a.prompt.Ask("Seleccione una opción")
		if !ok {
			return "0"
		}
		if n, err := strconv.Atoi(choice); err == nil && n >= 0 && n <= len(options) {
			return choice
		}
		fmt.Println("Opción inválida.")
	}
}

func (a *app) askInt(label string) (int, bool) {
	raw, ok := a.prompt.Ask(label)
	if !ok {
		return 0, false
	}
	val, ok := a.prompt.Collect(raw, label, library.KindInteger)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// safely is the operation boundary: expected errors are reported and logged,
// an unexpected fault is recovered so the session keeps running.
func (a *app) safely(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("fallo inesperado", zap.String("operacion", name), zap.Any("causa", r))
			fmt.Println("La operación no pudo completarse. Consulte el log.")
		}
	}()
	if err := fn(); err != nil {
		a.log.Error("operación fallida", zap.String("operacion", name), zap.Error(err))
		fmt.Printf("Error: %v\n", err)
	}
}
