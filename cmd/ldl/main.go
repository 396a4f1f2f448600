package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/edp1096/ldl"
)

type App struct {
	cfg    *Config
	log    zerolog.Logger
	out    io.Writer
	solver *ldl.Solver

	problem  *problem
	rhs      []float64
	solution []float64

	factorTime float64
	solveTime  float64
	startTime  time.Time
}

func InitApp(cfg *Config, out io.Writer) (*App, error) {
	a := &App{
		cfg:       cfg,
		log:       newLogger(cfg.Log, os.Stderr),
		out:       out,
		startTime: time.Now(),
	}

	var err error
	a.solver, err = ldl.Create(&ldl.Configuration{
		AbsThreshold:   cfg.AbsThreshold,
		AllowNonFinite: cfg.AllowNonFinite,
		PrinterWidth:   cfg.PrinterWidth,
		Annotate:       cfg.Annotate,
		Logger:         &a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create solver: %w", err)
	}
	return a, nil
}

func newLogger(cfg LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func (a *App) readMatrixFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error opening file: %v", err)
	}
	defer file.Close()

	a.problem, err = readProblem(file, a.cfg.Lower)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	if !a.cfg.SolutionOnly {
		fmt.Fprintf(a.out, "\n%s\n\n", a.problem.description)
		fmt.Fprintf(a.out, "Matrix is %d x %d and real.\n", a.problem.size, a.problem.size)
	}

	a.rhs = a.problem.rhs
	if a.rhs == nil {
		// b = A*1, so the solution is all ones
		ones := make([]float64, a.problem.size)
		for i := range ones {
			ones[i] = 1
		}
		a.rhs = make([]float64, a.problem.size)
		if err := a.problem.matrix.MulVec(a.rhs, ones); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) factor() error {
	factorStart := time.Now()
	if err := a.solver.Invert(a.problem.matrix); err != nil {
		return fmt.Errorf("factor failed: %w", err)
	}
	a.factorTime = time.Since(factorStart).Seconds()
	return nil
}

func (a *App) solve() error {
	a.solution = append([]float64(nil), a.rhs...)

	solveStart := time.Now()
	if err := a.solver.Solve(a.solution); err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	a.solveTime = time.Since(solveStart).Seconds()
	return nil
}

func (a *App) printSolution() {
	limit := len(a.solution)
	if !a.cfg.SolutionOnly && a.cfg.PrintLimit > 0 && a.cfg.PrintLimit < limit {
		limit = a.cfg.PrintLimit
	}

	if !a.cfg.SolutionOnly {
		fmt.Fprintln(a.out, "Solution:")
	}
	for i := 0; i < limit; i++ {
		fmt.Fprintf(a.out, "%-16.9g\n", a.solution[i])
	}
	if !a.cfg.SolutionOnly && limit < len(a.solution) && limit != 0 {
		fmt.Fprintf(a.out, "Solution list truncated.\n")
	}
	fmt.Fprintln(a.out)
}

func (a *App) printStatistics() {
	if a.cfg.SolutionOnly {
		return
	}

	fmt.Fprintf(a.out, "Statistics:\n")
	fmt.Fprintf(a.out, "Factor time = %.3f.\n", a.factorTime)
	fmt.Fprintf(a.out, "Solve time = %.3f.\n", a.solveTime)

	det, exp, err := a.solver.Determinant()
	if err == nil {
		if det != 0.0 && exp != 0 {
			fmt.Fprintf(a.out, "Determinant = %.3ge%d\n", det, exp)
		} else {
			fmt.Fprintf(a.out, "Determinant = %.3g\n", det)
		}
	}

	if a.solver.A != nil {
		if res, err := ldl.Residual(a.solver.A, a.solution, a.rhs); err == nil {
			fmt.Fprintf(a.out, "Normalized residual = %.2g\n", res)
		}
		fmt.Fprintf(a.out, "Infinity norm of matrix = %.4g\n", ldl.Norm(a.solver.A))
	}

	fmt.Fprintf(a.out, "\nTotal number of elements = %d\n", a.solver.ElementCount())
	fmt.Fprintf(a.out, "Total number of entries in L = %d\n", a.solver.FactorCount())
	fmt.Fprintf(a.out, "Total number of fill-ins = %d\n", a.solver.FillinCount())
	fmt.Fprintln(a.out)
}

func (a *App) printResourceUsage() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	fmt.Fprintf(a.out, "\nAggregate resource usage:\n")
	fmt.Fprintf(a.out, "    Time required = %.4f seconds.\n", time.Since(a.startTime).Seconds())
	fmt.Fprintf(a.out, "    Heap memory used = %d kBytes\n", m.HeapAlloc/1024)
	fmt.Fprintf(a.out, "    Total memory from OS = %d kBytes\n\n", m.Sys/1024)
}

func (a *App) saveState(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating state file: %v", err)
	}
	if err := a.solver.Save(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	a.log.Info().Str("path", path).Msg("factorization saved")
	return nil
}

func (a *App) loadState(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening state file: %v", err)
	}
	defer file.Close()
	return a.solver.Load(file)
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		app        *App
	)

	root := &cobra.Command{
		Use:           "ldl",
		Short:         "Sparse symmetric LDL' direct solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			app, err = InitApp(cfg, cmd.OutOrStdout())
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default ldl.yaml)")
	flags.BoolP("solution-only", "s", false, "Print solution rather than run statistics")
	flags.Float64P("abs-threshold", "a", 0.0, "Treat pivots with |d| <= x as zero")
	flags.IntP("print-limit", "n", 9, "Print first n terms of solution vector")
	flags.Int("annotate", 0, "0: none, 1: summary, 2: every column")
	flags.Bool("lower", false, "Matrix file holds the lower triangle")
	flags.String("log-level", "info", "trace, debug, info, warn, error")

	var savePath string
	solveCmd := &cobra.Command{
		Use:   "solve <matrix-file>",
		Short: "Factor a matrix file and solve for its right-hand side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.readMatrixFromFile(args[0]); err != nil {
				return err
			}
			if err := app.factor(); err != nil {
				return err
			}
			if err := app.solve(); err != nil {
				return err
			}
			app.printSolution()
			app.printStatistics()
			if savePath != "" {
				if err := app.saveState(savePath); err != nil {
					return err
				}
			}
			if !app.cfg.SolutionOnly {
				app.printResourceUsage()
			}
			return nil
		},
	}
	solveCmd.Flags().StringVar(&savePath, "save", "", "write the factorization to this file")

	resolveCmd := &cobra.Command{
		Use:   "resolve <state-file> <rhs-file>",
		Short: "Solve with a saved factorization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadState(args[0]); err != nil {
				return err
			}
			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("error opening rhs file: %v", err)
			}
			defer file.Close()

			app.rhs, err = readVector(file)
			if err != nil {
				return err
			}
			if err := app.solve(); err != nil {
				return err
			}
			app.printSolution()
			app.printStatistics()
			return nil
		},
	}

	printCmd := &cobra.Command{
		Use:   "print <matrix-file>",
		Short: "Print the matrix and its factors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.readMatrixFromFile(args[0]); err != nil {
				return err
			}
			if err := app.solver.ComputePattern(app.problem.matrix); err != nil {
				return err
			}
			app.solver.Print(app.out, true, true)
			if err := app.solver.ComputeFactor(app.problem.matrix); err != nil {
				return err
			}
			app.solver.Print(app.out, true, true)
			return nil
		},
	}

	spyCmd := &cobra.Command{
		Use:   "spy <matrix-file> <png-file>",
		Short: "Plot the sparsity of the matrix and of L",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.readMatrixFromFile(args[0]); err != nil {
				return err
			}
			if err := app.factor(); err != nil {
				return err
			}
			return saveSpy(app.solver, app.problem.description, args[1])
		},
	}

	root.AddCommand(solveCmd, resolveCmd, printCmd, spyCmd)
	return root
}

// applyFlags lets explicitly set flags override file and environment values.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("solution-only") {
		cfg.SolutionOnly, _ = flags.GetBool("solution-only")
	}
	if flags.Changed("abs-threshold") {
		cfg.AbsThreshold, _ = flags.GetFloat64("abs-threshold")
	}
	if flags.Changed("print-limit") {
		cfg.PrintLimit, _ = flags.GetInt("print-limit")
	}
	if flags.Changed("annotate") {
		cfg.Annotate, _ = flags.GetInt("annotate")
	}
	if flags.Changed("lower") {
		cfg.Lower, _ = flags.GetBool("lower")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}
}
