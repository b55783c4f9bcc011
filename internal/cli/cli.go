package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vk/xspecgen/internal/app"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitOutOfDate  = 3
	envPrefix      = "XSPECGEN_"
	defaultEnvFile = ".env"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode maps an error returned by Parse or the app to a process exit
// code.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, app.ErrOutOfDate):
		return ExitOutOfDate
	default:
		return ExitFailure
	}
}

// LookupEnv is the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// envBound lists the flags that fall back to an XSPECGEN_* variable.
var envBound = []string{"log-level", "log-format", "module", "class-prefix"}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return parse(args, output, os.LookupEnv)
}

func parse(args []string, output io.Writer, lookup LookupEnv) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		cfg       app.Config
		envFile   string
		modelFile string
		ran       bool
	)

	cmd := &cobra.Command{
		Use:   "xspecgen [flags] MODEL_DAT",
		Short: "Generate Python bindings for the XSPEC model library",
		Long: `xspecgen reads an XSPEC model description file (model.dat) and writes the
Python model classes, the C declarations and the dispatch table entries
needed to bind the models to Python.

In test mode the three fragments are written to PREFIX.py.incl,
PREFIX.declare.incl and PREFIX.methoddef.incl. In insert mode they replace
the BEGIN/END GENERATED sections of the repository files.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			if len(args) == 1 {
				modelFile = args[0]
			}
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&cfg.OutPrefix, "out", "o", app.DefaultOutPrefix, "Output prefix for the generated files in test mode.")
	flags.StringVar(&cfg.Mode, "mode", app.ModeTest, "Output mode. Options: 'test' or 'insert'.")
	flags.StringVar(&cfg.RepoRoot, "repo-root", ".", "Repository root holding the insert mode targets.")
	flags.StringVar(&cfg.Module, "module", "", "Python module hosting the compiled code (default \"xspec\").")
	flags.StringVar(&cfg.ClassPrefix, "class-prefix", "", "Prefix of the generated class names (default \"XS\").")
	flags.StringVarP(&cfg.ConfigFile, "config", "c", "", "Optional HCL generator configuration file.")
	flags.BoolVar(&cfg.AllowPerSpectrum, "allow-per-spectrum", false, "Accept models that are re-evaluated per spectrum.")
	flags.BoolVar(&cfg.AllowConvolution, "allow-convolution", false, "Accept convolution models.")
	flags.BoolVar(&cfg.Check, "check", false, "Do not write; show differences and exit 3 if the files are out of date.")
	flags.BoolVar(&cfg.Color, "color", false, "Colorize the differences shown by --check.")
	flags.StringVar(&cfg.ReportFile, "report", "", "Write a YAML report of the run to this file.")
	flags.StringVar(&envFile, "env-file", defaultEnvFile, "Optional dotenv file with XSPECGEN_* defaults.")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if !ran {
		// --help was printed.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	if modelFile == "" {
		fmt.Fprintln(output, cmd.UsageString())
		return nil, false, &ExitError{Code: ExitUsage, Message: "missing MODEL_DAT argument"}
	}
	cfg.ModelFile = modelFile

	if err := applyEnv(flags, envFile, lookup); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// applyEnv sets the flags that were not given on the command line from the
// environment, falling back to the dotenv file. A missing dotenv file is
// not an error.
func applyEnv(flags *pflag.FlagSet, envFile string, lookup LookupEnv) error {
	dotenv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = values
		case errors.Is(err, os.ErrNotExist):
		default:
			return fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}

	for _, name := range envBound {
		if flags.Changed(name) {
			continue
		}
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		value, ok := lookup(key)
		if !ok {
			value, ok = dotenv[key]
		}
		if !ok {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}
