package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/oribarilan/plz/internal/app"
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

// envValue collects repeatable `-e KEY=VALUE` flags in order.
type envValue [][2]string

func (e *envValue) String() string {
	pairs := make([]string, len(*e))
	for i, kv := range *e {
		pairs[i] = kv[0] + "=" + kv[1]
	}
	return strings.Join(pairs, ",")
}

func (e *envValue) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("environment override must be KEY=VALUE, got %q", v)
	}
	*e = append(*e, [2]string{key, value})
	return nil
}

// Parse processes command-line arguments. Flags must precede the task name;
// everything after the first non-flag argument is the task name followed by
// its positional arguments. It returns the application config, the resolved
// command, and a boolean indicating the program should exit cleanly.
func Parse(args []string, output io.Writer) (*app.Config, *app.Command, bool, error) {
	flagSet := flag.NewFlagSet("plz", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `plz - a task runner.

Usage:
  plz [flags] [task] [args]

Flags:
`)
		flagSet.PrintDefaults()
	}

	var helpFlag, listFlag bool
	flagSet.BoolVar(&helpFlag, "h", false, "Show help for a task, or for plz if no task is given.")
	flagSet.BoolVar(&helpFlag, "help", false, "Show help for a task, or for plz if no task is given (shorthand -h).")
	flagSet.BoolVar(&listFlag, "l", false, "List all available tasks.")
	flagSet.BoolVar(&listFlag, "list", false, "List all available tasks (shorthand -l).")
	listEnvFlag := flagSet.Bool("list-env", false, "List environment variables from the .env file and -e flags.")
	listEnvAllFlag := flagSet.Bool("list-env-all", false, "List all environment variables.")
	var env envValue
	flagSet.Var(&env, "e", "Set an environment variable as KEY=VALUE for this run. Repeatable.")
	fileFlag := flagSet.String("file", "plzfile.hcl", "Path to the plzfile.")
	envFileFlag := flagSet.String("env-file", ".env", "Path to the .env file.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print shell commands instead of running them.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, true, nil
		}
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Taskfile:  *fileFlag,
		EnvFile:   *envFileFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		DryRun:    *dryRunFlag,
	})
	if err != nil {
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	command := &app.Command{
		Help:       helpFlag,
		List:       listFlag,
		ListEnv:    *listEnvFlag,
		ListEnvAll: *listEnvAllFlag,
		Env:        env,
	}
	if flagSet.NArg() > 0 {
		command.Task = flagSet.Arg(0)
		command.Args = flagSet.Args()[1:]
	}

	return config, command, false, nil
}
