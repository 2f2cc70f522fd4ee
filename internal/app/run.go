package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/oribarilan/plz/internal/ctxlog"
	"github.com/oribarilan/plz/internal/render"
	"github.com/oribarilan/plz/internal/task"
	"github.com/zclconf/go-cty/cty"
)

// Run drives one CLI execution. The dispatch rules are evaluated in strict
// priority order and the first match is terminal for the run: unconditional
// utility flags, then general help, then the default task, then the named
// task. A command matching none of them is an internal error.
func (a *App) Run(ctx context.Context, cmd *Command) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.applyCommandEnv(cmd)

	steps := []func(context.Context, *Command) (bool, error){
		a.tryUtility,
		a.tryHelp,
		a.tryDefault,
		a.tryTask,
	}
	for _, step := range steps {
		done, err := step(ctx, cmd)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return errors.New("execution failed for an unknown reason")
}

// applyCommandEnv applies the inline `-e KEY=VALUE` overrides to the process
// environment, exactly once per run, before any task resolution.
func (a *App) applyCommandEnv(cmd *Command) {
	for _, kv := range cmd.Env {
		a.logger.Debug("Applying inline environment variable.", "key", kv[0])
		os.Setenv(kv[0], kv[1])
	}
}

func (a *App) tryUtility(ctx context.Context, cmd *Command) (bool, error) {
	if cmd.HasTask() {
		return false, nil
	}
	switch {
	case cmd.List:
		a.listTasks()
	case cmd.ListEnv:
		a.printEnv(cmd.Env, false)
	case cmd.ListEnvAll:
		a.printEnv(cmd.Env, true)
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) tryHelp(ctx context.Context, cmd *Command) (bool, error) {
	if cmd.HasTask() || !cmd.Help {
		return false, nil
	}
	a.printHelp()
	return true, nil
}

// tryDefault handles an invocation with no task named: the default task runs
// with no arguments; with no default registered, the task listing is printed
// as guidance.
func (a *App) tryDefault(ctx context.Context, cmd *Command) (bool, error) {
	if cmd.HasTask() {
		return false, nil
	}
	def, err := a.registry.Default()
	if err != nil {
		return false, err
	}
	if def == nil {
		a.listTasks()
		return true, nil
	}
	return true, a.invoke(ctx, def, nil)
}

func (a *App) tryTask(ctx context.Context, cmd *Command) (bool, error) {
	if !cmd.HasTask() {
		return false, nil
	}
	t, err := a.registry.Lookup(cmd.Task)
	if err != nil {
		return false, err
	}
	if cmd.Help {
		t.Describe(a.outW)
		return true, nil
	}
	if cmd.ListEnv {
		a.printEnv(cmd.Env, false)
		return true, nil
	}
	return true, a.invoke(ctx, t, cmd.Args)
}

// invoke runs the task with the CLI-supplied positional arguments. Arguments
// arrive as strings; the task's parameter descriptors drive coercion.
func (a *App) invoke(ctx context.Context, t *task.Task, args []string) error {
	vals := make([]cty.Value, len(args))
	for i, s := range args {
		vals[i] = cty.StringVal(s)
	}
	return t.Invoke(ctx, a.outW, vals)
}

// listTasks prints the registered-tasks table, or guidance when the user's
// plzfile declared no tasks of its own.
func (a *App) listTasks() {
	if a.registry.OnlyBuiltins() {
		fmt.Fprintln(a.outW, "No tasks have been registered. plz expects at least one task block in your plzfile.hcl")
		return
	}
	tasks := a.registry.Tasks()
	rows := make([]render.ListRow, len(tasks))
	for i, t := range tasks {
		rows[i] = render.ListRow{Name: t.Name, Description: t.Desc, Default: t.Default}
	}
	render.TaskList(a.outW, rows)
}

// printHelp prints the general usage message followed by the task listing.
func (a *App) printHelp() {
	fmt.Fprint(a.outW, `Usage: plz [flags] [task] [args]

Flags:
  -h, --help      Show help for a specific task (or for plz if no task is provided)
  -l, --list      List all available tasks
  -e KEY=VALUE    Set an environment variable for this run (repeatable)
  --list-env      List environment variables from the .env file and -e flags
  --list-env-all  List all environment variables
  --file PATH     Path to the plzfile (default "plzfile.hcl")
  --env-file PATH Path to the .env file (default ".env")
  --dry-run       Print shell commands instead of running them

`)
	a.listTasks()
}

// printEnv prints the environment listings: the .env file values, the inline
// overrides, and optionally everything else in the process environment.
func (a *App) printEnv(inline [][2]string, all bool) {
	dotenvRows := make([][2]string, 0, len(a.dotenv))
	for k, v := range a.dotenv {
		dotenvRows = append(dotenvRows, [2]string{k, v})
	}
	render.Box(a.outW, ".env", dotenvRows, true)
	render.Box(a.outW, "in-line", inline, true)

	if !all {
		return
	}
	var rest [][2]string
	for _, entry := range os.Environ() {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, fromFile := a.dotenv[k]; fromFile {
			continue
		}
		rest = append(rest, [2]string{k, v})
	}
	render.Box(a.outW, "All (rest)", rest, true)
}
