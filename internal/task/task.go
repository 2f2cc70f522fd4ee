package task

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oribarilan/plz/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Func is the signature of a task body. The returned value, when non-nil and
// non-empty, is printed to the invocation's output writer.
type Func func(ctx context.Context, inv *Invocation) (any, error)

// Param is an explicit descriptor for a single positional parameter of a
// task body. A parameter without a default value is required.
type Param struct {
	Name        string
	Type        cty.Type
	Default     *cty.Value
	Description string
}

// Required reports whether the parameter must be supplied by the caller.
func (p Param) Required() bool {
	return p.Default == nil
}

// Dependency pairs a task with the fixed arguments it is invoked with when
// it runs as part of another task's dependency chain.
type Dependency struct {
	Task *Task
	Args []cty.Value
}

// Task is a single registered unit of work. Tasks are created once at
// registration time and are not mutated afterwards.
type Task struct {
	Name     string
	Desc     string
	Params   []Param
	Requires []Dependency
	Default  bool
	Builtin  bool

	// Env holds task-scoped environment variables, applied to the process
	// environment immediately before the dependency chain and body run.
	Env map[string]string

	Body Func
}

// Invocation carries the coerced positional arguments and the output writer
// into a task body.
type Invocation struct {
	Task *Task
	Args []cty.Value
	Out  io.Writer
}

// Arg returns the coerced value of the named parameter. It panics on an
// unknown name, which indicates a body out of sync with its descriptors.
func (inv *Invocation) Arg(name string) cty.Value {
	for i, p := range inv.Task.Params {
		if p.Name == name {
			return inv.Args[i]
		}
	}
	panic(fmt.Sprintf("task %q has no parameter %q", inv.Task.Name, name))
}

// String returns the named parameter as a Go string.
func (inv *Invocation) String(name string) string {
	return inv.Arg(name).AsString()
}

// Int returns the named parameter as a Go int.
func (inv *Invocation) Int(name string) int {
	v, _ := inv.Arg(name).AsBigFloat().Int64()
	return int(v)
}

// Bool returns the named parameter as a Go bool.
func (inv *Invocation) Bool(name string) bool {
	return inv.Arg(name).True()
}

// Invoke runs the task: task-scoped env first, then every dependency in
// declared order with its bound arguments, then the body with the validated
// and coerced caller arguments. Output from the body's return value is
// written to out.
func (t *Task) Invoke(ctx context.Context, out io.Writer, args []cty.Value) error {
	logger := ctxlog.FromContext(ctx)

	for key, value := range t.Env {
		logger.Debug("Applying task-scoped environment variable.", "task", t.Name, "key", key)
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("task %q: setting env %q: %w", t.Name, key, err)
		}
	}

	for _, dep := range t.Requires {
		logger.Debug("Running dependency.", "task", t.Name, "dependency", dep.Task.Name)
		if err := dep.Task.Invoke(ctx, out, dep.Args); err != nil {
			return err
		}
	}

	coerced, err := t.coerceArgs(args)
	if err != nil {
		return err
	}

	if t.Body == nil {
		return nil
	}

	result, err := t.Body(ctx, &Invocation{Task: t, Args: coerced, Out: out})
	if err != nil {
		return err
	}
	if result != nil {
		if s, ok := result.(string); ok && s == "" {
			return nil
		}
		fmt.Fprintln(out, result)
	}
	return nil
}

// coerceArgs validates arity and converts each supplied argument to its
// declared type. Arguments fill parameters positionally; every parameter
// left unfilled must have a default, otherwise the invocation fails with an
// ArityError naming the missing parameters.
func (t *Task) coerceArgs(args []cty.Value) ([]cty.Value, error) {
	if len(args) > len(t.Params) {
		return nil, fmt.Errorf("task %q accepts at most %d argument(s), got %d", t.Name, len(t.Params), len(args))
	}
	var missing []string
	for _, p := range t.Params[len(args):] {
		if p.Required() {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &ArityError{Task: t.Name, Missing: missing}
	}

	coerced := make([]cty.Value, len(t.Params))
	for i, p := range t.Params {
		if i < len(args) {
			v, err := convert.Convert(args[i], p.Type)
			if err != nil {
				return nil, &ArgumentTypeError{
					Task:  t.Name,
					Param: p.Name,
					Want:  p.Type.FriendlyName(),
					Err:   err,
				}
			}
			coerced[i] = v
			continue
		}
		coerced[i] = *p.Default
	}
	return coerced, nil
}
