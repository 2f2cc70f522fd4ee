package taskfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/oribarilan/plz/internal/registry"
	"github.com/oribarilan/plz/internal/shell"
	"github.com/oribarilan/plz/internal/task"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// paramTypes maps the type labels accepted in param blocks to cty types.
var paramTypes = map[string]cty.Type{
	"string": cty.String,
	"number": cty.Number,
	"bool":   cty.Bool,
	"any":    cty.DynamicPseudoType,
}

// translateTask converts a decoded task block into a task.Task. Dependency
// references are resolved against reg immediately, so a requires block can
// only name tasks declared earlier in the file.
func (l *Loader) translateTask(ts *taskSchema, reg *registry.Registry) (*task.Task, error) {
	params, err := translateParams(ts)
	if err != nil {
		return nil, err
	}

	var requires []task.Dependency
	for _, rs := range ts.Requires {
		dep, err := reg.Lookup(rs.Task)
		if err != nil {
			return nil, fmt.Errorf("task %q: requires undeclared task %q (dependencies must be declared before use)", ts.Name, rs.Task)
		}
		args, err := evalBoundArgs(ts.Name, rs.Args)
		if err != nil {
			return nil, err
		}
		requires = append(requires, task.Dependency{Task: dep, Args: args})
	}

	return &task.Task{
		Name:     ts.Name,
		Desc:     ts.Description,
		Params:   params,
		Requires: requires,
		Default:  ts.Default,
		Env:      ts.Env,
		Body:     l.commandBody(ts),
	}, nil
}

func translateParams(ts *taskSchema) ([]task.Param, error) {
	params := make([]task.Param, 0, len(ts.Params))
	for _, ps := range ts.Params {
		label := ps.Type
		if label == "" {
			label = "string"
		}
		ty, ok := paramTypes[label]
		if !ok {
			return nil, fmt.Errorf("task %q: param %q: unknown type %q", ts.Name, ps.Name, label)
		}

		var defaultVal *cty.Value
		if ps.Default != nil {
			val, diags := ps.Default.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("task %q: param %q: invalid default: %w", ts.Name, ps.Name, diags)
			}
			// A null default leaves the parameter required.
			if !val.IsNull() {
				converted, err := convert.Convert(val, ty)
				if err != nil {
					return nil, fmt.Errorf("task %q: param %q: default is not a %s: %w", ts.Name, ps.Name, label, err)
				}
				defaultVal = &converted
			}
		}

		params = append(params, task.Param{
			Name:        ps.Name,
			Type:        ty,
			Default:     defaultVal,
			Description: ps.Description,
		})
	}
	return params, nil
}

// evalBoundArgs evaluates the args list of a requires block. Bound arguments
// are static values; they have no parameters in scope.
func evalBoundArgs(taskName string, expr hcl.Expression) ([]cty.Value, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("task %q: evaluating requires args: %w", taskName, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("task %q: requires args must be a list", taskName)
	}

	var args []cty.Value
	for it := val.ElementIterator(); it.Next(); {
		_, el := it.Element()
		args = append(args, el)
	}
	return args, nil
}

// commandBody builds the task body: each run entry is evaluated with the
// task's parameters in scope and executed through the shell runner. A
// non-zero exit fails the task unless fail_fast is disabled.
func (l *Loader) commandBody(ts *taskSchema) task.Func {
	if ts.Run == nil {
		return nil
	}
	runExpr := ts.Run
	failFast := true
	if ts.FailFast != nil {
		failFast = *ts.FailFast
	}

	return func(ctx context.Context, inv *task.Invocation) (any, error) {
		commands, err := evalCommands(runExpr, inv)
		if err != nil {
			return nil, err
		}
		for _, command := range commands {
			_, code := l.shell.Run(ctx, command, shell.Options{Echo: true})
			if code != 0 && failFast {
				return nil, fmt.Errorf("task %q: command exited with code %d", inv.Task.Name, code)
			}
		}
		return nil, nil
	}
}

// evalCommands resolves the run expression to a list of command strings with
// the invocation's coerced arguments bound to the parameter names.
func evalCommands(expr hcl.Expression, inv *task.Invocation) ([]string, error) {
	vars := make(map[string]cty.Value, len(inv.Task.Params))
	for i, p := range inv.Task.Params {
		vars[p.Name] = inv.Args[i]
	}

	val, diags := expr.Value(&hcl.EvalContext{Variables: vars})
	if diags.HasErrors() {
		return nil, fmt.Errorf("task %q: evaluating run commands: %w", inv.Task.Name, diags)
	}
	if val.IsNull() || !val.CanIterateElements() {
		return nil, fmt.Errorf("task %q: run must be a list of command strings", inv.Task.Name)
	}

	var commands []string
	for it := val.ElementIterator(); it.Next(); {
		_, el := it.Element()
		s, err := convert.Convert(el, cty.String)
		if err != nil {
			return nil, fmt.Errorf("task %q: run entry is not a string: %w", inv.Task.Name, err)
		}
		commands = append(commands, s.AsString())
	}
	return commands, nil
}
