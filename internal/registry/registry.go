package registry

import (
	"fmt"
	"strings"

	"github.com/oribarilan/plz/internal/task"
)

// Registry is an insertion-ordered mapping from task name to Task.
type Registry struct {
	tasks map[string]*task.Task
	order []string
}

// New creates and initializes an empty Registry.
func New() *Registry {
	return &Registry{tasks: make(map[string]*task.Task)}
}

// Register inserts the task under its name. A colliding name overwrites the
// earlier definition but keeps its original listing position.
func (r *Registry) Register(t *task.Task) {
	if _, exists := r.tasks[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tasks[t.Name] = t
}

// AddBuiltin registers a framework-provided task. Builtins are never default
// and are excluded from the "no tasks registered" check.
func (r *Registry) AddBuiltin(name, desc string, body task.Func) {
	r.Register(&task.Task{
		Name:    name,
		Desc:    desc,
		Builtin: true,
		Body:    body,
	})
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name string) (*task.Task, error) {
	t, ok := r.tasks[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return t, nil
}

// Default returns the task marked default, nil when none is marked, and a
// MultipleDefaultsError when more than one is.
func (r *Registry) Default() (*task.Task, error) {
	var defaults []*task.Task
	for _, t := range r.Tasks() {
		if t.Default {
			defaults = append(defaults, t)
		}
	}
	if len(defaults) > 1 {
		names := make([]string, len(defaults))
		for i, t := range defaults {
			names[i] = t.Name
		}
		return nil, &MultipleDefaultsError{Names: names}
	}
	if len(defaults) == 0 {
		return nil, nil
	}
	return defaults[0], nil
}

// OnlyBuiltins reports whether every registered task is builtin, i.e. the
// user's plzfile declared no tasks of its own.
func (r *Registry) OnlyBuiltins() bool {
	for _, t := range r.tasks {
		if !t.Builtin {
			return false
		}
	}
	return true
}

// Tasks returns all registered tasks in insertion order.
func (r *Registry) Tasks() []*task.Task {
	out := make([]*task.Task, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tasks[name])
	}
	return out
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// NotFoundError reports a lookup for a task name absent from the registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task '%s' not found", e.Name)
}

// MultipleDefaultsError reports that more than one task is marked default.
type MultipleDefaultsError struct {
	Names []string
}

func (e *MultipleDefaultsError) Error() string {
	return "more than one default task found: " + strings.Join(e.Names, ", ")
}
