package registry

import (
	"fmt"

	"github.com/oribarilan/plz/internal/task"
)

// Validate checks the dependency graph for cycles. It returns a non-nil
// error naming the first task found on a cycle. The walk follows Dependency
// pointers rather than registered names, so references captured before a
// name was overwritten are checked too.
func (r *Registry) Validate() error {
	// Classic depth-first search with two node sets: permanent holds tasks
	// fully visited and known cycle-free, temporary holds the tasks on the
	// current recursion stack.
	permanent := make(map[*task.Task]bool)
	temporary := make(map[*task.Task]bool)

	var visit func(t *task.Task) error
	visit = func(t *task.Task) error {
		if permanent[t] {
			return nil
		}
		if temporary[t] {
			return fmt.Errorf("dependency cycle detected involving task '%s'", t.Name)
		}

		temporary[t] = true
		for _, dep := range t.Requires {
			if err := visit(dep.Task); err != nil {
				return err
			}
		}
		delete(temporary, t)
		permanent[t] = true

		return nil
	}

	for _, t := range r.Tasks() {
		if !permanent[t] {
			if err := visit(t); err != nil {
				return err
			}
		}
	}

	return nil
}
