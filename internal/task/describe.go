package task

import (
	"fmt"
	"io"
	"strings"

	"github.com/oribarilan/plz/internal/render"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Describe writes the human-readable help for the task: parameters with type
// labels and defaults, dependency names, description text, and task-scoped
// environment entries.
func (t *Task) Describe(w io.Writer) {
	var rows [][2]string

	if len(t.Requires) > 0 {
		names := make([]string, len(t.Requires))
		for i, dep := range t.Requires {
			names[i] = dep.Task.Name
		}
		rows = append(rows, [2]string{"Requires", strings.Join(names, ", ")})
	}

	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		s := fmt.Sprintf("%s: %s", p.Name, p.Type.FriendlyName())
		if !p.Required() {
			s += fmt.Sprintf(" = %s (optional)", formatValue(*p.Default))
		}
		params[i] = s
	}
	rows = append(rows, [2]string{"Parameters", strings.Join(params, ", ")})

	desc := t.Desc
	if desc == "" {
		desc = "No description provided."
	}
	rows = append(rows, [2]string{"Description", desc})

	render.Box(w, t.Name, rows, false)

	if len(t.Env) > 0 {
		var envRows [][2]string
		for k, v := range t.Env {
			envRows = append(envRows, [2]string{k, v})
		}
		render.Box(w, "Task-defined environment", envRows, true)
	}
}

// Label renders the task name with its default/builtin tags, as shown in
// diagnostic messages.
func (t *Task) Label() string {
	label := t.Name
	if t.Default {
		label += " [default]"
	}
	if t.Builtin {
		label += " [builtin]"
	}
	return label
}

func formatValue(v cty.Value) string {
	if v.Type() == cty.String {
		return fmt.Sprintf("%q", v.AsString())
	}
	if s, err := convert.Convert(v, cty.String); err == nil {
		return s.AsString()
	}
	return v.GoString()
}
