package taskfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/oribarilan/plz/internal/ctxlog"
	"github.com/oribarilan/plz/internal/registry"
	"github.com/oribarilan/plz/internal/shell"
)

// Loader parses plzfiles and registers the tasks they declare.
type Loader struct {
	shell shell.Runner
}

// NewLoader creates a plzfile loader whose task bodies run commands through
// the given shell runner.
func NewLoader(sh shell.Runner) *Loader {
	return &Loader{shell: sh}
}

// Load parses the plzfile at path and registers every task block, in file
// order, into reg.
func (l *Loader) Load(ctx context.Context, path string, reg *registry.Registry) error {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse plzfile %s: %w", path, diags)
	}

	var root fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode plzfile %s: %w", path, diags)
	}

	for _, ts := range root.Tasks {
		t, err := l.translateTask(ts, reg)
		if err != nil {
			return err
		}
		reg.Register(t)
	}

	logger.Debug("Plzfile loaded.", "path", path, "tasks", len(root.Tasks))
	return nil
}
