package taskfile

import (
	"github.com/hashicorp/hcl/v2"
)

// paramSchema represents a `param` block inside a task block.
type paramSchema struct {
	Name        string         `hcl:"name,label"`
	Type        string         `hcl:"type,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Description string         `hcl:"description,optional"`
}

// requiresSchema represents a `requires` block: a dependency with its fixed
// call arguments.
type requiresSchema struct {
	Task string         `hcl:"task"`
	Args hcl.Expression `hcl:"args,optional"`
}

// taskSchema represents a `task` block from a plzfile.
type taskSchema struct {
	Name        string            `hcl:"name,label"`
	Description string            `hcl:"description,optional"`
	Default     bool              `hcl:"default,optional"`
	Env         map[string]string `hcl:"env,optional"`
	Params      []*paramSchema    `hcl:"param,block"`
	Requires    []*requiresSchema `hcl:"requires,block"`
	Run         hcl.Expression    `hcl:"run,optional"`
	FailFast    *bool             `hcl:"fail_fast,optional"`
}

// fileSchema represents the top-level structure of a plzfile.
type fileSchema struct {
	Tasks []*taskSchema `hcl:"task,block"`
}
