// Package taskfile loads the user's plzfile.hcl and registers the task
// blocks it declares.
//
// A task block names its parameters with typed param blocks, binds
// dependencies with requires blocks (in order, each with its fixed argument
// list), sets task-scoped environment variables, and lists its shell
// commands as expressions interpolating the task's parameters:
//
//	task "echo" {
//	  description = "Echo message"
//	  param "msg" { type = "string" }
//	  run = ["echo ${msg} $a"]
//	}
//
// Dependencies must be declared before the tasks referencing them; a forward
// reference is a load error.
package taskfile
