package task

import (
	"fmt"
	"strings"
)

// ArityError reports that a task was invoked with fewer positional arguments
// than its required parameters. Dependencies that already ran are not rolled
// back.
type ArityError struct {
	Task    string
	Missing []string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("missing arguments for task '%s': %s", e.Task, strings.Join(e.Missing, ", "))
}

// ArgumentTypeError reports that a supplied argument could not be converted
// to its parameter's declared type.
type ArgumentTypeError struct {
	Task  string
	Param string
	Want  string
	Err   error
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("invalid argument for task '%s': parameter '%s' expects %s: %v", e.Task, e.Param, e.Want, e.Err)
}

func (e *ArgumentTypeError) Unwrap() error {
	return e.Err
}
