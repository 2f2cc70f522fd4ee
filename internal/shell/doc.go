// Package shell provides the subprocess primitive task bodies run commands
// through. Commands execute via `sh -c`, block until the process exits, and
// stream combined stdout/stderr to the console line by line while capturing
// it. Failures surface as a non-zero exit code in the return value, never as
// a panic; callers decide whether a non-zero exit is fatal.
package shell
