package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/oribarilan/plz/internal/ctxlog"
)

// Options tune a single command execution.
type Options struct {
	// Env entries are merged over the current process environment.
	Env map[string]string

	// TimeoutSecs bounds the command's run time. Zero means no timeout.
	TimeoutSecs int

	// DryRun prints a marker instead of spawning the command.
	DryRun bool

	// Echo prints the command line before spawning it.
	Echo bool

	// Quiet suppresses streaming of the command's output to the console.
	// The output is still captured and returned.
	Quiet bool
}

// Runner is the execution primitive task bodies depend on.
type Runner interface {
	// Run executes the command and returns its combined output and exit
	// code. A spawn failure yields the error text and exit code 1.
	Run(ctx context.Context, command string, opts Options) (string, int)
}

// Executor runs commands through the system shell, streaming output to a
// console writer as it arrives.
type Executor struct {
	out    io.Writer
	dryRun bool
}

// NewExecutor creates an Executor writing console output to out. When dryRun
// is set, every command runs in dry-run mode regardless of per-call options.
func NewExecutor(out io.Writer, dryRun bool) *Executor {
	return &Executor{out: out, dryRun: dryRun}
}

// Run implements Runner.
func (e *Executor) Run(ctx context.Context, command string, opts Options) (string, int) {
	logger := ctxlog.FromContext(ctx)

	if opts.Echo {
		fmt.Fprintf(e.out, "Executing: `%s`\n", command)
	}

	if opts.DryRun || e.dryRun {
		fmt.Fprintf(e.out, "Dry run: %s\n", command)
		return "", 0
	}

	if opts.TimeoutSecs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.TimeoutSecs)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Env = os.Environ()
	for k, v := range opts.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return e.spawnFailure(command, err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return e.spawnFailure(command, err)
	}
	// The child holds its own copies of the write end.
	pw.Close()

	// Read line by line without a token size limit so arbitrarily long
	// lines are streamed and captured in full.
	var output string
	reader := bufio.NewReader(pr)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			output += line
			if !opts.Quiet {
				if !strings.HasSuffix(line, "\n") {
					line += "\n"
				}
				fmt.Fprint(e.out, line)
			}
		}
		if readErr != nil {
			if readErr != io.EOF {
				logger.Warn("Reading command output failed.", "command", command, "error", readErr)
			}
			break
		}
	}
	pr.Close()

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
		logger.Warn("Command failed.", "command", command, "exit_code", exitCode)
		fmt.Fprintf(e.out, "Command failed with exit code %d\n", exitCode)
	}

	return output, exitCode
}

func (e *Executor) spawnFailure(command string, err error) (string, int) {
	output := fmt.Sprintf("Error running command: %v", err)
	fmt.Fprintf(e.out, "Error running command '%s': %v\n", command, err)
	return output, 1
}
