package exec

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes a named command in dir and returns
// its combined stdout+stderr output.
type Runner interface {
	Run(
		ctx context.Context,
		dir string,
		name string,
		arg ...string,
	) (string, error)
}

// RunnerFunc adapts a plain function to the Runner
// interface.
type RunnerFunc func(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error)

// Run delegates to the wrapped function.
func (f RunnerFunc) Run(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error) {
	return f(ctx, dir, name, arg...)
}

// Default runs commands on the host via Ex.
var Default Runner = RunnerFunc(Ex)

// Ex executes the named command in the given directory and
// returns combined stdout+stderr output. Pass empty dir to
// use the current working directory.
func Ex(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (string, error) {
	const errCtx = "executing command"

	slog.Info(
		"executing",
		"cmd", name,
		"args", strings.Join(arg, " "),
	)

	cmd := exec.CommandContext(ctx, name, arg...)
	if dir != "" {
		cmd.Dir = dir
	}

	by, err := cmd.CombinedOutput()

	slog.Info("output", "result", string(by))

	if err != nil {
		return string(by), fmt.Errorf(
			"%s: %s %s: %w",
			errCtx, name, strings.Join(arg, " "), err,
		)
	}

	return string(by), nil
}
