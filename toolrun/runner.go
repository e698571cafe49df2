// Package toolrun wraps the prebuilt host tools the build shells out to
// (compilers, packagers, signing tools). The tools are opaque binaries: the
// wrapper resolves their path through the configured toolchain, runs them,
// and interprets nothing but the exit code and captured output.
package toolrun

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/meridian-os/sdkforge/config"
	"github.com/meridian-os/sdkforge/errors"
	"github.com/meridian-os/sdkforge/logger"
)

// Result captures one tool invocation.
type Result struct {
	Tool     string
	Args     []string
	ExitCode int
	Stdout   []byte
	Duration time.Duration
}

// Runner resolves and executes host tools. Path resolution is delegated to
// the config's memoized lookup.
type Runner struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// New creates a Runner backed by cfg.
func New(cfg *config.Config) *Runner {
	return &Runner{
		cfg: cfg,
		log: logger.Named("toolrun"),
	}
}

// SplitArgs splits a shell-quoted argument string into argv form, so flags
// like --args "--compress --board x64" pass through intact.
func SplitArgs(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	args, err := shellquote.Split(s)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse argument string %q", s)
	}
	return args, nil
}

// Run executes the named tool with args. Stdout is captured and returned;
// stderr streams through to the caller's stderr so tool diagnostics stay
// visible in build logs. A non-zero exit is an error carrying the code.
func (r *Runner) Run(ctx context.Context, tool string, args []string) (*Result, error) {
	path, err := r.cfg.ToolPath(tool)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrToolNotFound, "%s: %v", tool, err)
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	r.log.Debugw("running tool",
		logger.FieldTool, tool,
		"path", path,
		"args", args)

	start := time.Now()
	runErr := cmd.Run()
	result := &Result{
		Tool:     tool,
		Args:     args,
		Stdout:   stdout.Bytes(),
		Duration: time.Since(start),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, errors.Wrapf(runErr, "%s exited with code %d", tool, result.ExitCode)
		}
		return result, errors.Wrapf(runErr, "failed to run %s", tool)
	}

	r.log.Infow("tool finished",
		logger.FieldTool, tool,
		logger.FieldExitCode, 0,
		logger.FieldDurationMS, result.Duration.Milliseconds())
	return result, nil
}
