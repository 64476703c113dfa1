package neoctl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultDockerPaths are searched, in order, for the docker binary.
var DefaultDockerPaths = []string{"/usr/local/bin", "/usr/bin"}

// Runner invokes the container runtime CLI.
type Runner interface {
	// Run executes docker with args attached to the caller's terminal.
	Run(ctx context.Context, args ...string) error
	// Output executes docker with args and captures both streams.
	Output(ctx context.Context, args ...string) (stdout, stderr string, err error)
}

// FindDocker returns the first docker binary found in paths, falling back
// to a $PATH lookup.
func FindDocker(paths []string) (string, error) {
	for _, dir := range paths {
		p := filepath.Join(dir, "docker")
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	if p, err := exec.LookPath("docker"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("did not find executable docker in any of %s or $PATH", strings.Join(paths, ", "))
}

// ExecRunner runs a docker binary as a subprocess.
type ExecRunner struct {
	Path   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    zerolog.Logger
}

// NewExecRunner returns a runner for the docker binary at path, wired to the
// process's standard streams.
func NewExecRunner(path string, log zerolog.Logger) *ExecRunner {
	return &ExecRunner{
		Path:   path,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log,
	}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) error {
	r.Log.Info().Str("cmd", r.commandLine(args)).Msg("running docker")

	cmd := exec.CommandContext(ctx, r.Path, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

func (r *ExecRunner) Output(ctx context.Context, args ...string) (string, string, error) {
	r.Log.Debug().Str("cmd", r.commandLine(args)).Msg("running docker")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func (r *ExecRunner) commandLine(args []string) string {
	return r.Path + " " + strings.Join(Redact(args), " ")
}

// Redact hides the password in NEO4J_AUTH environment arguments.
func Redact(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if rest, ok := strings.CutPrefix(a, "--env=NEO4J_AUTH="); ok {
			user, _, _ := strings.Cut(rest, "/")
			a = "--env=NEO4J_AUTH=" + user + "/****"
		}
		out[i] = a
	}
	return out
}
