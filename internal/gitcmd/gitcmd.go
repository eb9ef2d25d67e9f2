package gitcmd

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a git command inside dir and returns its trimmed stdout.
type Runner interface {
	Run(dir string, args ...string) (string, error)
}

// CommandError reports a git invocation that exited non-zero.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return fmt.Sprintf("git %s failed: %s", strings.Join(e.Args, " "), s)
	}
	return fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner invokes the external git binary.
type ExecRunner struct{}

func (ExecRunner) Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Init initializes a new repository in dir.
func Init(r Runner, dir string) error {
	_, err := r.Run(dir, "init")
	return err
}

// LFSInstall sets up the git LFS hooks for the repository in dir.
func LFSInstall(r Runner, dir string) error {
	_, err := r.Run(dir, "lfs", "install")
	return err
}

// RemoteOriginURL reads remote.origin.url from the repository config.
// git exits non-zero when the key is absent, so a missing remote
// surfaces as an error.
func RemoteOriginURL(r Runner, dir string) (string, error) {
	return r.Run(dir, "config", "--get", "remote.origin.url")
}

// AddAll stages every change under dir.
func AddAll(r Runner, dir string) error {
	_, err := r.Run(dir, "add", ".")
	return err
}

// Commit records the staged changes with the given message.
func Commit(r Runner, dir, message string) error {
	_, err := r.Run(dir, "commit", "-m", message)
	return err
}
