package gitcmd

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls [][]string
	out   string
	err   error
}

func (f *fakeRunner) Run(dir string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	return f.out, f.err
}

func TestHelpersUseFixedArgumentLists(t *testing.T) {
	f := &fakeRunner{out: "https://github.com/user/repo.git"}

	if err := Init(f, "/repo"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := LFSInstall(f, "/repo"); err != nil {
		t.Fatalf("LFSInstall: %v", err)
	}
	if _, err := RemoteOriginURL(f, "/repo"); err != nil {
		t.Fatalf("RemoteOriginURL: %v", err)
	}
	if err := AddAll(f, "/repo"); err != nil {
		t.Fatalf("AddAll: %v", err)
	}
	if err := Commit(f, "/repo", "Add video: clip.mp4"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	want := [][]string{
		{"init"},
		{"lfs", "install"},
		{"config", "--get", "remote.origin.url"},
		{"add", "."},
		{"commit", "-m", "Add video: clip.mp4"},
	}
	if !reflect.DeepEqual(f.calls, want) {
		t.Fatalf("unexpected git invocations:\n got %v\nwant %v", f.calls, want)
	}
}

func TestCommandErrorIncludesStderr(t *testing.T) {
	err := &CommandError{
		Args:   []string{"commit", "-m", "x"},
		Stderr: "nothing to commit, working tree clean\n",
		Err:    fmt.Errorf("exit status 1"),
	}

	msg := err.Error()
	if !strings.Contains(msg, "git commit -m x failed") {
		t.Errorf("message should name the command: %q", msg)
	}
	if !strings.Contains(msg, "nothing to commit") {
		t.Errorf("message should carry the captured stderr: %q", msg)
	}
}

func TestCommandErrorFallsBackToExitError(t *testing.T) {
	underlying := fmt.Errorf("exit status 128")
	err := &CommandError{Args: []string{"init"}, Err: underlying}

	if !strings.Contains(err.Error(), "exit status 128") {
		t.Errorf("message should carry the underlying error: %q", err.Error())
	}
	if err.Unwrap() != underlying {
		t.Errorf("Unwrap should expose the underlying error")
	}
}
