package openclaw

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/example/commandcenter/internal/ports/secondary"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunner_Stdout(t *testing.T) {
	requireShell(t)
	r := NewRunner("sh", time.Second)

	out, err := r.Run(context.Background(), "-c", "printf 'hello'")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q, want hello", out)
	}
}

func TestRunner_StderrIsCommandError(t *testing.T) {
	requireShell(t)
	r := NewRunner("sh", time.Second)

	out, err := r.Run(context.Background(), "-c", "printf 'data'; printf 'warn' >&2")
	var cmdErr *secondary.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("err = %v, want *CommandError", err)
	}
	if !cmdErr.StderrOnly() {
		t.Error("clean exit with stderr should be StderrOnly")
	}
	if cmdErr.Stderr != "warn" {
		t.Errorf("Stderr = %q", cmdErr.Stderr)
	}
	if out != "data" {
		t.Errorf("stdout should still be returned, got %q", out)
	}
}

func TestRunner_NonZeroExit(t *testing.T) {
	requireShell(t)
	r := NewRunner("sh", time.Second)

	_, err := r.Run(context.Background(), "-c", "exit 3")
	var cmdErr *secondary.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("err = %v, want *CommandError", err)
	}
	if cmdErr.StderrOnly() {
		t.Error("non-zero exit must not be StderrOnly")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("want exit code 3, got %v", err)
	}
}

func TestRunner_Timeout(t *testing.T) {
	requireShell(t)
	r := NewRunner("sh", 50*time.Millisecond)

	start := time.Now()
	_, err := r.Run(context.Background(), "-c", "sleep 5")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timeout did not stop the command")
	}
}

func TestRunner_MissingBinary(t *testing.T) {
	r := NewRunner("definitely-not-a-real-binary-xyz", time.Second)

	if _, err := r.Run(context.Background(), "sessions", "list"); err == nil {
		t.Error("expected error for missing binary")
	}
}
