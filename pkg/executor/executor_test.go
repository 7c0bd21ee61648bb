package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	exec := New()

	out, err := exec.Execute(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	exec := New()

	_, err := exec.Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q should include stderr", err)
	}
	if errors.Is(err, ErrCommandNotFound) {
		t.Error("non-zero exit is not a missing command")
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	exec := New()

	_, err := exec.Execute(context.Background(), "definitely-not-a-real-binary-4242")
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("Execute() error = %v, want ErrCommandNotFound", err)
	}

	if _, err := exec.LookPath("definitely-not-a-real-binary-4242"); !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("LookPath() error = %v, want ErrCommandNotFound", err)
	}
}
