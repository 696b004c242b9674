package testutil

import (
	"os"
	"testing"
)

// InputPipe returns a non-terminal file that yields content and then EOF
func InputPipe(t *testing.T, content string) *os.File {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatalf("Failed to write to pipe: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close pipe: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// EmptyInput returns a non-terminal file already at EOF
func EmptyInput(t *testing.T) *os.File {
	t.Helper()
	return InputPipe(t, "")
}
