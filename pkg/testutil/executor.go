package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/qcl/pkg/snippet"
)

// FakeExecutor returns canned rows or errors per command and counts calls
type FakeExecutor struct {
	mu    sync.Mutex
	rows  map[string][]snippet.Row
	errs  map[string]error
	calls map[string]int
}

// NewFakeExecutor creates an executor that returns no rows for any command
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		rows:  make(map[string][]snippet.Row),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// SetRows makes command return rows
func (f *FakeExecutor) SetRows(command string, rows ...snippet.Row) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[command] = rows
	return f
}

// SetError makes command fail with err
func (f *FakeExecutor) SetError(command string, err error) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[command] = err
	return f
}

// Run implements lookup.Executor
func (f *FakeExecutor) Run(_ context.Context, command string) ([]snippet.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[command]++
	if err, ok := f.errs[command]; ok {
		return nil, err
	}
	return f.rows[command], nil
}

// Calls returns how often command ran
func (f *FakeExecutor) Calls(command string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[command]
}

// TotalCalls returns the number of commands run
func (f *FakeExecutor) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}
