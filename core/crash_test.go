package core

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	finis int
}

func (f *fakeTerminal) Fini() { f.finis++ }

// captureCrash swaps the exit and output hooks for the duration of a test
func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var (
		buf  bytes.Buffer
		code = -1
	)
	crashOut = &buf
	crashExit = func(c int) { code = c }
	t.Cleanup(func() {
		crashOut = os.Stderr
		crashExit = os.Exit
		SetCrashTerminal(nil)
	})
	return &buf, &code
}

func TestHandleCrashNil(t *testing.T) {
	buf, code := captureCrash(t)
	term := &fakeTerminal{}
	SetCrashTerminal(term)

	HandleCrash(nil)

	assert.Zero(t, buf.Len())
	assert.Equal(t, -1, *code)
	assert.Zero(t, term.finis)
}

func TestHandleCrashResetsTerminal(t *testing.T) {
	buf, code := captureCrash(t)
	term := &fakeTerminal{}
	SetCrashTerminal(term)

	HandleCrash("kaboom")

	assert.Equal(t, 1, term.finis)
	assert.Equal(t, 1, *code)
	assert.Contains(t, buf.String(), "CRASH DETECTED: kaboom")
	assert.Contains(t, buf.String(), "Stack Trace:")

	// Screen is released only once
	HandleCrash("again")
	assert.Equal(t, 1, term.finis)
}

func TestGoRecoversPanic(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	done := make(chan int, 1)
	crashOut = &lockedWriter{mu: &mu, w: &buf}
	crashExit = func(c int) { done <- c }
	t.Cleanup(func() {
		crashOut = os.Stderr
		crashExit = os.Exit
	})

	Go(func() { panic("worker failed") })

	require.Equal(t, 1, <-done)
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, buf.String(), "worker failed")
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
