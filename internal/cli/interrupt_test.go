package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	h := NewInterruptHandler(nil, "Upload")
	assert.NotNil(t, h.writer)
	assert.False(t, h.WasInterrupted())
}

func TestHandleInterrupts_Signal(t *testing.T) {
	output := &syncBuffer{}
	h := NewInterruptHandler(output, "Upload")

	var sigChan chan<- os.Signal
	h.notify = func(c chan<- os.Signal) { sigChan = c }
	h.stop = func(chan<- os.Signal) {}

	ctx := h.HandleInterrupts(context.Background(), "Nothing was submitted.")
	require.NotNil(t, sigChan)

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled before a signal")
	default:
	}

	sigChan <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled by the signal")
	}

	assert.Eventually(t, h.WasInterrupted, time.Second, 5*time.Millisecond)
	out := output.String()
	assert.Contains(t, out, "Upload interrupted!")
	assert.Contains(t, out, "Nothing was submitted.")
	assert.Equal(t, 1, strings.Count(out, "interrupted!"))
}

func TestHandleInterrupts_ParentCanceled(t *testing.T) {
	output := &syncBuffer{}
	h := NewInterruptHandler(output, "Upload")
	stopped := make(chan struct{})
	h.notify = func(chan<- os.Signal) {}
	h.stop = func(chan<- os.Signal) { close(stopped) }

	parent, cancel := context.WithCancel(context.Background())
	_ = h.HandleInterrupts(parent, "")
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("signal handler was not released")
	}
	assert.False(t, h.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestShowInterruptMessage(t *testing.T) {
	var output bytes.Buffer
	h := &InterruptHandler{writer: &output, task: "Upload"}
	h.showInterruptMessage()
	assert.Contains(t, output.String(), "Upload interrupted!")
	assert.NotContains(t, output.String(), InfoIcon)
}
