package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler manages graceful shutdown with friendly messages.
type InterruptHandler struct {
	writer      io.Writer
	notify      func(chan<- os.Signal)
	stop        func(chan<- os.Signal)
	task        string
	hint        string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler. task names what is
// being interrupted, e.g. "Upload".
func NewInterruptHandler(writer io.Writer, task string) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer: writer,
		task:   task,
		notify: func(c chan<- os.Signal) { signal.Notify(c, os.Interrupt, syscall.SIGTERM) },
		stop:   func(c chan<- os.Signal) { signal.Stop(c) },
	}
}

// HandleInterrupts returns a context that is canceled on SIGINT or SIGTERM.
// hint, when set, is printed after the interrupt message.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, hint string) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.hint = hint

	sigChan := make(chan os.Signal, 1)
	h.notify(sigChan)

	go func() {
		defer h.stop(sigChan)
		select {
		case <-sigChan:
			h.mu.Lock()
			if !h.interrupted {
				h.interrupted = true
				h.showInterruptMessage()
			}
			h.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n" + FormatWarning(h.task+" interrupted!")
	if h.hint != "" {
		msg += "\n" + FormatInfo(h.hint)
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		// Best effort - we're shutting down anyway
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
