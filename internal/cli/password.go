package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

var (
	// ErrInputCancelled is returned when input is canceled by context.
	ErrInputCancelled = errors.New("input canceled")
	// ErrEmptyPassword is returned when the user submits nothing.
	ErrEmptyPassword = errors.New("password must not be empty")
)

// LineReader provides context-aware line reading that can be interrupted.
type LineReader struct {
	reader *bufio.Reader
	mu     sync.Mutex
}

// NewLineReader creates a new line reader.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReader(r)}
}

// ReadLine reads one line without its line ending. A final line without a
// newline is returned as is; io.EOF is only reported when nothing was read.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	ch := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		line, err := r.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		ch <- result{value: strings.TrimRight(line, "\r\n"), err: err}
	}()

	select {
	case <-ctx.Done():
		// The read goroutine finishes on its own once input arrives.
		return "", ErrInputCancelled
	case res := <-ch:
		return res.value, res.err
	}
}

// PasswordPrompter asks for a claim password. Input is hidden when it comes
// from a terminal.
type PasswordPrompter struct {
	out    io.Writer
	lines  *LineReader
	hidden func() ([]byte, error)
}

// NewPasswordPrompter creates a prompter reading from in and writing prompts to out.
func NewPasswordPrompter(in io.Reader, out io.Writer) *PasswordPrompter {
	if out == nil {
		out = os.Stderr
	}
	p := &PasswordPrompter{out: out, lines: NewLineReader(in)}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.hidden = func() ([]byte, error) { return term.ReadPassword(fd) }
	}
	return p
}

// Prompt shows label and reads a password.
func (p *PasswordPrompter) Prompt(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.out, LockIcon+" "+FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	var (
		password string
		err      error
	)
	if p.hidden != nil {
		password, err = p.readHidden(ctx)
		_, _ = fmt.Fprintln(p.out)
	} else {
		password, err = p.lines.ReadLine(ctx)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	return password, nil
}

func (p *PasswordPrompter) readHidden(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value []byte
	}
	ch := make(chan result, 1)
	go func() {
		b, err := p.hidden()
		ch <- result{value: b, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-ch:
		if res.err != nil {
			return "", fmt.Errorf("failed to read password: %w", res.err)
		}
		return string(res.value), nil
	}
}

// Confirm asks a yes/no question on the same input as the password prompt.
// Only "y" or "yes" count as yes.
func (p *PasswordPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.out, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := p.lines.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
