package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unix newline", input: "s3cret\n", want: "s3cret"},
		{name: "windows newline", input: "s3cret\r\n", want: "s3cret"},
		{name: "no newline at EOF", input: "s3cret", want: "s3cret"},
		{name: "keeps inner spaces", input: " pass word \n", want: " pass word "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLineReader(strings.NewReader(tt.input)).ReadLine(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineReader_EOF(t *testing.T) {
	_, err := NewLineReader(strings.NewReader("")).ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_ContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewLineReader(pr).ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestPasswordPrompter_Line(t *testing.T) {
	var out bytes.Buffer
	p := NewPasswordPrompter(strings.NewReader("hunter2\n"), &out)

	pw, err := p.Prompt(context.Background(), "Password for claim c1")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)
	assert.Contains(t, out.String(), "Password for claim c1")
}

func TestPasswordPrompter_Empty(t *testing.T) {
	p := NewPasswordPrompter(strings.NewReader("   \n"), io.Discard)
	_, err := p.Prompt(context.Background(), "Password")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestPasswordPrompter_Hidden(t *testing.T) {
	var out bytes.Buffer
	p := NewPasswordPrompter(strings.NewReader(""), &out)
	p.hidden = func() ([]byte, error) { return []byte("from-tty"), nil }

	pw, err := p.Prompt(context.Background(), "Password")
	require.NoError(t, err)
	assert.Equal(t, "from-tty", pw)
	assert.True(t, strings.HasSuffix(out.String(), "\n"))

	p.hidden = func() ([]byte, error) { return nil, errors.New("not a tty") }
	_, err = p.Prompt(context.Background(), "Password")
	assert.ErrorContains(t, err, "not a tty")
}

func TestPasswordPrompter_ConfirmSharesInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPasswordPrompter(strings.NewReader("hunter2\nYes\nmaybe\n"), &out)
	ctx := context.Background()

	pw, err := p.Prompt(ctx, "Password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)

	ok, err := p.Confirm(ctx, "Withdraw?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm(ctx, "Withdraw?")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Withdraw? [y/N]")

	_, err = p.Confirm(ctx, "Again?")
	assert.ErrorIs(t, err, io.EOF)
}
