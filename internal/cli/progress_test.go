package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadProgress_WrapPassesBytesThrough(t *testing.T) {
	var out bytes.Buffer
	p := NewUploadProgress(&out, 11, 2)

	first, err := io.ReadAll(p.Wrap(strings.NewReader("hello")))
	require.NoError(t, err)
	second, err := io.ReadAll(p.Wrap(strings.NewReader(" world")))
	require.NoError(t, err)
	p.Finish()

	assert.Equal(t, "hello world", string(first)+string(second))
	assert.Contains(t, out.String(), "Uploading 2 attachment(s)")
}
