package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// UploadProgress shows the bytes sent for all attachments on one bar.
// It is safe to use from concurrent uploads.
type UploadProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

// NewUploadProgress creates a bar for total bytes. A negative total shows a spinner.
func NewUploadProgress(writer io.Writer, total int64, files int) *UploadProgress {
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]Uploading %d attachment(s)...[reset]", files)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return &UploadProgress{writer: writer, bar: bar}
}

// Wrap counts bytes read from r on the bar.
func (p *UploadProgress) Wrap(r io.Reader) io.Reader {
	return &countingReader{r: r, bar: p.bar}
}

// Finish completes the bar even when some uploads failed.
func (p *UploadProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}

type countingReader struct {
	r   io.Reader
	bar *progressbar.ProgressBar
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	if n > 0 {
		if addErr := c.bar.Add(n); addErr != nil {
			slog.Debug("Failed to update progress bar", "error", addErr)
		}
	}
	return n, err
}
