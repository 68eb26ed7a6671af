package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/claimflow/internal/model"
)

// DefaultContentType is sent when a file's type cannot be determined.
const DefaultContentType = "application/octet-stream"

// forbiddenUploadHeaders are set by the transport itself and must not be copied
// from a presign response.
var forbiddenUploadHeaders = map[string]bool{
	"host":              true,
	"content-length":    true,
	"connection":        true,
	"transfer-encoding": true,
	"accept-encoding":   true,
	"origin":            true,
}

// PresignUpload asks the API for a direct-to-storage upload target.
func (c *Client) PresignUpload(ctx context.Context, req model.PhotoUploadRequest) (*model.PresignedUpload, error) {
	var out model.PresignedUpload
	if err := c.do(ctx, http.MethodPost, "/api/photos/presign-upload", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePhoto registers an uploaded object and returns its photo record.
func (c *Client) CreatePhoto(ctx context.Context, req model.PhotoCreateRequest) (*model.Photo, error) {
	var photo model.Photo
	if err := c.do(ctx, http.MethodPost, "/api/photos", nil, req, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// PhotoDownloadURL resolves a time-limited download URL for a photo.
// A zero expiresIn lets the server pick the lifetime.
func (c *Client) PhotoDownloadURL(ctx context.Context, id string, expiresIn time.Duration) (*model.DownloadURL, error) {
	var query url.Values
	if secs := int(expiresIn / time.Second); secs > 0 {
		query = url.Values{"expiresInSeconds": {strconv.Itoa(secs)}}
	}
	var out model.DownloadURL
	path := "/api/photos/" + url.PathEscape(id) + "/download-url"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadHeaders filters presigned headers down to the ones a client may set and
// makes sure a Content-Type is present.
func UploadHeaders(presigned model.UploadHeader, contentType string) http.Header {
	h := make(http.Header, len(presigned)+1)
	for k, values := range presigned {
		if forbiddenUploadHeaders[strings.ToLower(k)] {
			continue
		}
		h.Set(k, strings.Join(values, ", "))
	}
	if h.Get("Content-Type") == "" {
		if contentType == "" {
			contentType = DefaultContentType
		}
		h.Set("Content-Type", contentType)
	}
	return h
}

// UploadToPresignedURL PUTs body straight to object storage.
// size may be -1 when unknown.
func (c *Client) UploadToPresignedURL(ctx context.Context, target *model.PresignedUpload, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.URL, body)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header = UploadHeaders(target.Headers, contentType)
	if size >= 0 {
		req.ContentLength = size
	}

	slog.Debug("Uploading to presigned URL", "key", target.Key, "size", size)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newNetworkError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("upload failed: %w", newStatusError(resp, strings.TrimSpace(string(raw))))
	}
	return nil
}
