package model

import (
	"path"
	"strings"
	"time"
)

// Photo is an uploaded attachment registered with the API.
type Photo struct {
	UploadedAt time.Time `json:"uploadedAt"`
	ID         string    `json:"id"`
	Bucket     string    `json:"bucket,omitempty"`
	Key        string    `json:"key"`
}

// Name returns the last path segment of the storage key.
func (p Photo) Name() string {
	return path.Base(p.Key)
}

// IsImage guesses from the key extension whether the attachment is an image.
func (p Photo) IsImage() bool {
	switch strings.ToLower(path.Ext(p.Key)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg":
		return true
	}
	return false
}

// DownloadURL is a time-limited capability to fetch an attachment.
// A zero ExpiresAt means the server did not state an expiry.
type DownloadURL struct {
	ExpiresAt time.Time `json:"expiresAt"`
	URL       string    `json:"url"`
}

// Available reports whether a URL was resolved.
func (d DownloadURL) Available() bool {
	return d.URL != ""
}

// Stale reports whether the URL is missing or expires within buffer of now.
func (d DownloadURL) Stale(now time.Time, buffer time.Duration) bool {
	if d.URL == "" {
		return true
	}
	if d.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(d.ExpiresAt.Add(-buffer))
}

// PhotoUploadRequest is the body of POST /api/photos/presign-upload.
type PhotoUploadRequest struct {
	Bucket           string `json:"bucket,omitempty"`
	Key              string `json:"key,omitempty"`
	ContentType      string `json:"contentType"`
	ExpiresInSeconds int    `json:"expiresInSeconds,omitempty"`
}

// PhotoCreateRequest is the body of POST /api/photos.
type PhotoCreateRequest struct {
	Bucket string `json:"bucket,omitempty"`
	Key    string `json:"key"`
}

// PresignedUpload authorizes a direct PUT to object storage.
// Some backends return multi-valued headers, e.g. {"Host": ["localhost:9000"]}.
type PresignedUpload struct {
	ExpiresAt time.Time    `json:"expiresAt"`
	Headers   UploadHeader `json:"headers,omitempty"`
	URL       string       `json:"url"`
	Bucket    string       `json:"bucket,omitempty"`
	Key       string       `json:"key,omitempty"`
}
