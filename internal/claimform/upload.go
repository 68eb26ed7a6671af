package claimform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/Veraticus/claimflow/internal/api"
	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/model"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds concurrent uploads.
const DefaultParallelism = 3

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// State is the progress of one attachment upload.
type State int

// Upload states, in pipeline order.
const (
	StateIdle State = iota
	StateSigning
	StateUploading
	StateCreating
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSigning:
		return "signing"
	case StateUploading:
		return "uploading"
	case StateCreating:
		return "creating"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PhotoAPI is the part of the API client used by uploads.
type PhotoAPI interface {
	PresignUpload(ctx context.Context, req model.PhotoUploadRequest) (*model.PresignedUpload, error)
	UploadToPresignedURL(ctx context.Context, target *model.PresignedUpload, body io.Reader, size int64, contentType string) error
	CreatePhoto(ctx context.Context, req model.PhotoCreateRequest) (*model.Photo, error)
}

// Item is one attachment moving through the pipeline.
type Item struct {
	Photo       *model.Photo
	Path        string
	Name        string
	Key         string
	ContentType string
	Err         string
	Size        int64
	Index       int
	State       State
}

// Done reports whether the item produced a photo record.
func (it Item) Done() bool {
	return it.State == StateDone && it.Photo != nil
}

// Uploader runs the signing, uploading and registering steps for files.
type Uploader struct {
	api        PhotoAPI
	now        func() time.Time
	newID      func() string
	onProgress func(Item)
	wrapBody   func(Item, io.Reader) io.Reader
	retry      common.RetryOptions
	parallel   int
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithProgress is called on every state change. It may be called from
// several goroutines at once.
func WithProgress(fn func(Item)) UploaderOption {
	return func(u *Uploader) {
		u.onProgress = fn
	}
}

// WithBodyWrapper lets callers observe the bytes sent for an item.
func WithBodyWrapper(fn func(Item, io.Reader) io.Reader) UploaderOption {
	return func(u *Uploader) {
		u.wrapBody = fn
	}
}

// WithParallelism bounds the number of files uploaded at once.
func WithParallelism(n int) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.parallel = n
		}
	}
}

// WithRetry retries the signing and registering steps on transient API
// errors. The upload itself is not retried since its body is a stream.
func WithRetry(opts common.RetryOptions) UploaderOption {
	return func(u *Uploader) {
		if opts.Retryable == nil {
			opts.Retryable = api.IsTransient
		}
		u.retry = opts
	}
}

// WithClock overrides the time used for object key dates.
func WithClock(now func() time.Time) UploaderOption {
	return func(u *Uploader) {
		if now != nil {
			u.now = now
		}
	}
}

// WithIDGenerator overrides the unique part of object keys.
func WithIDGenerator(fn func() string) UploaderOption {
	return func(u *Uploader) {
		if fn != nil {
			u.newID = fn
		}
	}
}

// NewUploader creates an Uploader.
func NewUploader(client PhotoAPI, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		api:      client,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		parallel: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// SanitizeName replaces runs of characters outside [a-zA-Z0-9._-] with "_".
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// ObjectKey builds "uploads/<UTC date>/<id>_<sanitized name>".
func ObjectKey(name string, now time.Time, id string) string {
	return fmt.Sprintf("uploads/%s/%s_%s", now.UTC().Format(time.DateOnly), id, SanitizeName(name))
}

// DetectContentType sniffs path's content, falling back to
// application/octet-stream.
func DetectContentType(path string) string {
	m, err := mimetype.DetectFile(path)
	if err != nil || m == nil {
		return api.DefaultContentType
	}
	return m.String()
}

// Prepare assigns keys and content types to paths without any network call.
func (u *Uploader) Prepare(paths []string) []Item {
	items := make([]Item, len(paths))
	now := u.now()
	for i, p := range paths {
		name := filepath.Base(p)
		items[i] = Item{
			Index:       i,
			Path:        p,
			Name:        name,
			Key:         ObjectKey(name, now, u.newID()),
			ContentType: DetectContentType(p),
			Size:        -1,
			State:       StateIdle,
		}
		if info, err := os.Stat(p); err == nil {
			items[i].Size = info.Size()
		}
	}
	return items
}

// Upload runs every item through the pipeline concurrently. A failing file
// ends in StateError and never affects the others. Items are returned in
// input order.
func (u *Uploader) Upload(ctx context.Context, items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.parallel)
	for i := range out {
		g.Go(func() error {
			u.run(gctx, &out[i])
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (u *Uploader) run(ctx context.Context, it *Item) {
	if err := u.steps(ctx, it); err != nil {
		it.State = StateError
		it.Err = err.Error()
		slog.Warn("Attachment upload failed", "file", it.Name, "key", it.Key, "error", err)
		u.progress(*it)
	}
}

func (u *Uploader) steps(ctx context.Context, it *Item) error {
	it.Err = ""
	u.transition(it, StateSigning)
	var presigned *model.PresignedUpload
	err := u.call(ctx, func() error {
		var err error
		presigned, err = u.api.PresignUpload(ctx, model.PhotoUploadRequest{
			Key:         it.Key,
			ContentType: it.ContentType,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("presign failed: %w", err)
	}

	u.transition(it, StateUploading)
	f, err := os.Open(it.Path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var body io.Reader = f
	if u.wrapBody != nil {
		body = u.wrapBody(*it, body)
	}
	if err := u.api.UploadToPresignedURL(ctx, presigned, body, it.Size, it.ContentType); err != nil {
		return err
	}

	u.transition(it, StateCreating)
	var photo *model.Photo
	err = u.call(ctx, func() error {
		var err error
		photo, err = u.api.CreatePhoto(ctx, model.PhotoCreateRequest{
			Bucket: presigned.Bucket,
			Key:    it.Key,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to register photo: %w", err)
	}

	it.Photo = photo
	u.transition(it, StateDone)
	slog.Debug("Attachment uploaded", "file", it.Name, "key", it.Key, "photo_id", photo.ID)
	return nil
}

// call runs fn once, or under the retry policy when one is set.
func (u *Uploader) call(ctx context.Context, fn func() error) error {
	if u.retry.MaxAttempts <= 1 {
		return fn()
	}
	return common.WithRetry(ctx, fn, u.retry)
}

func (u *Uploader) transition(it *Item, s State) {
	it.State = s
	u.progress(*it)
}

func (u *Uploader) progress(it Item) {
	if u.onProgress != nil {
		u.onProgress(it)
	}
}

// PhotoIDs returns the ids of items that reached StateDone, in order.
func PhotoIDs(items []Item) []string {
	var ids []string
	for _, it := range items {
		if it.Done() {
			ids = append(ids, it.Photo.ID)
		}
	}
	return ids
}

// Failed returns the items that ended in StateError.
func Failed(items []Item) []Item {
	var failed []Item
	for _, it := range items {
		if it.State == StateError {
			failed = append(failed, it)
		}
	}
	return failed
}
