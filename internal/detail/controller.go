// Package detail drives the claim detail view: loading a claim behind its
// optional password, keeping attachment download URLs fresh and applying the
// status transitions an anonymous holder of the claim id may perform.
//
// Network calls never run under the controller's lock. Loads are fenced by a
// sequence number so that only the latest request may commit its result.
package detail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/claimflow/internal/api"
	"github.com/Veraticus/claimflow/internal/credential"
	"github.com/Veraticus/claimflow/internal/lifecycle"
	"github.com/Veraticus/claimflow/internal/model"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultURLLifetime is requested for every attachment download URL.
	DefaultURLLifetime = 15 * time.Minute
	// DefaultStaleBuffer re-resolves URLs this long before they expire.
	DefaultStaleBuffer = 30 * time.Second
	// DefaultRefreshInterval is the background refresh period.
	DefaultRefreshInterval = time.Minute
	// DefaultParallelism bounds concurrent URL resolutions.
	DefaultParallelism = 4

	// MessagePasswordRequired is shown when the password prompt is dismissed.
	MessagePasswordRequired = "password required"
)

var (
	// ErrActionNotAllowed is returned for a transition the current status does not permit.
	ErrActionNotAllowed = errors.New("action not allowed")
	// ErrActionInProgress is returned while another transition is pending.
	ErrActionInProgress = errors.New("another action is in progress")
	// ErrStorePassword is returned when a submitted password could not be saved.
	ErrStorePassword = errors.New("failed to store password")
)

// ClaimAPI is the subset of the API client the controller needs.
type ClaimAPI interface {
	GetClaim(ctx context.Context, id, password string) (*model.Claim, error)
	PatchClaim(ctx context.Context, id string, req model.ClaimPatchRequest) (*model.Claim, error)
	PhotoDownloadURL(ctx context.Context, id string, expiresIn time.Duration) (*model.DownloadURL, error)
}

// Phase is the top-level state of the view.
type Phase int

// Phases.
const (
	PhaseLoading Phase = iota
	PhaseContent
	PhasePasswordRequired
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseContent:
		return "content"
	case PhasePasswordRequired:
		return "password-required"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Snapshot is an immutable copy of the controller state for rendering.
// Claim and URLs are only set in PhaseContent.
type Snapshot struct {
	Claim         *model.Claim
	URLs          map[string]model.DownloadURL
	Actions       map[lifecycle.Action]bool
	ClaimID       string
	Err           string
	ActionErr     string
	Phase         Phase
	WrongPassword bool
	Refreshing    bool
	Busy          bool
}

// URL returns the download URL entry for photoID, if any.
func (s Snapshot) URL(photoID string) (model.DownloadURL, bool) {
	d, ok := s.URLs[photoID]
	return d, ok
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for URL staleness.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithOnChange registers a callback run after every committed state change.
// It is called without the controller lock held.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithRefreshInterval sets the background refresh period used by Run.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.refreshInterval = d
		}
	}
}

// WithStaleBuffer sets how early before expiry a URL counts as stale.
func WithStaleBuffer(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.staleBuffer = d
		}
	}
}

// WithURLLifetime sets the lifetime requested for download URLs.
func WithURLLifetime(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.urlLifetime = d
		}
	}
}

// WithParallelism bounds concurrent URL resolutions.
func WithParallelism(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.parallel = n
		}
	}
}

// Controller owns the state of one claim's detail view.
type Controller struct {
	api      ClaimAPI
	creds    credential.Store
	now      func() time.Time
	onChange func(Snapshot)
	claim    *model.Claim
	urls     map[string]model.DownloadURL
	id       string
	errMsg   string
	actErr   string

	refreshInterval time.Duration
	staleBuffer     time.Duration
	urlLifetime     time.Duration
	parallel        int
	seq             uint64
	phase           Phase
	mu              sync.Mutex
	wrongPassword   bool
	refreshing      bool
	busy            bool
}

// New creates a controller for claim id. Call Load to fetch it.
func New(id string, client ClaimAPI, creds credential.Store, opts ...Option) *Controller {
	c := &Controller{
		id:              id,
		api:             client,
		creds:           creds,
		now:             time.Now,
		urls:            make(map[string]model.DownloadURL),
		phase:           PhaseLoading,
		refreshInterval: DefaultRefreshInterval,
		staleBuffer:     DefaultStaleBuffer,
		urlLifetime:     DefaultURLLifetime,
		parallel:        DefaultParallelism,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the claim id this controller shows.
func (c *Controller) ID() string {
	return c.id
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		ClaimID:       c.id,
		Phase:         c.phase,
		Err:           c.errMsg,
		ActionErr:     c.actErr,
		WrongPassword: c.wrongPassword,
		Refreshing:    c.refreshing,
		Busy:          c.busy,
	}
	if c.phase == PhaseContent && c.claim != nil {
		claim := *c.claim
		claim.Photos = slices.Clone(c.claim.Photos)
		claim.Tags = slices.Clone(c.claim.Tags)
		s.Claim = &claim
		s.URLs = make(map[string]model.DownloadURL, len(c.urls))
		for k, v := range c.urls {
			s.URLs[k] = v
		}
		s.Actions = lifecycle.Actions(claim.Status)
	}
	return s
}

// notify must be called without the lock held.
func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.Snapshot())
}

// Load fetches the claim with the stored password and commits the result if no
// newer load or transition has started meanwhile. Attachment URLs are resolved
// after the claim is shown.
func (c *Controller) Load(ctx context.Context) error {
	password, _ := c.creds.Get(ctx, c.id)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.phase == PhaseContent {
		c.refreshing = true
	} else {
		c.phase = PhaseLoading
	}
	c.errMsg = ""
	c.actErr = ""
	c.mu.Unlock()
	c.notify()

	slog.Debug("Loading claim", "claim_id", c.id, "seq", seq, "with_password", password != "")
	claim, err := c.api.GetClaim(ctx, c.id, password)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		slog.Debug("Discarding superseded claim load", "claim_id", c.id, "seq", seq)
		return nil
	}
	c.refreshing = false
	if err != nil {
		if api.IsAuthorization(err) {
			c.requirePasswordLocked(password)
		} else {
			c.phase = PhaseError
			c.errMsg = Describe(err)
			c.clearContentLocked()
		}
		c.mu.Unlock()
		c.notify()
		return err
	}

	c.phase = PhaseContent
	c.wrongPassword = false
	c.setClaimLocked(claim)
	ids := claim.PhotoIDs()
	c.mu.Unlock()
	c.notify()

	c.resolve(ctx, seq, ids, true)
	return nil
}

// SubmitPassword stores password for the claim and reloads with it.
func (c *Controller) SubmitPassword(ctx context.Context, password string) error {
	if err := c.creds.Set(ctx, c.id, password); err != nil {
		return fmt.Errorf("%w: %w", ErrStorePassword, err)
	}

	c.mu.Lock()
	c.wrongPassword = false
	c.phase = PhaseLoading
	c.mu.Unlock()

	return c.Load(ctx)
}

// CancelPassword dismisses the prompt. The view is left in an error state;
// claim content stays hidden.
func (c *Controller) CancelPassword() {
	c.mu.Lock()
	if c.phase != PhasePasswordRequired {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseError
	c.errMsg = MessagePasswordRequired
	c.mu.Unlock()
	c.notify()
}

// Withdraw moves a SUBMITTED claim to WITHDRAW.
func (c *Controller) Withdraw(ctx context.Context) error {
	return c.transition(ctx, lifecycle.ActionWithdraw)
}

// ConfirmFinish moves a PAID claim to FINISHED.
func (c *Controller) ConfirmFinish(ctx context.Context) error {
	return c.transition(ctx, lifecycle.ActionConfirmFinish)
}

// Perform runs action.
func (c *Controller) Perform(ctx context.Context, action lifecycle.Action) error {
	return c.transition(ctx, action)
}

func (c *Controller) transition(ctx context.Context, action lifecycle.Action) error {
	target := action.Target()

	c.mu.Lock()
	if c.phase != PhaseContent || c.claim == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: claim not loaded", ErrActionNotAllowed)
	}
	from := c.claim.Status
	if !lifecycle.CanTransition(lifecycle.RoleAnonymous, from, target) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s from %s", ErrActionNotAllowed, action, from)
	}
	if c.busy {
		c.mu.Unlock()
		return ErrActionInProgress
	}
	c.busy = true
	c.actErr = ""
	previous := *c.claim
	c.mu.Unlock()
	c.notify()

	password, _ := c.creds.Get(ctx, c.id)
	slog.Info("Updating claim status", "claim_id", c.id, "from", from, "status", target)
	updated, err := c.api.PatchClaim(ctx, c.id, model.ClaimPatchRequest{
		Status:   target,
		Password: password,
	})

	c.mu.Lock()
	c.busy = false
	if err != nil {
		if api.IsAuthorization(err) {
			// Fence out loads started before the rejection.
			c.seq++
			c.refreshing = false
			c.requirePasswordLocked(password)
		} else {
			c.actErr = Describe(err)
		}
		c.mu.Unlock()
		c.notify()
		return err
	}

	if updated == nil || updated.ID == "" {
		updated = &previous
		updated.Status = target
	}
	c.seq++
	seq := c.seq
	c.refreshing = false
	var missing []string
	if c.phase == PhaseContent {
		c.setClaimLocked(updated)
		missing = c.missingURLsLocked()
	}
	c.mu.Unlock()
	c.notify()

	c.resolve(ctx, seq, missing, true)
	return nil
}

// EnsureFresh re-resolves photoID's download URL when it is missing, empty or
// about to expire, and returns the entry afterwards. Failures are silent.
func (c *Controller) EnsureFresh(ctx context.Context, photoID string) (model.DownloadURL, bool) {
	c.mu.Lock()
	if !c.hasPhotoLocked(photoID) {
		c.mu.Unlock()
		return model.DownloadURL{}, false
	}
	entry, ok := c.urls[photoID]
	stale := !ok || entry.Stale(c.now(), c.staleBuffer)
	seq := c.seq
	c.mu.Unlock()

	if stale {
		c.resolve(ctx, seq, []string{photoID}, !ok)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok = c.urls[photoID]
	return entry, ok && entry.Available()
}

// RefreshStale re-resolves every attachment URL that is missing, empty or
// about to expire.
func (c *Controller) RefreshStale(ctx context.Context) {
	c.mu.Lock()
	if c.phase != PhaseContent || c.claim == nil {
		c.mu.Unlock()
		return
	}
	now := c.now()
	seq := c.seq
	var stale []string
	for _, p := range c.claim.Photos {
		entry, ok := c.urls[p.ID]
		if !ok || entry.Stale(now, c.staleBuffer) {
			stale = append(stale, p.ID)
		}
	}
	c.mu.Unlock()

	if len(stale) > 0 {
		slog.Debug("Refreshing download URLs", "claim_id", c.id, "count", len(stale))
		c.resolve(ctx, seq, stale, false)
	}
}

// Run refreshes stale URLs on every tick until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RefreshStale(ctx)
		}
	}
}

// resolve fetches download URLs for ids concurrently and merges each result
// into the map by key. With markFailure a failed id is recorded as
// unavailable; otherwise an existing entry is left alone. Results are dropped
// once a load or transition newer than seq has started.
func (c *Controller) resolve(ctx context.Context, seq uint64, ids []string, markFailure bool) {
	if len(ids) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for _, id := range ids {
		g.Go(func() error {
			d, err := c.api.PhotoDownloadURL(gctx, id, c.urlLifetime)
			if err != nil {
				slog.Debug("Failed to resolve download URL", "claim_id", c.id, "photo_id", id, "error", err)
				if markFailure {
					c.merge(seq, id, model.DownloadURL{})
				}
				return nil
			}
			c.merge(seq, id, *d)
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Controller) merge(seq uint64, photoID string, d model.DownloadURL) {
	c.mu.Lock()
	if seq != c.seq || !c.hasPhotoLocked(photoID) {
		c.mu.Unlock()
		return
	}
	c.urls[photoID] = d
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) hasPhotoLocked(photoID string) bool {
	if c.phase != PhaseContent || c.claim == nil {
		return false
	}
	return slices.ContainsFunc(c.claim.Photos, func(p model.Photo) bool { return p.ID == photoID })
}

// setClaimLocked replaces the claim and keeps URL entries of photos it still has.
func (c *Controller) setClaimLocked(claim *model.Claim) {
	c.claim = claim
	keep := make(map[string]model.DownloadURL, len(claim.Photos))
	for _, p := range claim.Photos {
		if d, ok := c.urls[p.ID]; ok {
			keep[p.ID] = d
		}
	}
	c.urls = keep
}

func (c *Controller) missingURLsLocked() []string {
	var missing []string
	for _, p := range c.claim.Photos {
		if _, ok := c.urls[p.ID]; !ok {
			missing = append(missing, p.ID)
		}
	}
	return missing
}

func (c *Controller) requirePasswordLocked(attempted string) {
	c.phase = PhasePasswordRequired
	c.wrongPassword = attempted != ""
	c.errMsg = ""
	c.actErr = ""
	c.clearContentLocked()
}

func (c *Controller) clearContentLocked() {
	c.claim = nil
	c.urls = make(map[string]model.DownloadURL)
}

// Describe turns an API error into a message for the view.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	switch apiErr.Kind {
	case api.KindNotFound:
		return "claim not found"
	case api.KindNetwork:
		return "could not reach the claims API"
	case api.KindAuthorization:
		return MessagePasswordRequired
	default:
		return apiErr.Error()
	}
}
