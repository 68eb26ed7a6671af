package credential

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// CookiePrefix starts every password cookie name.
	CookiePrefix = "claim_pwd_"
	// CookieLifetime is how long a stored password stays valid.
	CookieLifetime = 365 * 24 * time.Hour

	cookieFileHeader = "# claim password cookies, one Set-Cookie line per claim"
)

// ErrEmptyID is returned when a credential operation has no claim id.
var ErrEmptyID = errors.New("claim id cannot be empty")

// CookieName returns the cookie name holding id's password.
func CookieName(id string) string {
	return CookiePrefix + url.QueryEscape(id)
}

// CookieStore persists passwords as Set-Cookie lines in a file, scoped to the
// API host the way a browser would scope them.
type CookieStore struct {
	now    func() time.Time
	path   string
	domain string
	mu     sync.Mutex
}

// CookieOption configures a CookieStore.
type CookieOption func(*CookieStore)

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) CookieOption {
	return func(s *CookieStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewCookieStore creates a store backed by the file at path for cookies of domain.
func NewCookieStore(path, domain string, opts ...CookieOption) (*CookieStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cookie file path cannot be empty")
	}
	s := &CookieStore{
		path:   path,
		domain: normalizeDomain(domain),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the cookie file location.
func (s *CookieStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *CookieStore) Get(_ context.Context, id string) (string, bool) {
	if id == "" {
		return "", false
	}

	s.mu.Lock()
	cookies, err := s.load()
	s.mu.Unlock()
	if err != nil {
		slog.Warn("Failed to read cookie file", "path", s.path, "error", err)
		return "", false
	}

	name := CookieName(id)
	now := s.now()
	for _, c := range cookies {
		if c.Name != name || !s.matches(c) || expired(c, now) {
			continue
		}
		pw, err := url.QueryUnescape(c.Value)
		if err != nil {
			return c.Value, true
		}
		return pw, true
	}
	return "", false
}

// Set implements Store.
func (s *CookieStore) Set(_ context.Context, id, password string) error {
	if err := validateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cookies, err := s.load()
	if err != nil {
		return err
	}

	now := s.now()
	cookie := &http.Cookie{
		Name:     CookieName(id),
		Value:    url.QueryEscape(password),
		Path:     "/",
		Domain:   s.domain,
		Expires:  now.Add(CookieLifetime).UTC().Truncate(time.Second),
		SameSite: http.SameSiteLaxMode,
	}
	if err := cookie.Valid(); err != nil {
		return fmt.Errorf("invalid password cookie: %w", err)
	}

	kept := s.prune(cookies, cookie.Name, now)
	return s.save(append(kept, cookie))
}

// Clear implements Store.
func (s *CookieStore) Clear(_ context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cookies, err := s.load()
	if err != nil {
		return err
	}
	kept := s.prune(cookies, CookieName(id), s.now())
	if len(kept) == len(cookies) {
		return nil
	}
	return s.save(kept)
}

// prune drops expired cookies and any cookie named name for this domain.
func (s *CookieStore) prune(cookies []*http.Cookie, name string, now time.Time) []*http.Cookie {
	kept := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if expired(c, now) {
			continue
		}
		if c.Name == name && s.matches(c) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (s *CookieStore) matches(c *http.Cookie) bool {
	// Cookies for IPv6 hosts are written without a domain attribute.
	return c.Domain == "" || normalizeDomain(c.Domain) == s.domain
}

func (s *CookieStore) load() ([]*http.Cookie, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cookie file: %w", err)
	}

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := http.ParseSetCookie(line)
		if err != nil {
			slog.Debug("Skipping malformed cookie line", "path", s.path, "line", lineNo, "error", err)
			continue
		}
		cookies = append(cookies, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse cookie file: %w", err)
	}
	return cookies, nil
}

func (s *CookieStore) save(cookies []*http.Cookie) error {
	var buf bytes.Buffer
	buf.WriteString(cookieFileHeader)
	buf.WriteByte('\n')
	for _, c := range cookies {
		buf.WriteString(c.String())
		buf.WriteByte('\n')
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create cookie directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cookies-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cookie file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set cookie file mode: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cookie file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace cookie file: %w", err)
	}
	return nil
}

func expired(c *http.Cookie, now time.Time) bool {
	if c.MaxAge < 0 {
		return true
	}
	return !c.Expires.IsZero() && !now.Before(c.Expires)
}

func normalizeDomain(d string) string {
	d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "."))
	if strings.Contains(d, ":") {
		// IPv6 literals are not valid cookie domains.
		return ""
	}
	return d
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyID
	}
	return nil
}
