package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/claimflow/internal/config"
	"github.com/Veraticus/claimflow/internal/model"
)

// fakeBackend serves the claims API and the object storage behind it.
type fakeBackend struct {
	claims    map[string]*model.Claim
	passwords map[string]string
	uploads   map[string]string
	created   []model.ClaimRequest
	patches   []model.ClaimPatchRequest
	tags      []model.Tag
	srv       *httptest.Server
	photos    int
	mu        sync.Mutex
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		claims:    make(map[string]*model.Claim),
		passwords: make(map[string]string),
		uploads:   make(map[string]string),
		tags: []model.Tag{
			{ID: "t-travel", Label: "Travel", Color: "#3b82f6"},
			{ID: "t-food", Label: "Food"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tags", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.tags)
	})
	mux.HandleFunc("GET /api/claims/{id}", b.getClaim)
	mux.HandleFunc("PATCH /api/claims/{id}", b.patchClaim)
	mux.HandleFunc("POST /api/claims", b.createClaim)
	mux.HandleFunc("POST /api/photos/presign-upload", func(w http.ResponseWriter, r *http.Request) {
		var req model.PhotoUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, model.PresignedUpload{
			URL:    b.srv.URL + "/storage/" + req.Key,
			Key:    req.Key,
			Bucket: "receipts",
		})
	})
	mux.HandleFunc("PUT /storage/{key...}", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.uploads[r.PathValue("key")] = string(data)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/photos", func(w http.ResponseWriter, r *http.Request) {
		var req model.PhotoCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.photos++
		id := fmt.Sprintf("photo-%d", b.photos)
		b.mu.Unlock()
		writeJSON(w, model.Photo{ID: id, Key: req.Key, Bucket: req.Bucket})
	})
	mux.HandleFunc("GET /api/photos/{id}/download-url", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.DownloadURL{
			URL:       b.srv.URL + "/storage/" + r.PathValue("id"),
			ExpiresAt: time.Now().Add(15 * time.Minute),
		})
	})

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) addClaim(c *model.Claim, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.claims[c.ID] = c
	if password != "" {
		b.passwords[c.ID] = password
	}
}

func (b *fakeBackend) status(id string) model.ClaimStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.claims[id].Status
}

func (b *fakeBackend) authorized(id, password string) bool {
	want, protected := b.passwords[id]
	return !protected || want == password
}

func (b *fakeBackend) getClaim(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := r.PathValue("id")
	c, ok := b.claims[id]
	if !ok {
		http.Error(w, "claim not found", http.StatusNotFound)
		return
	}
	if !b.authorized(id, r.URL.Query().Get("password")) {
		http.Error(w, "password required", http.StatusUnauthorized)
		return
	}
	writeJSON(w, c)
}

func (b *fakeBackend) patchClaim(w http.ResponseWriter, r *http.Request) {
	var req model.ClaimPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := r.PathValue("id")
	c, ok := b.claims[id]
	if !ok {
		http.Error(w, "claim not found", http.StatusNotFound)
		return
	}
	if !b.authorized(id, req.Password) {
		http.Error(w, "password required", http.StatusForbidden)
		return
	}
	b.patches = append(b.patches, req)
	c.Status = req.Status
	writeJSON(w, c)
}

func (b *fakeBackend) createClaim(w http.ResponseWriter, r *http.Request) {
	var req model.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.created = append(b.created, req)
	id := fmt.Sprintf("claim-%d", len(b.created))
	c := &model.Claim{
		ID:        id,
		Title:     req.Title,
		Amount:    req.Amount,
		Currency:  req.Currency,
		ExpenseAt: req.ExpenseAt,
		Payout:    req.Payout,
		Status:    model.StatusSubmitted,
	}
	for _, pid := range req.PhotoIDs {
		c.Photos = append(c.Photos, model.Photo{ID: pid, Key: "uploads/" + pid})
	}
	b.claims[id] = c
	if req.Password != "" {
		b.passwords[id] = req.Password
	}
	writeJSON(w, c)
}

// setupConfig points the global config at b and a temporary data directory.
func setupConfig(t *testing.T, b *fakeBackend) string {
	t.Helper()
	dir := t.TempDir()

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set(config.KeyAPIBaseURL, b.srv.URL)
	viper.Set(config.KeyWebBaseURL, "https://claims.example.com")
	viper.Set(config.KeyDatabasePath, filepath.Join(dir, "claim.db"))
	viper.Set(config.KeyCookieFile, filepath.Join(dir, "cookies.txt"))
	viper.Set(config.KeyLogFile, filepath.Join(dir, "claim.log"))
	viper.Set(config.KeyLang, "en")
	return dir
}

// execute runs cmd with args and stdin, returning stdout.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func submittedClaim(id string) *model.Claim {
	amount, _ := model.ParseAmount("42.50")
	return &model.Claim{
		ID:        id,
		Title:     "Taxi to airport",
		Amount:    amount,
		Currency:  "CHF",
		Status:    model.StatusSubmitted,
		ExpenseAt: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Payout:    model.PayoutInfo{IBAN: "CH9300762011623852957"},
		Photos:    []model.Photo{{ID: "p1", Key: "uploads/2024-05-01/abc_receipt.png"}},
	}
}

func requireContains(t *testing.T, s string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		require.Contains(t, s, p)
	}
}
