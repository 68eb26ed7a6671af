package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/claimflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("not a url")
	assert.Error(t, err)

	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, "localhost", c.Host())
}

func TestGetClaim_PasswordQuery(t *testing.T) {
	var gotQuery, gotPath, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"a/b","title":"Taxi","status":"SUBMITTED","amount":42.5,"currency":"CHF"}`)
	})

	claim, err := c.GetClaim(context.Background(), "a/b", "s3cret&x")
	require.NoError(t, err)
	assert.Equal(t, "/api/claims/a%2Fb", gotPath)
	assert.Equal(t, "password=s3cret%26x", gotQuery)
	assert.Empty(t, gotContentType, "GET without body must not send a content type")
	assert.Equal(t, model.StatusSubmitted, claim.Status)

	_, err = c.GetClaim(context.Background(), "c1", "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestDo_ErrorKinds(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusUnauthorized, KindAuthorization},
		{http.StatusForbidden, KindAuthorization},
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindServer},
		{http.StatusTeapot, KindServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, "  boom  ")
			})

			_, err := c.GetClaim(context.Background(), "c1", "")
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.want, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "boom", apiErr.Body)
			assert.Equal(t, tt.want, KindOf(err))
			assert.Equal(t, tt.want == KindAuthorization, IsAuthorization(err))
		})
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c, err := New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = c.ListTags(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.True(t, IsTransient(err))
}

func TestDo_NoContentAndTextFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/claims/empty":
			w.WriteHeader(http.StatusNoContent)
		case "/api/claims/text":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, "maintenance")
		case "/api/claims/untyped":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, `{"id":"untyped","status":"PAID"}`)
		}
	})
	ctx := context.Background()

	claim, err := c.PatchClaim(ctx, "empty", model.ClaimPatchRequest{Status: model.StatusWithdraw})
	require.NoError(t, err)
	assert.Empty(t, claim.ID)

	var text string
	require.NoError(t, c.do(ctx, http.MethodGet, "/api/claims/text", nil, nil, &text))
	assert.Equal(t, "maintenance", text)

	_, err = c.GetClaim(ctx, "text", "")
	assert.ErrorContains(t, err, "maintenance")

	claim, err = c.GetClaim(ctx, "untyped", "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, claim.Status)
}

func TestPatchClaim_Body(t *testing.T) {
	var body map[string]any
	var method, contentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","status":"WITHDRAW"}`)
	})

	claim, err := c.PatchClaim(context.Background(), "c1", model.ClaimPatchRequest{
		Status:   model.StatusWithdraw,
		Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]any{"status": "WITHDRAW", "password": "pw"}, body)
	assert.Equal(t, model.StatusWithdraw, claim.Status)
}

func TestPhotoDownloadURL(t *testing.T) {
	expires := time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/photos/p1/download-url", r.URL.Path)
		assert.Equal(t, "900", r.URL.Query().Get("expiresInSeconds"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, `{"url":"https://s3/p1?sig=x","expiresAt":"2024-05-01T10:15:00Z"}`)
	})

	d, err := c.PhotoDownloadURL(context.Background(), "p1", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://s3/p1?sig=x", d.URL)
	assert.True(t, expires.Equal(d.ExpiresAt))
}

func TestUploadHeaders(t *testing.T) {
	h := UploadHeaders(model.UploadHeader{
		"Host":              {"localhost:9000"},
		"content-length":    {"12"},
		"Connection":        {"keep-alive"},
		"Transfer-Encoding": {"chunked"},
		"Accept-Encoding":   {"gzip"},
		"Origin":            {"http://app"},
		"X-Amz-Meta-Tags":   {"a", "b"},
	}, "")

	assert.Equal(t, "a, b", h.Get("X-Amz-Meta-Tags"))
	assert.Equal(t, DefaultContentType, h.Get("Content-Type"))
	for _, k := range []string{"Host", "Content-Length", "Connection", "Transfer-Encoding", "Accept-Encoding", "Origin"} {
		assert.Empty(t, h.Get(k), k)
	}

	h = UploadHeaders(model.UploadHeader{"Content-Type": {"image/png"}}, "image/jpeg")
	assert.Equal(t, "image/png", h.Get("Content-Type"))

	h = UploadHeaders(nil, "image/jpeg")
	assert.Equal(t, "image/jpeg", h.Get("Content-Type"))
}

func TestUploadToPresignedURL(t *testing.T) {
	var got string
	var gotType string
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		data, _ := io.ReadAll(r.Body)
		got = string(data)
		gotType = r.Header.Get("Content-Type")
		if strings.Contains(r.URL.Path, "denied") {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, "SignatureDoesNotMatch")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer storage.Close()

	c, err := New("http://api.local")
	require.NoError(t, err)

	target := &model.PresignedUpload{URL: storage.URL + "/bucket/key.png", Key: "key.png"}
	require.NoError(t, c.UploadToPresignedURL(context.Background(), target, strings.NewReader("png-bytes"), 9, "image/png"))
	assert.Equal(t, "png-bytes", got)
	assert.Equal(t, "image/png", gotType)

	target.URL = storage.URL + "/denied"
	err = c.UploadToPresignedURL(context.Background(), target, strings.NewReader("x"), 1, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "SignatureDoesNotMatch")
}
