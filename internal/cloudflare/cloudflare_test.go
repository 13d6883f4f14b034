// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cloudflare

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opticalsecurity/markify/pkg/types"
)

var (
	testCreds = types.Credentials{APIToken: "tok_123", AccountID: "acct_456"}
	testDoc   = types.Document{Name: "a.pdf", MediaType: "application/pdf", Content: []byte("%PDF-1.7 body")}
)

func TestConvert_Success(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/client/v4/accounts/acct_456/ai/tomarkdown", r.URL.Path)
		assert.Equal(t, "Bearer tok_123", r.Header.Get("Authorization"))

		f, fh, err := r.FormFile("files")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "a.pdf", fh.Filename)
		assert.Equal(t, "application/pdf", fh.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.7 body", string(content))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"result":[{"name":"a.pdf","mimeType":"application/pdf","format":"markdown","tokens":42,"data":"# Hello"}]}`)
	}))
	defer ts.Close()

	got, err := New(ts.URL, ts.Client()).Convert(context.Background(), testCreds, testDoc)
	require.NoError(t, err)

	assert.Equal(t, types.ConversionResult{
		Name:     "a.pdf",
		MimeType: "application/pdf",
		Format:   "markdown",
		Tokens:   42,
		Markdown: "# Hello",
	}, got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConvert_FirstResultOnly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"success":true,"result":[
			{"name":"first.csv","mimeType":"text/csv","format":"markdown","tokens":1,"data":"| a |"},
			{"name":"second.csv","mimeType":"text/csv","format":"markdown","tokens":2,"data":"| b |"}]}`)
	}))
	defer ts.Close()

	got, err := New(ts.URL, ts.Client()).Convert(context.Background(), testCreds, testDoc)
	require.NoError(t, err)
	assert.Equal(t, "first.csv", got.Name)
	assert.Equal(t, "| a |", got.Markdown)
}

func TestConvert_StatusErrorDoesNotRetry(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(code)
				io.WriteString(w, `{"success":false,"errors":[{"code":10000,"message":"Authentication error"}]}`)
			}))
			defer ts.Close()

			_, err := New(ts.URL, ts.Client()).Convert(context.Background(), testCreds, testDoc)
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, code, se.StatusCode)
			assert.NotContains(t, err.Error(), "Authentication error")
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestConvert_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"success false", `{"success":false}`},
		{"empty result", `{"success":true,"result":[]}`},
		{"missing result", `{"success":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			_, err := New(ts.URL, ts.Client()).Convert(context.Background(), testCreds, testDoc)
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestConvert_MalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html>gateway</html>`)
	}))
	defer ts.Close()

	_, err := New(ts.URL, ts.Client()).Convert(context.Background(), testCreds, testDoc)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidResponse))
	var se *StatusError
	assert.False(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "parsing toMarkdown response")
}

func TestConvert_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := New(url, nil).Convert(context.Background(), testCreds, testDoc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toMarkdown request")
}

func TestConvert_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(ts.URL, ts.Client()).Convert(ctx, testCreds, testDoc)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		account string
		want    string
	}{
		{"default base", "", "abc", "https://api.cloudflare.com/client/v4/accounts/abc/ai/tomarkdown"},
		{"trailing slash", "http://localhost:8080/", "abc", "http://localhost:8080/client/v4/accounts/abc/ai/tomarkdown"},
		{"escapes account", "http://x", "a/b", "http://x/client/v4/accounts/a%2Fb/ai/tomarkdown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.base, nil).Endpoint(tt.account))
		})
	}
}
