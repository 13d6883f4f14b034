// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultipartBody_PreservesPartContentType(t *testing.T) {
	var gotName, gotType, gotContent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, fh, err := r.FormFile("files")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotName = fh.Filename
		gotType = fh.Header.Get("Content-Type")
		gotContent = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	body, ct, err := MultipartBody(FilePart{
		Field:       "files",
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.7"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="))

	resp, err := http.Post(ts.URL, ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "report.pdf", gotName)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "%PDF-1.7", gotContent)
}

func TestMultipartBody_DefaultContentType(t *testing.T) {
	body, _, err := MultipartBody(FilePart{Field: "files", Filename: "blob", Content: []byte("x")})
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Content-Type: application/octet-stream")
}

func TestMultipartBody_EscapesFilename(t *testing.T) {
	body, _, err := MultipartBody(FilePart{Field: "files", Filename: `my "quoted" file.csv`, Content: []byte("a,b")})
	require.NoError(t, err)
	assert.Contains(t, body.String(), `filename="my \"quoted\" file.csv"`)
}

func TestDrainAndClose(t *testing.T) {
	rc := io.NopCloser(strings.NewReader("upstream error detail"))
	assert.Equal(t, int64(21), DrainAndClose(rc))
}

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{299, true},
		{http.StatusMultipleChoices, false},
		{http.StatusBadRequest, false},
		{http.StatusServiceUnavailable, false},
		{199, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSuccess(tt.code), "code %d", tt.code)
	}
}
