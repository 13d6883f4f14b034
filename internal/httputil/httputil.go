// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the upstream client and
// the server.
package httputil

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// quoteEscaper mirrors mime/multipart's escaping of Content-Disposition
// parameters.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// FilePart describes a single file to embed in a multipart body.
type FilePart struct {
	// Field is the form field name.
	Field string

	// Filename is sent in the Content-Disposition header.
	Filename string

	// ContentType is the part's Content-Type. Empty falls back to
	// application/octet-stream.
	ContentType string

	Content []byte
}

// MultipartBody encodes parts as multipart/form-data. It returns the body
// and the Content-Type header value carrying the boundary.
//
// Unlike multipart.Writer.CreateFormFile, each part keeps its declared
// content type.
func MultipartBody(parts ...FilePart) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	for _, p := range parts {
		ct := p.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(p.Field), quoteEscaper.Replace(p.Filename)))
		h.Set("Content-Type", ct)

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("creating part %s: %w", p.Field, err)
		}
		if _, err := pw.Write(p.Content); err != nil {
			return nil, "", fmt.Errorf("writing part %s: %w", p.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

// DrainAndClose reads body to EOF, discards it, and closes it. It returns the
// number of bytes discarded.
func DrainAndClose(body io.ReadCloser) int64 {
	n, _ := io.Copy(io.Discard, body)
	body.Close()
	return n
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
