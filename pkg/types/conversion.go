// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is an uploaded file as declared by the client.
type Document struct {
	// Name is the original filename.
	Name string `json:"name" yaml:"name"`

	// MediaType is the declared media type of the file (e.g. "application/pdf").
	MediaType string `json:"media_type" yaml:"media_type"`

	// Content holds the raw file bytes.
	Content []byte `json:"-" yaml:"-"`
}

// UploadRequest is a single conversion submission. File is nil when the
// form carried no file field.
type UploadRequest struct {
	File *Document

	// APIToken and AccountID are optional caller-supplied overrides for the
	// default Cloudflare credentials.
	APIToken  string
	AccountID string
}

// ConversionResult is the normalized outcome of a successful conversion.
type ConversionResult struct {
	Name     string `json:"name" yaml:"name"`
	MimeType string `json:"mimeType" yaml:"mime_type"`
	Format   string `json:"format" yaml:"format"`
	Tokens   int    `json:"tokens" yaml:"tokens"`
	Markdown string `json:"markdown" yaml:"-"`
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
