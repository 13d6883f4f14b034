// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the conversion policy: upload validation,
// credential resolution, forwarding to a Converter, and the mapping of
// failures to HTTP statuses.
package convert

import (
	"context"
	"errors"
	"net/http"

	"github.com/opticalsecurity/markify/internal/cloudflare"
	"github.com/opticalsecurity/markify/internal/mediatype"
	"github.com/opticalsecurity/markify/pkg/types"
)

// User-facing messages. They are part of the API contract.
const (
	MsgNoFile             = "No file provided"
	MsgImageNeedsCustom   = "Image uploads require custom Cloudflare credentials"
	MsgUnsupportedType    = "Unsupported file type. Please upload a supported document type."
	MsgMissingCredentials = "Missing Cloudflare credentials"
	MsgConversionFailed   = "Failed to convert file"
	MsgInternal           = "Internal server error"
)

// InputError is a client input failure. Message is returned verbatim.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

var (
	ErrNoFile             = &InputError{Message: MsgNoFile}
	ErrImageNeedsCustom   = &InputError{Message: MsgImageNeedsCustom}
	ErrUnsupportedType    = &InputError{Message: MsgUnsupportedType}
	ErrMissingCredentials = &InputError{Message: MsgMissingCredentials}
)

// Converter turns a document into Markdown using the given credentials.
// cloudflare.Client implements it.
type Converter interface {
	Convert(ctx context.Context, creds types.Credentials, doc types.Document) (types.ConversionResult, error)
}

// ResolveCredentials picks, per field, the caller-supplied value when it is
// non-empty and the default otherwise.
func ResolveCredentials(apiToken, accountID string, defaults types.Credentials) types.Credentials {
	c := defaults
	if apiToken != "" {
		c.APIToken = apiToken
	}
	if accountID != "" {
		c.AccountID = accountID
	}
	return c
}

// Validate runs the ordered checks on req and returns the credentials to
// forward with. The first failing check wins:
//
//  1. a file is present
//  2. images carry a caller-supplied token
//  3. the media type is supported
//  4. token and account ID are both resolvable
func Validate(req types.UploadRequest, defaults types.Credentials) (types.Credentials, error) {
	if req.File == nil {
		return types.Credentials{}, ErrNoFile
	}
	if mediatype.IsImage(req.File.MediaType) && req.APIToken == "" {
		return types.Credentials{}, ErrImageNeedsCustom
	}
	if !mediatype.IsSupported(req.File.MediaType) {
		return types.Credentials{}, ErrUnsupportedType
	}
	creds := ResolveCredentials(req.APIToken, req.AccountID, defaults)
	if !creds.Complete() {
		return types.Credentials{}, ErrMissingCredentials
	}
	return creds, nil
}

// Service validates uploads and forwards accepted ones to a Converter.
// It holds no mutable state.
type Service struct {
	conv     Converter
	defaults types.Credentials
}

// NewService creates a Service. defaults are used for any credential the
// caller leaves empty.
func NewService(conv Converter, defaults types.Credentials) *Service {
	return &Service{conv: conv, defaults: defaults}
}

// Convert validates req and, if it passes, makes exactly one upstream call.
func (s *Service) Convert(ctx context.Context, req types.UploadRequest) (types.ConversionResult, error) {
	creds, err := Validate(req, s.defaults)
	if err != nil {
		return types.ConversionResult{}, err
	}
	return s.conv.Convert(ctx, creds, *req.File)
}

// StatusFor maps an error from Service.Convert to the HTTP status and the
// message returned to the caller. Unknown errors yield 500 so that no
// internal detail is exposed.
func StatusFor(err error) (int, string) {
	var ie *InputError
	if errors.As(err, &ie) {
		return http.StatusBadRequest, ie.Message
	}
	var se *cloudflare.StatusError
	if errors.As(err, &se) {
		return se.StatusCode, MsgConversionFailed
	}
	return http.StatusInternalServerError, MsgInternal
}

// Expected reports whether err belongs to a class that needs no server-side
// logging: client input errors and upstream HTTP errors.
func Expected(err error) bool {
	var ie *InputError
	var se *cloudflare.StatusError
	return errors.As(err, &ie) || errors.As(err, &se)
}
