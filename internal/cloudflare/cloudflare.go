// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cloudflare is a client for the Workers AI toMarkdown endpoint.
package cloudflare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/opticalsecurity/markify/internal/httputil"
	"github.com/opticalsecurity/markify/pkg/types"
)

// DefaultBaseURL is the public Cloudflare API origin.
const DefaultBaseURL = "https://api.cloudflare.com"

// filesField is the multipart field the endpoint reads documents from.
const filesField = "files"

// ErrInvalidResponse is returned when the API answers 2xx but reports
// failure or returns no result.
var ErrInvalidResponse = errors.New("invalid response from Cloudflare API")

// StatusError reports a non-2xx response. The response body is discarded.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Cloudflare API returned HTTP %d", e.StatusCode)
}

// toMarkdownResponse captures the fields we read from the API envelope.
type toMarkdownResponse struct {
	Success bool               `json:"success"`
	Result  []toMarkdownResult `json:"result"`
}

type toMarkdownResult struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Format   string `json:"format"`
	Tokens   int    `json:"tokens"`
	Data     string `json:"data"`
}

// Client calls the toMarkdown endpoint. It is safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the API at baseURL. An empty baseURL selects
// DefaultBaseURL and a nil httpc selects http.DefaultClient.
func New(baseURL string, httpc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// Endpoint returns the toMarkdown URL for accountID.
func (c *Client) Endpoint(accountID string) string {
	return c.baseURL + "/client/v4/accounts/" + url.PathEscape(accountID) + "/ai/tomarkdown"
}

// Convert uploads doc and returns the first converted result. It makes
// exactly one request and never retries.
func (c *Client) Convert(ctx context.Context, creds types.Credentials, doc types.Document) (types.ConversionResult, error) {
	body, contentType, err := httputil.MultipartBody(httputil.FilePart{
		Field:       filesField,
		Filename:    doc.Name,
		ContentType: doc.MediaType,
		Content:     doc.Content,
	})
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("encoding upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(creds.AccountID), body)
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("creating toMarkdown request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.APIToken)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("toMarkdown request: %w", err)
	}

	if !httputil.IsSuccess(resp.StatusCode) {
		httputil.DrainAndClose(resp.Body)
		return types.ConversionResult{}, &StatusError{StatusCode: resp.StatusCode}
	}
	defer resp.Body.Close()

	var out toMarkdownResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.ConversionResult{}, fmt.Errorf("parsing toMarkdown response: %w", err)
	}
	if !out.Success || len(out.Result) == 0 {
		return types.ConversionResult{}, ErrInvalidResponse
	}

	r := out.Result[0]
	return types.ConversionResult{
		Name:     r.Name,
		MimeType: r.MimeType,
		Format:   r.Format,
		Tokens:   r.Tokens,
		Markdown: r.Data,
	}, nil
}
