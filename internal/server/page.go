// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/opticalsecurity/markify/internal/mediatype"
)

//go:embed templates/index.html
var templatesFS embed.FS

type indexData struct {
	AcceptDocuments string
	AcceptAll       string
}

// renderIndex renders the upload page once at startup.
func renderIndex() ([]byte, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, indexData{
		AcceptDocuments: mediatype.AcceptList(false),
		AcceptAll:       mediatype.AcceptList(true),
	}); err != nil {
		return nil, fmt.Errorf("rendering index template: %w", err)
	}
	return buf.Bytes(), nil
}
