// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/opticalsecurity/markify/internal/mediatype"
	"github.com/opticalsecurity/markify/pkg/types"
)

// FileStatus is the outcome of converting one local file.
type FileStatus string

const (
	FileConverted FileStatus = "converted"
	FileSkipped   FileStatus = "skipped"
	FileFailed    FileStatus = "failed"
)

// now is replaced in tests.
var now = time.Now

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FileOptions controls local file conversion.
type FileOptions struct {
	// APIToken and AccountID are passed as caller-supplied credentials.
	APIToken  string
	AccountID string

	// OutDir receives <base>.md files. When empty, Markdown is written to Out.
	OutDir string

	// Out receives Markdown when OutDir is empty.
	Out io.Writer

	// Log receives per-file status lines.
	Log io.Writer
}

// ReadDocument loads path and derives its media type from the extension.
// Unknown extensions yield an empty media type, which Validate rejects.
func ReadDocument(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return types.Document{
		Name:      filepath.Base(path),
		MediaType: mediatype.FromExtension(filepath.Ext(path)),
		Content:   data,
	}, nil
}

// ConvertFile converts one local file through svc. If OutDir is set and the
// Markdown output already exists, it skips conversion.
func ConvertFile(ctx context.Context, svc *Service, path string, opts FileOptions) FileStatus {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var mdPath string
	if opts.OutDir != "" {
		mdPath = filepath.Join(opts.OutDir, base+".md")
		if _, err := os.Stat(mdPath); err == nil {
			fmt.Fprintf(opts.Log, "skipped: %s (already exists)\n", base)
			return FileSkipped
		}
	}

	doc, err := ReadDocument(path)
	if err != nil {
		fmt.Fprintf(opts.Log, "failed:  %s (%v)\n", base, err)
		return FileFailed
	}

	res, err := svc.Convert(ctx, types.UploadRequest{
		File:      &doc,
		APIToken:  opts.APIToken,
		AccountID: opts.AccountID,
	})
	if err != nil {
		fmt.Fprintf(opts.Log, "failed:  %s (%v)\n", base, err)
		return FileFailed
	}

	content, err := addFrontmatter(res)
	if err != nil {
		fmt.Fprintf(opts.Log, "failed:  %s (%v)\n", base, err)
		return FileFailed
	}

	if mdPath == "" {
		if _, err := io.WriteString(opts.Out, content); err != nil {
			fmt.Fprintf(opts.Log, "failed:  %s (%v)\n", base, err)
			return FileFailed
		}
	} else {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			fmt.Fprintf(opts.Log, "failed:  %s (%v)\n", base, err)
			return FileFailed
		}
		if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
			fmt.Fprintf(opts.Log, "failed:  %s (%v)\n", base, err)
			return FileFailed
		}
	}

	fmt.Fprintf(opts.Log, "converted: %s (%d tokens)\n", base, res.Tokens)
	return FileConverted
}

// ConvertBatch converts each path in order, printing per-file status to
// opts.Log and returning a summary. It continues after individual failures.
func ConvertBatch(ctx context.Context, svc *Service, paths []string, opts FileOptions) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertFile(ctx, svc, p, opts) {
		case FileConverted:
			result.Converted++
		case FileSkipped:
			result.Skipped++
		case FileFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(opts.Log, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

type frontmatter struct {
	Name        string `yaml:"name"`
	MimeType    string `yaml:"mime_type"`
	Format      string `yaml:"format"`
	Tokens      int    `yaml:"tokens"`
	ConvertedAt string `yaml:"converted_at"`
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown.
func addFrontmatter(res types.ConversionResult) (string, error) {
	fm, err := yaml.Marshal(frontmatter{
		Name:        res.Name,
		MimeType:    res.MimeType,
		Format:      res.Format,
		Tokens:      res.Tokens,
		ConvertedAt: now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(res.Markdown)
	if !strings.HasSuffix(res.Markdown, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}
