// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mediatype defines the set of media types accepted for conversion
// and the image subset that requires caller-supplied credentials.
package mediatype

import (
	"slices"
	"strings"
)

// Images lists the image media types. They are only accepted with
// caller-supplied credentials.
var Images = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/svg+xml",
}

// Documents lists the non-image media types usable with default credentials.
var Documents = []string{
	"application/pdf",
	"text/html",
	"application/xml",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-excel.sheet.macroenabled.12",
	"application/vnd.ms-excel.sheet.binary.macroenabled.12",
	"application/vnd.ms-excel",
	"application/vnd.oasis.opendocument.spreadsheet",
	"text/csv",
	"application/vnd.apple.numbers",
}

// extensions maps file extensions to media types, in display order.
var extensions = []struct {
	ext   string
	mtype string
}{
	{".pdf", "application/pdf"},
	{".jpeg", "image/jpeg"},
	{".jpg", "image/jpeg"},
	{".png", "image/png"},
	{".webp", "image/webp"},
	{".svg", "image/svg+xml"},
	{".html", "text/html"},
	{".xml", "application/xml"},
	{".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	{".xlsm", "application/vnd.ms-excel.sheet.macroenabled.12"},
	{".xlsb", "application/vnd.ms-excel.sheet.binary.macroenabled.12"},
	{".xls", "application/vnd.ms-excel"},
	{".et", "application/vnd.ms-excel"},
	{".ods", "application/vnd.oasis.opendocument.spreadsheet"},
	{".csv", "text/csv"},
	{".numbers", "application/vnd.apple.numbers"},
}

// Supported returns every accepted media type, PDF first and images
// after it, matching the order users see in the upload form.
func Supported() []string {
	out := make([]string, 0, len(Images)+len(Documents))
	out = append(out, Documents[0])
	out = append(out, Images...)
	out = append(out, Documents[1:]...)
	return out
}

// Normalize strips media type parameters and surrounding whitespace.
// Case is preserved: membership checks are case-sensitive.
func Normalize(declared string) string {
	mt, _, _ := strings.Cut(declared, ";")
	return strings.TrimSpace(mt)
}

// IsImage reports whether mt is in the image subset.
func IsImage(mt string) bool {
	return slices.Contains(Images, mt)
}

// IsSupported reports whether mt is an accepted media type.
func IsSupported(mt string) bool {
	return IsImage(mt) || slices.Contains(Documents, mt)
}

// FromExtension returns the media type for a file extension such as ".pdf".
// The lookup ignores case. It returns "" for unknown extensions.
func FromExtension(ext string) string {
	ext = strings.ToLower(ext)
	for _, e := range extensions {
		if e.ext == ext {
			return e.mtype
		}
	}
	return ""
}

// AcceptList returns the comma-separated extension list for an HTML file
// input. Image extensions are included only when includeImages is true.
func AcceptList(includeImages bool) string {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		if !includeImages && IsImage(e.mtype) {
			continue
		}
		exts = append(exts, e.ext)
	}
	return strings.Join(exts, ",")
}
