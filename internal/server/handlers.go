// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/opticalsecurity/markify/internal/convert"
	"github.com/opticalsecurity/markify/internal/mediatype"
	"github.com/opticalsecurity/markify/pkg/types"
)

// Form field names accepted by POST /api/convert.
const (
	fieldFile      = "file"
	fieldAPIToken  = "apiToken"
	fieldAccountID = "accountId"
)

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(s.page)
}

func (s *Server) handleConvert(c *fiber.Ctx) error {
	req, err := uploadRequest(c)
	if err != nil {
		s.log.Error("reading upload", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: convert.MsgInternal})
	}

	res, err := s.svc.Convert(c.UserContext(), req)
	if err != nil {
		code, msg := convert.StatusFor(err)
		if convert.Expected(err) {
			s.log.Debug("conversion rejected", "status", code, "err", err)
		} else {
			s.log.Error("converting file", "err", err)
		}
		return c.Status(code).JSON(types.ErrorResponse{Error: msg})
	}

	s.log.Debug("converted file", "name", res.Name, "mime_type", res.MimeType, "tokens", res.Tokens)
	return c.JSON(res)
}

// uploadRequest reads the multipart form. A missing file field yields a
// request with a nil File; a body that is not a multipart form is an error.
func uploadRequest(c *fiber.Ctx) (types.UploadRequest, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return types.UploadRequest{}, fmt.Errorf("parsing multipart form: %w", err)
	}

	req := types.UploadRequest{
		APIToken:  firstValue(form, fieldAPIToken),
		AccountID: firstValue(form, fieldAccountID),
	}

	files := form.File[fieldFile]
	if len(files) == 0 {
		return req, nil
	}
	doc, err := readDocument(files[0])
	if err != nil {
		return types.UploadRequest{}, err
	}
	req.File = &doc
	return req, nil
}

func readDocument(fh *multipart.FileHeader) (types.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return types.Document{}, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}
	return types.Document{
		Name:      fh.Filename,
		MediaType: mediatype.Normalize(fh.Header.Get(fiber.HeaderContentType)),
		Content:   data,
	}, nil
}

func firstValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
