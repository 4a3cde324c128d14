package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// multipartBody builds a multipart/form-data body from plain fields plus an
// optional file part. filePath == "" skips the file part (the backend treats
// the image as optional on create and update).
func multipartBody(fields map[string]string, fileField, filePath string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()

		name := filepath.Base(filePath)
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, name))
		if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
			hdr.Set("Content-Type", ct)
		} else {
			hdr.Set("Content-Type", "application/octet-stream")
		}
		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// doMultipart sends a multipart request and decodes the response into out.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, filePath string, out any) error {
	body, contentType, err := multipartBody(fields, "image", filePath)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: fmt.Sprintf("build upload: %v", err)}
	}
	return c.do(ctx, method, path, nil, body, contentType, out)
}
