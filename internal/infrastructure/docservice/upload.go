package docservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/kirillkom/docchat/internal/core/domain"
	"github.com/kirillkom/docchat/internal/core/ports"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload posts the document as multipart field "file". Any non-2xx status
// or undecodable body is a failure.
func (c *Client) Upload(ctx context.Context, file ports.FileLike) (*domain.UploadResult, error) {
	body, contentType, err := buildUploadBody(file)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTransportFailure, "upload document", err)
	}

	var result domain.UploadResult
	err = c.executor.Execute(ctx, "upload", func(ctx context.Context) error {
		return c.doUpload(ctx, body, contentType, &result)
	}, classifyError)
	if err != nil {
		return nil, wrapFailure("upload document", err)
	}
	return &result, nil
}

func (c *Client) doUpload(ctx context.Context, body []byte, contentType string, out *domain.UploadResult) error {
	if err := c.wait(ctx); err != nil {
		return fmt.Errorf("rate limit upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	setRequestID(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPStatusError("upload", resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Operation: "upload", Err: err}
	}
	return nil
}

func buildUploadBody(file ports.FileLike) ([]byte, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open document: %w", err)
	}
	defer src.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name())))
	header.Set("Content-Type", file.MIMEType())
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("read document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
