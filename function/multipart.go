package function

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/abcretail/retail/service"
)

// ErrNotMultipart is returned when a request expected to carry a
// multipart form body does not.
var ErrNotMultipart = errors.New("function: request body is not multipart form data")

// FormFile is an uploaded file extracted from a multipart body.
type FormFile struct {
	FileName string
	Data     []byte
}

// Form holds the decoded fields and files of a multipart request body.
type Form struct {
	values map[string]string
	files  []FormFile
}

// Value returns the named form field, empty when absent.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// File returns the first uploaded file, or nil.
func (f *Form) File() *FormFile {
	if len(f.files) == 0 {
		return nil
	}
	return &f.files[0]
}

// parseMultipart decodes the multipart form body of an API Gateway
// proxy request. Binary bodies arrive base64-encoded from the gateway.
func parseMultipart(req events.APIGatewayProxyRequest) (*Form, error) {
	mediaType, params, err := mime.ParseMediaType(header(req, "Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return nil, ErrNotMultipart
	}

	body, err := requestBody(req)
	if err != nil {
		return nil, err
	}

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	form := &Form{values: make(map[string]string)}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart part: %w", err)
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("read multipart part: %w", err)
		}

		if part.FileName() != "" {
			form.files = append(form.files, FormFile{FileName: part.FileName(), Data: data})
			continue
		}
		form.values[part.FormName()] = string(data)
	}
	return form, nil
}

// photoFromForm wraps the uploaded file, if any, for the photo store.
func photoFromForm(form *Form) *service.PhotoUpload {
	file := form.File()
	if file == nil || file.FileName == "" {
		return nil
	}
	return &service.PhotoUpload{
		FileName: file.FileName,
		Body:     bytes.NewReader(file.Data),
	}
}

// header fetches a request header case-insensitively. API Gateway does
// not normalize header casing.
func header(req events.APIGatewayProxyRequest, name string) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
