// ABOUTME: Request body encodings: JSON structures and multipart uploads
// ABOUTME: Multipart parts are content-sniffed and image fields reject non-images

package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// ErrNotImage is returned when an image-only attachment is not an image
var ErrNotImage = errors.New("not a valid image file")

// Body is an outbound request body
type Body interface {
	// Multipart reports whether the body is form data that may carry files.
	// Multipart bodies never get an explicit Content-Type; the encoder supplies
	// the boundary-bearing value.
	Multipart() bool
	Encode() (data []byte, contentType string, err error)
}

type jsonBody struct {
	v any
}

// JSON encodes v as an application/json body
func JSON(v any) Body {
	return jsonBody{v: v}
}

func (b jsonBody) Multipart() bool { return false }

func (b jsonBody) Encode() ([]byte, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal body: %w", err)
	}
	return data, "application/json", nil
}

// Field is one text part of a multipart body
type Field struct {
	Name  string
	Value string
}

// File is one binary part of a multipart body. Data wins over Path when both are set.
type File struct {
	Field     string
	Name      string
	Path      string
	Data      []byte
	ImageOnly bool
}

// Form is a multipart/form-data body
type Form struct {
	Fields []Field
	Files  []File
}

// NewForm creates an empty multipart body
func NewForm() *Form {
	return &Form{}
}

// Set appends a text field
func (f *Form) Set(name, value string) *Form {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
	return f
}

// SetIf appends a text field only when value is non-empty
func (f *Form) SetIf(name, value string) *Form {
	if value != "" {
		f.Set(name, value)
	}
	return f
}

// Attach appends a file read from path
func (f *Form) Attach(field, path string, imageOnly bool) *Form {
	f.Files = append(f.Files, File{Field: field, Path: path, ImageOnly: imageOnly})
	return f
}

// AttachData appends an in-memory file
func (f *Form) AttachData(field, name string, data []byte, imageOnly bool) *Form {
	f.Files = append(f.Files, File{Field: field, Name: name, Data: data, ImageOnly: imageOnly})
	return f
}

// HasFiles reports whether any attachment is present
func (f *Form) HasFiles() bool {
	return len(f.Files) > 0
}

func (f *Form) Multipart() bool { return true }

func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field.Name, err)
		}
	}

	for _, file := range f.Files {
		data, name, err := file.read()
		if err != nil {
			return nil, "", err
		}

		mime := "application/octet-stream"
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			mime = kind.MIME.Value
		}
		if file.ImageOnly && !filetype.IsImage(data) {
			return nil, "", fmt.Errorf("%s: %w", name, ErrNotImage)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(file.Field), escapeQuotes(name)))
		h.Set("Content-Type", mime)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part %s: %w", file.Field, err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("failed to write part %s: %w", file.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func (file File) read() ([]byte, string, error) {
	name := file.Name
	if file.Data != nil {
		if name == "" {
			name = file.Field
		}
		return file.Data, name, nil
	}

	if name == "" {
		name = filepath.Base(file.Path)
	}
	fh, err := os.Open(file.Path)
	if err != nil {
		return nil, "", fmt.Errorf("unable to open %s: %w", file.Path, err)
	}
	defer fh.Close()
	data, err := io.ReadAll(fh)
	if err != nil {
		return nil, "", fmt.Errorf("unable to read %s: %w", file.Path, err)
	}
	return data, name, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
