package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

type formFile struct {
	field    string
	filename string
	content  io.Reader
}

// Form is a multipart upload body.
type Form struct {
	fields [][2]string
	files  []formFile
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

func (f *Form) AddFile(field, filename string, content io.Reader) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", kv[0], err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", file.field, err)
		}
		if _, err := io.Copy(part, file.content); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", file.filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
