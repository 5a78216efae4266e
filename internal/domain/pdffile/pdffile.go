package pdffile

import (
	"errors"
	"mime"
	"strings"
)

// ContentType is the only declared type accepted for upload.
const ContentType = "application/pdf"

var (
	ErrMissing  = errors.New("no file attached")
	ErrNotPDF   = errors.New("file is not a PDF")
	ErrTooLarge = errors.New("file exceeds the upload limit")
)

// File is a user-supplied document as the browser declared it.
// The declared content type is trusted; the bytes are not inspected.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// New creates a File from an upload.
func New(name, contentType string, content []byte) *File {
	return &File{
		Name:        name,
		ContentType: contentType,
		Content:     content,
	}
}

// IsPDF reports whether the declared media type is application/pdf.
// Parameters such as "; charset=binary" are ignored.
func (f *File) IsPDF() bool {
	mediaType, _, err := mime.ParseMediaType(f.ContentType)
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, ContentType)
}

// Validate is the gate every upload passes before any request is sent.
func Validate(f *File) error {
	if f == nil {
		return ErrMissing
	}
	if !f.IsPDF() {
		return ErrNotPDF
	}
	return nil
}
