package kernel

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"studydesk/internal/pkg/errs"
)

// FileKind tells how the chat platform stores an uploaded file.
type FileKind string

const (
	FileKindPhoto    FileKind = "photo"
	FileKindDocument FileKind = "document"
)

func (k FileKind) Validate() error {
	if k != FileKindPhoto && k != FileKindDocument {
		return errs.NewValueIsInvalidErrorWithCause("file kind", fmt.Errorf("%q is not photo or document", string(k)))
	}
	return nil
}

// FileRef points at a file kept by the chat platform. The file itself is never
// downloaded; only its platform id travels between parties.
type FileRef struct {
	id   string
	kind FileKind
}

func NewFileRef(id string, kind FileKind) (FileRef, error) {
	if strings.TrimSpace(id) == "" {
		return FileRef{}, errs.NewValueIsRequiredError("file id")
	}
	if err := kind.Validate(); err != nil {
		return FileRef{}, err
	}
	return FileRef{id: id, kind: kind}, nil
}

func (f FileRef) ID() string {
	return f.id
}

func (f FileRef) Kind() FileKind {
	return f.kind
}

func (f FileRef) IsZero() bool {
	return f.id == ""
}

// UploadPolicy limits what customers and executors may attach.
type UploadPolicy struct {
	Extensions []string
	MaxSize    int64
}

// DefaultUploadPolicy accepts pdf, docx and common images up to 15 MiB.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		Extensions: []string{".pdf", ".docx", ".png", ".jpeg", ".jpg"},
		MaxSize:    15 * 1024 * 1024,
	}
}

// Check validates an upload. Photos carry no file name, so only their size is checked.
func (p UploadPolicy) Check(name string, size int64, kind FileKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	if p.MaxSize > 0 && size > p.MaxSize {
		return errs.NewValueIsOutOfRangeError("file size", size, 0, p.MaxSize)
	}

	if kind == FileKindPhoto {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(p.Extensions, ext) {
		return errs.NewValueIsInvalidErrorWithCause(
			"file extension",
			fmt.Errorf("%q is not one of %s", ext, strings.Join(p.Extensions, ", ")),
		)
	}
	return nil
}
