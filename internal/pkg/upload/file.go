package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
)

// FileEntry is one record of an adapter's file list. A form field with
// several files is reported as a group entry whose Multifiles names the
// member entries field_0, field_1 and so on.
type FileEntry struct {
	Field      string
	Original   string
	Size       int64
	Filename   string
	Path       string
	Received   bool
	Multifiles []string

	header *multipart.FileHeader
}

// IsGroup reports whether the entry only aggregates other entries.
func (f *FileEntry) IsGroup() bool {
	return len(f.Multifiles) > 0
}

// Open returns the uploaded content.
func (f *FileEntry) Open() (multipart.File, error) {
	if f.header == nil {
		return nil, errors.New("file entry has no content")
	}
	src, err := f.header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %q: %w", f.Original, err)
	}
	return src, nil
}
