package upload

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// Validator names used with the adapter.
const (
	ValidatorExtension        = "Extension"
	ValidatorExcludeExtension = "ExcludeExtension"
	ValidatorSize             = "Size"
	ValidatorImageSize        = "ImageSize"
	ValidatorSniff            = "Sniff"
)

// Uploader configures a transfer adapter for one request: where files go,
// how they are renamed and which rules they must pass.
type Uploader struct {
	adapter     Adapter
	fs          Filesystem
	resolver    Resolver
	destination string
	renamer     Renamer
}

// New builds an Uploader for the files of form. The resolver provides the
// default destination (the current module name) and the upload root.
func New(resolver Resolver, fs Filesystem, form *multipart.Form, opts Options) (*Uploader, error) {
	if fs == nil {
		fs = OSFilesystem{}
	}

	adapter, err := newAdapter(opts.Adapter.OrElse(DefaultAdapter), form)
	if err != nil {
		return nil, err
	}

	u := &Uploader{adapter: adapter, fs: fs, resolver: resolver}

	if err := u.SetDestination(opts.Destination.OrElse(resolver.ModuleName()), true); err != nil {
		return nil, err
	}
	u.SetRename(opts.Rename.OrElse(DefaultRename))

	if exts, ok := opts.Extension.Get(); ok {
		u.SetExtension(exts...)
	}
	if exts, ok := opts.ExcludeExtension.Get(); ok {
		u.SetExcludeExtension(exts...)
	}
	if size, ok := opts.Size.Get(); ok {
		if err := u.SetSize(size); err != nil {
			return nil, err
		}
	}
	if dims, ok := opts.ImageSize.Get(); ok {
		if err := u.SetImageSize(dims); err != nil {
			return nil, err
		}
	}

	return u, nil
}

// Adapter exposes the underlying transfer adapter.
func (u *Uploader) Adapter() Adapter {
	return u.adapter
}

// SetDestination resolves value below the upload root unless it is
// absolute, makes sure the directory exists and hands the absolute path to
// the adapter. Destination keeps returning value as given.
func (u *Uploader) SetDestination(value string, verify bool) error {
	if strings.TrimSpace(value) == "" {
		return &PathError{Op: "resolve", Path: value, Err: ErrEmptyDestination}
	}

	resolved, err := u.resolve(value)
	if err != nil {
		return err
	}

	if !u.fs.IsDir(resolved) {
		if err := u.fs.MkdirAll(resolved); err != nil {
			return &PathError{Op: "create", Path: resolved, Err: err}
		}
		log.Infof("[Upload] Created destination %s", resolved)
	}
	if verify && !u.fs.IsDir(resolved) {
		return &PathError{Op: "verify", Path: resolved, Err: ErrNotDirectory}
	}

	if err := u.adapter.SetDestination(resolved); err != nil {
		return &PathError{Op: "set", Path: resolved, Err: err}
	}
	u.destination = value
	return nil
}

func (u *Uploader) resolve(value string) (string, error) {
	if u.fs.IsAbs(value) {
		return filepath.Clean(value), nil
	}

	root, err := filepath.Abs(u.resolver.UploadRoot())
	if err != nil {
		return "", &PathError{Op: "resolve", Path: value, Err: err}
	}
	resolved := filepath.Join(root, value)
	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathError{Op: "resolve", Path: value, Err: ErrOutsideUploadRoot}
	}
	return resolved, nil
}

// Destination returns the destination as it was configured.
func (u *Uploader) Destination() string {
	return u.destination
}

// ResolvedDestination returns the absolute directory files are written to.
func (u *Uploader) ResolvedDestination() string {
	return u.adapter.Destination()
}

// SetRename replaces the rename strategy. nil keeps original filenames,
// leaving collisions to the adapter.
func (u *Uploader) SetRename(r Renamer) {
	u.adapter.RemoveFilter(renameFilterName)
	u.renamer = r
	if r == nil {
		return
	}
	u.adapter.AddFilter(renameFilter{renamer: r})
}

// Renamer returns the active rename strategy, nil when disabled.
func (u *Uploader) Renamer() Renamer {
	return u.renamer
}

// SetExtension allows only the given extensions. Values may be comma separated.
func (u *Uploader) SetExtension(values ...string) {
	u.adapter.AddValidator(ValidatorExtension, false, NewExtensionValidator(false, values...))
}

// SetExcludeExtension rejects the given extensions. Values may be comma separated.
func (u *Uploader) SetExcludeExtension(values ...string) {
	u.adapter.AddValidator(ValidatorExcludeExtension, false, NewExtensionValidator(true, values...))
}

func (u *Uploader) SetSize(r SizeRange) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid size range: %w", err)
	}
	u.adapter.AddValidator(ValidatorSize, false, &SizeValidator{Range: r})
	return nil
}

func (u *Uploader) SetImageSize(r ImageSizeRange) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid image size range: %w", err)
	}
	u.adapter.AddValidator(ValidatorImageSize, false, &ImageSizeValidator{Range: r})
	return nil
}

// SetSniff toggles rejection of HTML, XML and SVG content.
func (u *Uploader) SetSniff(enabled bool) {
	if !enabled {
		u.adapter.RemoveValidator(ValidatorSniff)
		return
	}
	u.adapter.AddValidator(ValidatorSniff, true, SniffValidator{})
}

func (u *Uploader) IsValid() bool {
	return u.adapter.IsValid()
}

func (u *Uploader) Messages() []string {
	return u.adapter.Messages()
}

// Receive validates and stores all files. A failed validation returns a
// *ValidationError holding every message.
func (u *Uploader) Receive() error {
	return u.adapter.Receive()
}

// UploadedFile holds the stored name(s) of one form field.
type UploadedFile struct {
	Field    string
	Names    []string
	Multiple bool
}

// Name returns the first stored name.
func (f UploadedFile) Name() string {
	if len(f.Names) == 0 {
		return ""
	}
	return f.Names[0]
}

// MarshalJSON encodes single uploads as a string and multi-file fields as
// an array.
func (f UploadedFile) MarshalJSON() ([]byte, error) {
	if f.Multiple {
		if f.Names == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.Names)
	}
	return json.Marshal(f.Name())
}

// Uploaded returns the stored name(s) of field. withPath selects full paths
// instead of base names. Fields that were not received are not found.
func (u *Uploader) Uploaded(field string, withPath bool) (UploadedFile, bool) {
	files := u.adapter.Files()
	entry, ok := files[field]
	if !ok {
		return UploadedFile{}, false
	}

	if !entry.IsGroup() {
		if !entry.Received {
			return UploadedFile{}, false
		}
		return UploadedFile{Field: field, Names: []string{storedName(entry, withPath)}}, true
	}

	result := UploadedFile{Field: field, Multiple: true}
	for _, member := range entry.Multifiles {
		m, ok := files[member]
		if !ok || !m.Received {
			continue
		}
		result.Names = append(result.Names, storedName(m, withPath))
	}
	if len(result.Names) == 0 {
		return UploadedFile{}, false
	}
	return result, true
}

// AllUploaded maps every received field to its stored name(s). Members of a
// multi-file group only appear under the group's field. Before Receive the
// map is empty.
func (u *Uploader) AllUploaded(withPath bool) map[string]UploadedFile {
	files := u.adapter.Files()

	members := make(map[string]bool)
	for _, entry := range files {
		for _, m := range entry.Multifiles {
			members[m] = true
		}
	}

	result := make(map[string]UploadedFile)
	for field := range files {
		if members[field] {
			continue
		}
		if uploaded, ok := u.Uploaded(field, withPath); ok {
			result[field] = uploaded
		}
	}
	return result
}

func storedName(entry *FileEntry, withPath bool) string {
	if withPath {
		return entry.Path
	}
	return entry.Filename
}
