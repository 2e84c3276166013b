package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// maxCollisionSuffix bounds the _N suffixes tried for an occupied name.
const maxCollisionSuffix = 10000

type validatorEntry struct {
	name           string
	breakOnFailure bool
	validator      Validator
}

// HTTPAdapter transfers the files of a parsed multipart form.
type HTTPAdapter struct {
	destination string
	files       map[string]*FileEntry
	order       []string
	filters     []Filter
	validators  []validatorEntry
	messages    []string
}

// NewHTTPAdapter builds the file list of form. A nil form yields no files.
// The members of a multi-file field are keyed field_0, field_1, ...; a real
// field already using one of those keys is rejected with ErrFieldCollision.
func NewHTTPAdapter(form *multipart.Form) (*HTTPAdapter, error) {
	a := &HTTPAdapter{files: make(map[string]*FileEntry)}
	if form == nil {
		return a, nil
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		headers := form.File[field]
		if len(headers) < 2 {
			continue
		}
		for i := range headers {
			member := fmt.Sprintf("%s_%d", field, i)
			if len(form.File[member]) > 0 {
				return nil, fmt.Errorf("%w: %q", ErrFieldCollision, member)
			}
		}
	}

	for _, field := range fields {
		headers := form.File[field]
		switch len(headers) {
		case 0:
			continue
		case 1:
			a.add(newEntry(field, headers[0]))
		default:
			group := &FileEntry{Field: field}
			for i, h := range headers {
				member := newEntry(fmt.Sprintf("%s_%d", field, i), h)
				group.Multifiles = append(group.Multifiles, member.Field)
				group.Size += member.Size
				a.add(member)
			}
			a.add(group)
		}
	}
	return a, nil
}

func newEntry(field string, h *multipart.FileHeader) *FileEntry {
	return &FileEntry{
		Field:    field,
		Original: filepath.Base(h.Filename),
		Size:     h.Size,
		header:   h,
	}
}

func (a *HTTPAdapter) add(e *FileEntry) {
	if _, exists := a.files[e.Field]; !exists {
		a.order = append(a.order, e.Field)
	}
	a.files[e.Field] = e
}

func (a *HTTPAdapter) SetDestination(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	a.destination = dir
	return nil
}

func (a *HTTPAdapter) Destination() string {
	return a.destination
}

// AddFilter replaces any filter with the same name.
func (a *HTTPAdapter) AddFilter(f Filter) {
	a.RemoveFilter(f.Name())
	a.filters = append(a.filters, f)
}

func (a *HTTPAdapter) RemoveFilter(name string) {
	kept := a.filters[:0]
	for _, f := range a.filters {
		if f.Name() != name {
			kept = append(kept, f)
		}
	}
	a.filters = kept
}

// AddValidator replaces any validator with the same name. When
// breakOnFailure is set a failure stops the remaining validators for that file.
func (a *HTTPAdapter) AddValidator(name string, breakOnFailure bool, v Validator) {
	a.RemoveValidator(name)
	a.validators = append(a.validators, validatorEntry{name: name, breakOnFailure: breakOnFailure, validator: v})
}

func (a *HTTPAdapter) RemoveValidator(name string) {
	kept := a.validators[:0]
	for _, v := range a.validators {
		if v.name != name {
			kept = append(kept, v)
		}
	}
	a.validators = kept
}

func (a *HTTPAdapter) Files() map[string]*FileEntry {
	return a.files
}

// IsValid runs every validator over every file and keeps all messages.
func (a *HTTPAdapter) IsValid() bool {
	a.messages = nil
	for _, field := range a.order {
		entry := a.files[field]
		if entry.IsGroup() {
			continue
		}
		for _, v := range a.validators {
			msgs := v.validator.Validate(entry)
			if len(msgs) == 0 {
				continue
			}
			a.messages = append(a.messages, msgs...)
			if v.breakOnFailure {
				break
			}
		}
	}
	return len(a.messages) == 0
}

func (a *HTTPAdapter) Messages() []string {
	return a.messages
}

// Receive validates, runs the filters for every file and only then writes
// them to the destination. When a write fails the files stored so far are
// removed again, so a failed Receive leaves nothing behind.
func (a *HTTPAdapter) Receive() error {
	if a.destination == "" {
		return ErrNoDestination
	}
	if !a.IsValid() {
		return &ValidationError{Messages: append([]string(nil), a.messages...)}
	}

	var pending []*FileEntry
	names := make(map[*FileEntry]string)
	for _, field := range a.order {
		entry := a.files[field]
		if entry.IsGroup() || entry.Received {
			continue
		}
		name, err := a.filterName(entry.Original)
		if err != nil {
			return err
		}
		pending = append(pending, entry)
		names[entry] = name
	}

	stored := make([]*FileEntry, 0, len(pending))
	for _, entry := range pending {
		if err := a.receiveFile(entry, names[entry]); err != nil {
			a.rollback(stored)
			return err
		}
		stored = append(stored, entry)
	}
	return nil
}

func (a *HTTPAdapter) filterName(name string) (string, error) {
	for _, f := range a.filters {
		filtered, err := f.Filter(name)
		if err != nil {
			return "", err
		}
		name = filtered
	}
	return name, nil
}

func (a *HTTPAdapter) receiveFile(entry *FileEntry, name string) error {
	target, err := a.reserve(name)
	if err != nil {
		return err
	}
	if err := a.copyInto(entry, target); err != nil {
		_ = os.Remove(target)
		return err
	}

	entry.Filename = filepath.Base(target)
	entry.Path = target
	entry.Received = true
	log.Infof("[Upload] Stored %s as %s (%d bytes)", entry.Original, entry.Path, entry.Size)
	return nil
}

func (a *HTTPAdapter) rollback(stored []*FileEntry) {
	for _, entry := range stored {
		if err := os.Remove(entry.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Errorf("[Upload] Could not remove %s after failed receive: %v", entry.Path, err)
		} else {
			log.Warnf("[Upload] Removed %s after failed receive", entry.Path)
		}
		entry.Filename = ""
		entry.Path = ""
		entry.Received = false
	}
}

// reserve claims name in the destination, appending _N before the
// extension while the name is taken. O_EXCL keeps concurrent requests apart.
func (a *HTTPAdapter) reserve(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < maxCollisionSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		target := filepath.Join(a.destination, candidate)
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_ = f.Close()
			return target, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("reserving %s: %w", target, err)
		}
	}
	return "", fmt.Errorf("no free filename for %q in %s", name, a.destination)
}

// copyInto writes to a temporary file first so a partially written upload
// never appears under its final name.
func (a *HTTPAdapter) copyInto(entry *FileEntry, target string) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	tmp := filepath.Join(a.destination, "."+uuid.New().String()+".part")
	dst, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("moving upload into place: %w", err)
	}
	return nil
}
