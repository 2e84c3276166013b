package upload

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ManuelReschke/foxcms/internal/pkg/token"
)

// DefaultRename is used when Options.Rename is unset.
const DefaultRename Pattern = "%random%"

// Renamer produces the stored filename for an uploaded file.
type Renamer interface {
	Rename(original string) (string, error)
}

// Pattern is a filename template. Placeholders are expanded on every call;
// a pattern without placeholders is a literal base name. The extension of
// the original file is kept.
//
//	%term%       original name without extension
//	%random%     process-unique token
//	%date:l%     YYYYMMDDHHMMSS
//	%date:m%     YYYYMMDD
//	%date:s%     YYYYMM
//	%time%       Unix seconds
//	%microtime%  Unix microseconds
type Pattern string

// RenameFunc lets callers compute the stored name themselves.
// The returned name is used as is.
type RenameFunc func(original string) (string, error)

func (f RenameFunc) Rename(original string) (string, error) {
	return f(original)
}

var placeholderRe = regexp.MustCompile(`%(term|random|date:[lms]|time|microtime)%`)

// now and uniqueToken are swapped in tests.
var (
	now         = time.Now
	uniqueToken = token.Unique
)

func (p Pattern) Rename(original string) (string, error) {
	return p.expand(original, now())
}

// Validate rejects patterns that can never expand to a plain filename, such
// as ones containing a path separator.
func (p Pattern) Validate() error {
	if err := checkFilename(placeholderRe.ReplaceAllString(string(p), "x")); err != nil {
		return fmt.Errorf("invalid rename pattern %q: %w", string(p), err)
	}
	return nil
}

// HasPlaceholders reports whether the pattern expands anything.
func (p Pattern) HasPlaceholders() bool {
	return placeholderRe.MatchString(string(p))
}

func (p Pattern) expand(original string, at time.Time) (string, error) {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	term := strings.TrimSuffix(base, ext)

	var tokenErr error
	name := placeholderRe.ReplaceAllStringFunc(string(p), func(ph string) string {
		switch ph {
		case "%term%":
			return term
		case "%random%":
			tok, err := uniqueToken()
			if err != nil {
				tokenErr = err
			}
			return tok
		case "%date:l%":
			return at.Format("20060102150405")
		case "%date:m%":
			return at.Format("20060102")
		case "%date:s%":
			return at.Format("200601")
		case "%time%":
			return strconv.FormatInt(at.Unix(), 10)
		case "%microtime%":
			return strconv.FormatInt(at.UnixMicro(), 10)
		}
		return ph
	})
	if tokenErr != nil {
		return "", fmt.Errorf("generating random token: %w", tokenErr)
	}

	if ext != "" && !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return name, nil
}

// renameFilter adapts a Renamer to the adapter's filter chain.
type renameFilter struct {
	renamer Renamer
}

const renameFilterName = "Rename"

func (f renameFilter) Name() string { return renameFilterName }

func (f renameFilter) Filter(name string) (string, error) {
	renamed, err := f.renamer.Rename(name)
	if err != nil {
		return "", &RenameError{Original: name, Err: err}
	}
	if err := checkFilename(renamed); err != nil {
		return "", &RenameError{Original: name, Err: err}
	}
	return renamed, nil
}

func checkFilename(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.New("empty filename")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("filename %q contains a path separator", name)
	}
	return nil
}
