package upload

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ManuelReschke/foxcms/internal/pkg/imageprocessor"
)

// Validator checks one received file. An empty result means valid.
type Validator interface {
	Validate(file *FileEntry) []string
}

// ExtensionValidator allows (or with Exclude, denies) a set of extensions.
type ExtensionValidator struct {
	Extensions []string
	Exclude    bool
}

func NewExtensionValidator(exclude bool, values ...string) *ExtensionValidator {
	return &ExtensionValidator{Extensions: SplitExtensions(values...), Exclude: exclude}
}

func (v *ExtensionValidator) Validate(file *FileEntry) []string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Original), "."))
	listed := false
	for _, e := range v.Extensions {
		if e == ext {
			listed = true
			break
		}
	}
	if listed == v.Exclude {
		return []string{fmt.Sprintf("File '%s' has a false extension", file.Original)}
	}
	return nil
}

// SizeValidator enforces a SizeRange.
type SizeValidator struct {
	Range SizeRange
}

func (v *SizeValidator) Validate(file *FileEntry) []string {
	if v.Range.Max > 0 && file.Size > v.Range.Max {
		return []string{fmt.Sprintf("Maximum allowed size for file '%s' is '%s' but '%s' detected",
			file.Original, v.format(v.Range.Max), v.format(file.Size))}
	}
	if v.Range.Min > 0 && file.Size < v.Range.Min {
		return []string{fmt.Sprintf("Minimum expected size for file '%s' is '%s' but '%s' detected",
			file.Original, v.format(v.Range.Min), v.format(file.Size))}
	}
	return nil
}

func (v *SizeValidator) format(n int64) string {
	if v.Range.ByteString {
		return FormatBytes(n)
	}
	return strconv.FormatInt(n, 10)
}

// imageExtensions are the formats DecodeDimensions can read.
var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"webp": true, "bmp": true, "tif": true, "tiff": true,
}

// ImageSizeValidator decodes the image header and enforces an ImageSizeRange.
// Files that are not images by extension or content are skipped; a file that
// claims to be an image but cannot be decoded fails.
type ImageSizeValidator struct {
	Range ImageSizeRange
}

func (v *ImageSizeValidator) Validate(file *FileEntry) []string {
	src, err := file.Open()
	if err != nil {
		return []string{fmt.Sprintf("File '%s' is not readable", file.Original)}
	}
	defer src.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	if !isImage(file.Original, head[:n]) {
		return nil
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return []string{fmt.Sprintf("File '%s' is not readable", file.Original)}
	}

	dim, err := imageprocessor.DecodeDimensions(src)
	if err != nil {
		return []string{fmt.Sprintf("The size of image '%s' could not be detected", file.Original)}
	}

	var msgs []string
	r := v.Range
	if r.MinWidth > 0 && dim.Width < r.MinWidth {
		msgs = append(msgs, fmt.Sprintf("Minimum expected width for image '%s' should be '%d' but '%d' detected", file.Original, r.MinWidth, dim.Width))
	}
	if r.MaxWidth > 0 && dim.Width > r.MaxWidth {
		msgs = append(msgs, fmt.Sprintf("Maximum allowed width for image '%s' should be '%d' but '%d' detected", file.Original, r.MaxWidth, dim.Width))
	}
	if r.MinHeight > 0 && dim.Height < r.MinHeight {
		msgs = append(msgs, fmt.Sprintf("Minimum expected height for image '%s' should be '%d' but '%d' detected", file.Original, r.MinHeight, dim.Height))
	}
	if r.MaxHeight > 0 && dim.Height > r.MaxHeight {
		msgs = append(msgs, fmt.Sprintf("Maximum allowed height for image '%s' should be '%d' but '%d' detected", file.Original, r.MaxHeight, dim.Height))
	}
	return msgs
}

func isImage(name string, head []byte) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return imageExtensions[ext] || strings.HasPrefix(http.DetectContentType(head), "image/")
}
