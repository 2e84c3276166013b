package upload

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SniffValidator rejects scriptable content (HTML, XML, SVG) whatever the
// extension claims. SVG is blocked until a sanitizer exists.
type SniffValidator struct{}

func (SniffValidator) Validate(file *FileEntry) []string {
	src, err := file.Open()
	if err != nil {
		return []string{fmt.Sprintf("File '%s' is not readable", file.Original)}
	}
	defer src.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	if err := sniffHead(head[:n]); err != "" {
		return []string{fmt.Sprintf("File '%s': %s", file.Original, err)}
	}
	return nil
}

func sniffHead(head []byte) string {
	detected := http.DetectContentType(head)

	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "HTML content is not allowed"
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		return "SVG/XML content is not allowed"
	}
	return ""
}
