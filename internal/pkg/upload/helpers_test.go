package upload

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

type testFile struct {
	field   string
	name    string
	content []byte
}

// buildForm encodes files as multipart and parses them back, the same way
// fiber hands a request's form to the controllers.
func buildForm(t *testing.T, files ...testFile) *multipart.Form {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

type failingFS struct {
	OSFilesystem
	err error
}

func (f failingFS) MkdirAll(string) error { return f.err }

func (f failingFS) IsDir(string) bool { return false }
