package upload

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_Expand(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 123456000, time.UTC)
	orig := uniqueToken
	uniqueToken = func() (string, error) { return "R", nil }
	t.Cleanup(func() { uniqueToken = orig })

	tests := []struct {
		pattern  Pattern
		original string
		want     string
	}{
		{"%term%", "My Photo.JPG", "My Photo.JPG"},
		{"%date:l%-%term%", "a.png", "20240305140709-a.png"},
		{"%date:m%", "a.png", "20240305.png"},
		{"%date:s%_%random%", "a.png", "202403_R.png"},
		{"%time%", "a", "1709647629"},
		{"%microtime%", "a.gif", "1709647629123456.gif"},
		{"%random%-%random%", "a.png", "R-R.png"},
		{"avatar", "upload.png", "avatar.png"},
		{"avatar.png", "upload.png", "avatar.png"},
		{"%unknown%", "x.png", "%unknown%.png"},
	}
	for _, tc := range tests {
		t.Run(string(tc.pattern), func(t *testing.T) {
			got, err := tc.pattern.expand(tc.original, at)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPattern_ExpandsPerCall(t *testing.T) {
	calls := 0
	orig := uniqueToken
	uniqueToken = func() (string, error) {
		calls++
		return string(rune('a' + calls)), nil
	}
	t.Cleanup(func() { uniqueToken = orig })

	p := Pattern("%random%")
	first, _ := p.Rename("x.png")
	second, _ := p.Rename("x.png")
	assert.NotEqual(t, first, second)
}

func TestPattern_TokenFailure(t *testing.T) {
	orig := uniqueToken
	uniqueToken = func() (string, error) { return "", errors.New("no entropy") }
	t.Cleanup(func() { uniqueToken = orig })

	_, err := Pattern("%random%").Rename("x.png")
	assert.Error(t, err)
}

func TestPattern_HasPlaceholders(t *testing.T) {
	assert.True(t, Pattern("img_%date:s%").HasPlaceholders())
	assert.False(t, Pattern("plain").HasPlaceholders())
}

func TestRenameFilter_RejectsUnusableNames(t *testing.T) {
	for _, bad := range []string{"", ".", "..", "a/b.png", `a\b.png`} {
		f := renameFilter{renamer: RenameFunc(func(string) (string, error) { return bad, nil })}
		_, err := f.Filter("x.png")
		var renameErr *RenameError
		assert.ErrorAs(t, err, &renameErr, "name %q", bad)
	}
}
