package upload

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Optional distinguishes "not provided" from a provided zero value.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Options configures a new Uploader. Unset fields fall back to the defaults:
// the %random% pattern, the resolver's module directory and the Http adapter.
// Rename set to Some[Renamer](nil) disables renaming.
type Options struct {
	Rename           Optional[Renamer]
	Destination      Optional[string]
	Adapter          Optional[string]
	Extension        Optional[[]string]
	ExcludeExtension Optional[[]string]
	Size             Optional[SizeRange]
	ImageSize        Optional[ImageSizeRange]
}

// SizeRange bounds the file size in bytes. Zero means unbounded.
// ByteString renders sizes in messages as "1.5 MB" instead of raw numbers.
type SizeRange struct {
	Min        int64 `validate:"gte=0"`
	Max        int64 `validate:"omitempty,gtefield=Min"`
	ByteString bool
}

// MaxSize is the single-maximum form of SizeRange.
func MaxSize(n int64) SizeRange {
	return SizeRange{Max: n, ByteString: true}
}

func (r SizeRange) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

// ImageSizeRange bounds image dimensions in pixels. Zero means unbounded.
type ImageSizeRange struct {
	MinWidth  int `validate:"gte=0"`
	MinHeight int `validate:"gte=0"`
	MaxWidth  int `validate:"omitempty,gtefield=MinWidth"`
	MaxHeight int `validate:"omitempty,gtefield=MinHeight"`
}

func (r ImageSizeRange) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

var byteUnits = []string{"B", "kB", "MB", "GB", "TB", "PB"}

// ParseByteSize accepts plain byte counts and 1024-based units such as
// "512kB", "2MB" or "1.5 GB".
func ParseByteSize(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, fmt.Errorf("empty size")
	}

	i := len(raw)
	for i > 0 && (raw[i-1] < '0' || raw[i-1] > '9') && raw[i-1] != '.' {
		i--
	}
	number := strings.TrimSpace(raw[:i])
	unit := strings.ToUpper(strings.TrimSpace(raw[i:]))

	f, err := strconv.ParseFloat(number, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if unit == "" {
		return int64(f), nil
	}

	unit = strings.TrimSuffix(unit, "B")
	if unit == "" {
		return int64(f), nil
	}
	for exp, u := range byteUnits[1:] {
		if strings.HasPrefix(strings.ToUpper(u), unit) && len(unit) == 1 {
			mult := int64(1) << (10 * (exp + 1))
			return int64(f * float64(mult)), nil
		}
	}
	return 0, fmt.Errorf("invalid size unit in %q", s)
}

// FormatBytes renders n with 1024-based units, e.g. "1.5 MB".
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	f := float64(n)
	unit := 0
	for f >= 1024 && unit < len(byteUnits)-1 {
		f /= 1024
		unit++
	}
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", f), "0"), ".0") + " " + byteUnits[unit]
}

// SplitExtensions flattens comma separated lists and normalises each entry
// to lower case without a leading dot.
func SplitExtensions(values ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
			if ext == "" || seen[ext] {
				continue
			}
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}
