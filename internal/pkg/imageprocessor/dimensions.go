package imageprocessor

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/gofiber/fiber/v2/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// ErrNotImage is returned when no registered decoder recognises the data.
var ErrNotImage = errors.New("not a decodable image")

// Dimensions is the displayed size of an image.
type Dimensions struct {
	Width       int
	Height      int
	Format      string
	Orientation int
}

// DecodeDimensions reads only the image header. When the data carries an
// EXIF orientation that rotates by 90 degrees, width and height are swapped.
func DecodeDimensions(r io.ReadSeeker) (Dimensions, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Dimensions{}, ErrNotImage
		}
		return Dimensions{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	dim := Dimensions{Width: cfg.Width, Height: cfg.Height, Format: format, Orientation: 1}

	if format == "jpeg" || format == "tiff" {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return dim, fmt.Errorf("error rewinding image: %w", err)
		}
		dim.Orientation = readOrientation(r)
		dim.Width, dim.Height = orientedSize(dim.Width, dim.Height, dim.Orientation)
	}

	return dim, nil
}

// DimensionsOfFile opens path and reads its dimensions.
func DimensionsOfFile(path string) (Dimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dimensions{}, fmt.Errorf("error opening image file: %w", err)
	}
	defer f.Close()

	return DecodeDimensions(f)
}

func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		// Most images carry no EXIF block
		log.Debugf("[ImageProcessor] No EXIF data: %v", err)
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return v
}

// orientedSize swaps width and height for the transposing orientations 5-8.
func orientedSize(width, height, orientation int) (int, int) {
	if orientation >= 5 && orientation <= 8 {
		return height, width
	}
	return width, height
}
