// Package cover normalizes uploaded game box art.
package cover

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// Box art is fitted into a portrait box of this size.
const (
	MaxWidth  = 600
	MaxHeight = 800
)

// Quality is the JPEG quality of stored covers.
const Quality = 82

// MaxUpload bounds the size of an accepted upload.
const MaxUpload = 4 << 20

var (
	// ErrUnsupported is returned for uploads that are not JPEG, PNG or GIF.
	ErrUnsupported = errors.New("unsupported image format")
	// ErrTooLarge is returned for uploads over MaxUpload bytes.
	ErrTooLarge = errors.New("image too large")
)

var decoders = map[string]func(io.Reader) (image.Image, error){
	"image/jpeg": jpeg.Decode,
	"image/png":  png.Decode,
	"image/gif":  gif.Decode,
}

// Image is a normalized cover ready for storage.
type Image struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Normalize sniffs the upload, shrinks it to fit MaxWidth x MaxHeight and
// re-encodes it as JPEG. Smaller images keep their size.
func Normalize(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("reading cover: %w", err)
	}
	if len(data) > MaxUpload {
		return nil, fmt.Errorf("cover larger than %d bytes: %w", MaxUpload, ErrTooLarge)
	}

	mime := http.DetectContentType(data)
	decode, ok := decoders[mime]
	if !ok {
		return nil, fmt.Errorf("%s: %w", mime, ErrUnsupported)
	}

	src, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s cover: %w", mime, ErrUnsupported)
	}

	dst := fit(src, MaxWidth, MaxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encoding cover: %w", err)
	}

	b := dst.Bounds()
	return &Image{Data: buf.Bytes(), MIME: "image/jpeg", Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales src down, keeping its aspect ratio, so that it fits in a
// maxW x maxH box. GIF palettes and transparency are flattened onto white.
func fit(src image.Image, maxW, maxH int) image.Image {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()

	if w > maxW || h > maxH {
		// Scale by the tighter of the two ratios, using integer math.
		if w*maxH > h*maxW {
			w, h = maxW, max(1, h*maxW/w)
		} else {
			w, h = max(1, w*maxH/h), maxH
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w == sb.Dx() && h == sb.Dy() {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}
