// Package encode writes the finished sheet in one of several raster
// formats. BMP is the native target (24-bit true color, or 8-bit
// paletted when the sheet was quantized); WebP, TGA and PNG are
// alternates for tooling that prefers them.
package encode

import (
	"bytes"
	"image"
	"image/png"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "bmp", "webp").
	Format() string

	// Extension returns the file extension without dot.
	Extension() string

	// Encode converts the image to bytes.
	Encode(img image.Image) ([]byte, error)
}

// BMPEncoder writes Windows BMP: 8-bit paletted for *image.Paletted
// input, uncompressed 24-bit otherwise.
type BMPEncoder struct{}

func (e *BMPEncoder) Format() string    { return "bmp" }
func (e *BMPEncoder) Extension() string { return "bmp" }

func (e *BMPEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WebPEncoder writes lossless WebP.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }

func (e *WebPEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TGAEncoder writes Truevision TGA.
type TGAEncoder struct{}

func (e *TGAEncoder) Format() string    { return "tga" }
func (e *TGAEncoder) Extension() string { return "tga" }

func (e *TGAEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := tga.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PNGEncoder writes PNG with best compression.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Registry holds the known encoders by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry registers all built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{
		&BMPEncoder{},
		&WebPEncoder{},
		&TGAEncoder{},
		&PNGEncoder{},
	} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(format)]
}

// Available returns the known format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"bmp", "webp", "tga", "png"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}
