package resource

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
)

// Codec turns encoded image data into pixels
type Codec interface {
	Decode(data []byte) (image.Image, render.PixelFormat, error)
}

// ImageCodec decodes every format registered with the image package: PNG,
// JPEG and GIF from the standard library plus BMP, TIFF and WebP.
type ImageCodec struct{}

// Decode decodes data, reporting RGB for images without an alpha channel
func (ImageCodec) Decode(data []byte) (image.Image, render.PixelFormat, error) {
	img, kind, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, guierr.Generic(err, "decoding image")
	}
	return img, formatOf(img, kind), nil
}

func formatOf(img image.Image, kind string) render.PixelFormat {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return render.PixelFormatRGB
	}
	if kind == "jpeg" {
		return render.PixelFormatRGB
	}
	if m := img.ColorModel(); m == color.GrayModel || m == color.Gray16Model {
		return render.PixelFormatRGB
	}
	return render.PixelFormatRGBA
}

// LoadTexture reads file from group, decodes it and creates the named
// texture. A pixel format the renderer cannot hold is an ErrRenderer.
func LoadTexture(r render.Renderer, p Provider, c Codec, name, file, group string) (render.Texture, error) {
	var raw RawDataContainer
	if err := p.Load(file, &raw, group); err != nil {
		return nil, fmt.Errorf("loading texture %q: %w", name, err)
	}
	defer p.Unload(&raw)

	img, format, err := c.Decode(raw.Data)
	if err != nil {
		return nil, fmt.Errorf("loading texture %q from %s: %w", name, file, err)
	}
	if !r.IsPixelFormatSupported(format) {
		return nil, guierr.Renderer("texture %q from %s: renderer %q does not support pixel format %s", name, file, r.Name(), format)
	}
	tex, err := r.CreateTextureFromImage(name, img, format)
	if err != nil {
		return nil, fmt.Errorf("creating texture %q: %w", name, err)
	}
	return tex, nil
}
