// Package render defines the renderer-agnostic contracts the GUI core fills
// (geometry buffers, textures, render targets) and the math the core owns:
// view-projection setup, model transforms, point unprojection and quad
// clipping.
package render

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/cegui/internal/geom"
)

// PixelFormat names a texture data layout a codec may produce
type PixelFormat int

const (
	PixelFormatRGBA PixelFormat = iota
	PixelFormatRGB
	PixelFormatRGB565
	PixelFormatRGBA4444
	PixelFormatDXT1
	PixelFormatDXT3
	PixelFormatDXT5
	PixelFormatPVRTC2
	PixelFormatPVRTC4
)

// String returns the string representation of the format
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA:
		return "RGBA"
	case PixelFormatRGB:
		return "RGB"
	case PixelFormatRGB565:
		return "RGB565"
	case PixelFormatRGBA4444:
		return "RGBA4444"
	case PixelFormatDXT1:
		return "DXT1"
	case PixelFormatDXT3:
		return "DXT3"
	case PixelFormatDXT5:
		return "DXT5"
	case PixelFormatPVRTC2:
		return "PVRTC2"
	case PixelFormatPVRTC4:
		return "PVRTC4"
	default:
		return "unknown"
	}
}

// Texture is a renderer-owned image usable as a vertex batch source.
type Texture interface {
	Name() string
	// Size is the allocated texture size in pixels.
	Size() geom.Size
	// OriginalDataSize is the size of the data the texture was loaded from.
	OriginalDataSize() geom.Size
	// TexelScaling converts pixel coordinates to texture coordinates.
	TexelScaling() geom.Vec2
	Format() PixelFormat
	// LoadFromImage replaces the texture content. Formats the renderer cannot
	// hold fail with guierr.ErrRenderer.
	LoadFromImage(img image.Image, format PixelFormat) error
}

// BlendMode selects how a buffer composites onto its target
type BlendMode int

const (
	BlendNormal BlendMode = iota
	// BlendRTTPremultiplied is used for content already rendered to a texture
	// with premultiplied alpha.
	BlendRTTPremultiplied
)

// String returns the string representation of the blend mode
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendRTTPremultiplied:
		return "rtt-premultiplied"
	default:
		return "unknown"
	}
}

// Vertex is the layout every geometry buffer accepts: position, colour and
// texture coordinates.
type Vertex struct {
	Pos    mgl32.Vec3
	Colour geom.Colour
	UV     mgl32.Vec2
}
