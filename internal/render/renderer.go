package render

import (
	"image"

	"github.com/1broseidon/cegui/internal/geom"
)

// Renderer is the contract a renderer module implements. The core never
// talks to a graphics API directly.
type Renderer interface {
	Name() string
	DefaultTarget() RenderTarget

	CreateGeometryBuffer() GeometryBuffer
	DestroyGeometryBuffer(buf GeometryBuffer)

	CreateTextureTarget() (TextureTarget, error)
	DestroyTextureTarget(t TextureTarget)

	CreateTexture(name string, size geom.Size) (Texture, error)
	CreateTextureFromImage(name string, img image.Image, format PixelFormat) (Texture, error)
	Texture(name string) (Texture, error)
	DestroyTexture(name string)
	IsPixelFormatSupported(format PixelFormat) bool

	BeginRendering()
	EndRendering()

	SetDisplaySize(sz geom.Size)
	DisplaySize() geom.Size
	MaxTextureSize() int
}
