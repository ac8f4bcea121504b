package scheme

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
	"github.com/1broseidon/cegui/internal/resource"
)

// ImageSeparator joins an imageset name and an image name
const ImageSeparator = "/"

type imagesetDoc struct {
	Name string `yaml:"name"`
	// Texture is an image file read from the resource group; Solid
	// generates a texture of Size filled with one AARRGGBB colour instead.
	Texture string     `yaml:"texture"`
	Group   string     `yaml:"group"`
	Solid   string     `yaml:"solid"`
	Size    *sizeDoc   `yaml:"size"`
	Images  []imageDoc `yaml:"images"`
}

type sizeDoc struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type rectDoc struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type vecDoc struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

type imageDoc struct {
	Name string `yaml:"name"`
	// Area defaults to the whole texture.
	Area   *rectDoc `yaml:"area"`
	Offset vecDoc   `yaml:"offset"`
}

// LoadImageset reads an imageset file, creates its texture and defines its
// images as "<imageset>/<image>". It returns the defined image names.
func (l *Loader) LoadImageset(file, group string) ([]string, error) {
	var doc imagesetDoc
	if err := l.readDoc("imageset", file, group, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		return nil, guierr.InvalidRequest("imageset %s has no name", file)
	}
	tex, err := l.imagesetTexture(doc, group)
	if err != nil {
		return nil, fmt.Errorf("imageset %q: %w", doc.Name, err)
	}

	images := l.rt.Images()
	names := make([]string, 0, len(doc.Images))
	for _, im := range doc.Images {
		if im.Name == "" {
			return names, guierr.InvalidRequest("imageset %q has an image without a name", doc.Name)
		}
		area := geom.RectAt(geom.Vec2{}, tex.Size())
		if im.Area != nil {
			area = geom.RectAt(geom.V2(im.Area.X, im.Area.Y), geom.Sz(im.Area.Width, im.Area.Height))
		}
		name := doc.Name + ImageSeparator + im.Name
		if err := images.Define(render.NewImage(name, tex, area, geom.V2(im.Offset.X, im.Offset.Y))); err != nil {
			return names, fmt.Errorf("imageset %q: %w", doc.Name, err)
		}
		names = append(names, name)
	}
	l.log.Debug("imageset loaded", "name", doc.Name, "file", file, "images", len(names))
	return names, nil
}

func (l *Loader) imagesetTexture(doc imagesetDoc, group string) (render.Texture, error) {
	r := l.rt.Renderer()
	switch {
	case doc.Texture != "" && doc.Solid != "":
		return nil, guierr.InvalidRequest("texture and solid are exclusive")
	case doc.Texture != "":
		if doc.Group != "" {
			group = doc.Group
		}
		return resource.LoadTexture(r, l.provider, l.codec, doc.Name, doc.Texture, group)
	case doc.Solid != "":
		c, err := geom.ParseColour(doc.Solid)
		if err != nil {
			return nil, err
		}
		if doc.Size == nil || doc.Size.Width < 1 || doc.Size.Height < 1 {
			return nil, guierr.InvalidRequest("a solid imageset needs a size of at least 1x1")
		}
		return r.CreateTextureFromImage(doc.Name, solidImage(c, int(doc.Size.Width), int(doc.Size.Height)), render.PixelFormatRGBA)
	}
	return nil, guierr.InvalidRequest("imageset needs a texture file or a solid colour")
}

func solidImage(c geom.Colour, w, h int) *image.RGBA {
	p := c.Packed()
	fill := color.NRGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	return img
}
