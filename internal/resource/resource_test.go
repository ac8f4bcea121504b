package resource

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
	"github.com/1broseidon/cegui/internal/render/raster"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 0xff, A: 0x80})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDirProviderGroups(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))

	p := NewDirProvider()
	p.SetGroupDirectory("schemes", dir)
	p.SetDefaultGroup("schemes")

	var raw RawDataContainer
	require.NoError(t, p.Load("a.txt", &raw, ""))
	assert.Equal(t, "hello", string(raw.Data))
	assert.Equal(t, 5, raw.Size())
	p.Unload(&raw)
	assert.Nil(t, raw.Data)

	err := p.Load("missing.txt", &raw, "schemes")
	assert.ErrorIs(t, err, guierr.ErrGeneric)

	err = p.Load("", &raw, "schemes")
	assert.ErrorIs(t, err, guierr.ErrInvalidRequest)
	assert.Equal(t, []string{"schemes"}, p.Groups())
}

func TestFSProviderAndChain(t *testing.T) {
	fsys := fstest.MapFS{
		"imagesets/demo.png": {Data: []byte("x")},
	}
	p := NewFSProvider(fsys)
	p.SetGroupDirectory("imagesets", "imagesets")

	var raw RawDataContainer
	require.NoError(t, p.Load("demo.png", &raw, "imagesets"))
	assert.Equal(t, "demo.png", raw.Name)

	chain := Chain{NewDirProvider(), p}
	require.NoError(t, chain.Load("demo.png", &raw, "imagesets"))

	err := chain.Load("nope.png", &raw, "imagesets")
	assert.ErrorIs(t, err, guierr.ErrGeneric)
}

func TestLoadTexture(t *testing.T) {
	fsys := fstest.MapFS{"demo.png": {Data: pngBytes(t, 4, 2)}}
	r := raster.New(raster.Options{DisplaySize: geom.Sz(10, 10)})

	tex, err := LoadTexture(r, NewFSProvider(fsys), ImageCodec{}, "Demo", "demo.png", "")
	require.NoError(t, err)
	assert.Equal(t, geom.Sz(4, 2), tex.Size())
	assert.Equal(t, render.PixelFormatRGBA, tex.Format())

	_, err = LoadTexture(r, NewFSProvider(fsys), ImageCodec{}, "Bad", "missing.png", "")
	assert.ErrorIs(t, err, guierr.ErrGeneric)
}

type dxtCodec struct{}

func (dxtCodec) Decode([]byte) (image.Image, render.PixelFormat, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), render.PixelFormatDXT5, nil
}

func TestLoadTextureUnsupportedFormat(t *testing.T) {
	fsys := fstest.MapFS{"demo.dds": {Data: []byte{0}}}
	r := raster.New(raster.Options{DisplaySize: geom.Sz(10, 10)})

	_, err := LoadTexture(r, NewFSProvider(fsys), dxtCodec{}, "Demo", "demo.dds", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, guierr.ErrRenderer)
	assert.Contains(t, err.Error(), "DXT5")
}

func TestCodecRejectsGarbage(t *testing.T) {
	_, _, err := ImageCodec{}.Decode([]byte("not an image"))
	assert.ErrorIs(t, err, guierr.ErrGeneric)
}
