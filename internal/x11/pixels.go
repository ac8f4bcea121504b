package x11

import (
	"image"

	"golang.org/x/image/draw"
)

// putImageHeader is the size of a PutImage request before its data
const putImageHeader = 24

// scaleFrame resizes src to dst's bounds with nearest-neighbour sampling,
// reallocating dst when the size changed
func scaleFrame(dst *image.RGBA, src *image.RGBA, w, h int) *image.RGBA {
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst
}

// toBGRX converts RGBA rows into the 32 bits per pixel little-endian
// layout of a TrueColor ZPixmap. The alpha byte is left opaque.
func toBGRX(buf []byte, img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	n := w * h * 4
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		out := buf[y*w*4 : (y+1)*w*4]
		for x := 0; x < len(row); x += 4 {
			out[x] = row[x+2]
			out[x+1] = row[x+1]
			out[x+2] = row[x]
			out[x+3] = 0xff
		}
	}
	return buf
}

// stripRows returns how many rows of width pixels fit one request of
// maxRequest 4-byte units
func stripRows(width, maxRequest int) int {
	if width <= 0 {
		return 0
	}
	rows := (maxRequest*4 - putImageHeader) / (width * 4)
	return max(rows, 1)
}
