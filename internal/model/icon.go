package model

import "image"

// Icon is an application icon as tightly packed 8-bit RGBA.
type Icon struct {
	Width  int
	Height int
	RGBA   []byte
}

// Image wraps the pixel buffer in an *image.RGBA without copying.
func (i *Icon) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    i.RGBA,
		Stride: i.Width * 4,
		Rect:   image.Rect(0, 0, i.Width, i.Height),
	}
}

// Clone returns a deep copy of the icon.
func (i *Icon) Clone() *Icon {
	if i == nil {
		return nil
	}
	c := *i
	c.RGBA = append([]byte(nil), i.RGBA...)
	return &c
}
