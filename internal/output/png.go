package output

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/mj1618/switcheroo/internal/model"
)

// EncodeIconPNG writes icon to w as PNG. When size is positive and differs
// from the icon's dimensions the image is rescaled to size×size first.
// It returns the dimensions actually written.
func EncodeIconPNG(w io.Writer, icon *model.Icon, size int) (width, height int, err error) {
	if icon == nil || icon.Width <= 0 || icon.Height <= 0 {
		return 0, 0, fmt.Errorf("icon is empty")
	}
	if len(icon.RGBA) != icon.Width*icon.Height*4 {
		return 0, 0, fmt.Errorf("icon buffer is %d bytes, want %d", len(icon.RGBA), icon.Width*icon.Height*4)
	}

	var img image.Image = icon.Image()
	if size > 0 && (size != icon.Width || size != icon.Height) {
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	if err := png.Encode(w, img); err != nil {
		return 0, 0, fmt.Errorf("png encode: %w", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}
