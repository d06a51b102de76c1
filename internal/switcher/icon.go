package switcher

import (
	"encoding/binary"
	"fmt"

	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/platform"
	"github.com/x448/float16"
)

// DefaultIconSize is the edge length, in points, icons are rasterized at.
const DefaultIconSize = 16

// NormalizeIcon converts a rasterized icon to tightly packed RGBA8.
// 24-bit sources gain an opaque alpha channel, 32-bit sources are copied
// unchanged and 64-bit sources are read as half-float channels.
func NormalizeIcon(bm *platform.Bitmap) (*model.Icon, error) {
	if bm == nil || bm.Width <= 0 || bm.Height <= 0 {
		return nil, fmt.Errorf("empty icon bitmap")
	}

	bpp := bm.BitsPerPixel / 8
	switch bm.BitsPerPixel {
	case 24, 32, 64:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, bm.BitsPerPixel)
	}

	stride := bm.RowStride()
	if stride < bm.Width*bpp {
		return nil, fmt.Errorf("icon row stride %d too small for width %d at %d bpp", stride, bm.Width, bm.BitsPerPixel)
	}
	if need := stride*(bm.Height-1) + bm.Width*bpp; len(bm.Data) < need {
		return nil, fmt.Errorf("icon data too short: have %d bytes, need %d", len(bm.Data), need)
	}

	out := make([]byte, 0, bm.Width*bm.Height*4)
	for y := 0; y < bm.Height; y++ {
		row := bm.Data[y*stride : y*stride+bm.Width*bpp]
		switch bm.BitsPerPixel {
		case 24:
			for x := 0; x < len(row); x += 3 {
				out = append(out, row[x], row[x+1], row[x+2], 0xff)
			}
		case 32:
			out = append(out, row...)
		case 64:
			for x := 0; x < len(row); x += 2 {
				out = append(out, halfToByte(binary.LittleEndian.Uint16(row[x:])))
			}
		}
	}

	return &model.Icon{Width: bm.Width, Height: bm.Height, RGBA: out}, nil
}

func halfToByte(bits uint16) byte {
	v := float16.Frombits(bits).Float32()
	switch {
	case v != v, v <= 0: // NaN clamps to zero
		return 0
	case v >= 1:
		return 0xff
	}
	return byte(v * 255)
}
