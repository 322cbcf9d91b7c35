package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"strings"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

// MaxPixels bounds the decoded image area.
const MaxPixels = 40_000_000

// ErrTooLarge is returned for images whose area exceeds MaxPixels.
var ErrTooLarge = errors.New("image too large to preview")

const halfBlock = "▀"

// Decode parses PNG, JPEG, GIF, BMP or WebP data. The header is checked
// before the full decode so oversized images are rejected cheaply.
func Decode(data []byte) (image.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, fmt.Errorf("decode image header: empty %s image", format)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, format, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("decode %s image: %w", format, err)
	}
	return img, format, nil
}

// Fit scales src to fit inside cols x rows terminal cells. Each cell holds two
// vertically stacked pixels, so the pixel box is cols x 2*rows.
func Fit(src image.Image, cols, rows int) image.Image {
	b := src.Bounds()
	if cols <= 0 || rows <= 0 || b.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	sx := float64(cols) / float64(b.Dx())
	sy := float64(rows*2) / float64(b.Dy())
	scale := min(sx, sy)

	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Render draws img into at most cols x rows cells using upper half blocks.
// Transparent pixels are blended over bg.
func Render(img image.Image, cols, rows int, bg color.Color) string {
	scaled := Fit(img, cols, rows)
	b := scaled.Bounds()
	if b.Empty() {
		return ""
	}

	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			out.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(scaled.At(x, y), bg))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(scaled.At(x, y+1), bg))
			}
			out.WriteString(style.Render(halfBlock))
		}
	}
	return out.String()
}

// RenderBytes decodes data and renders it in one step.
func RenderBytes(data []byte, cols, rows int, bg color.Color) (string, error) {
	img, _, err := Decode(data)
	if err != nil {
		return "", err
	}
	return Render(img, cols, rows, bg), nil
}

// Size reports the cell dimensions Render will produce for img.
func Size(img image.Image, cols, rows int) (int, int) {
	b := Fit(img, cols, rows).Bounds()
	return b.Dx(), (b.Dy() + 1) / 2
}

func hexColor(c color.Color, bg color.Color) lipgloss.Color {
	r, g, b, a := c.RGBA()
	if a < 0xffff {
		br, bgG, bb, _ := bg.RGBA()
		r = blend(r, br, a)
		g = blend(g, bgG, a)
		b = blend(b, bb, a)
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// blend composites a premultiplied channel over an opaque background channel.
func blend(fg, bg, alpha uint32) uint32 {
	return fg + bg*(0xffff-alpha)/0xffff
}
