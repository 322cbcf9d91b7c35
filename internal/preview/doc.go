// Package preview renders raster images as terminal text.
//
// Images are decoded with the standard image package plus the BMP and WebP
// decoders from golang.org/x/image, scaled with Catmull-Rom resampling, and
// drawn with the upper half block "▀": the foreground carries the top pixel
// and the background the bottom pixel, so one cell shows two square-ish
// pixels. Colors go through lipgloss, which downsamples to whatever the
// terminal supports.
package preview
