package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// DefaultFlagWidth is the preview width in terminal columns.
const DefaultFlagWidth = 32

// RenderFlag draws img as half-block art: every cell shows two vertically
// stacked pixels, the upper as foreground and the lower as background.
// The aspect ratio is kept; the result is width columns wide.
func RenderFlag(img image.Image, width int) string {
	if img == nil {
		return ""
	}
	src := img.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return ""
	}
	if width <= 0 {
		width = DefaultFlagWidth
	}

	height := width * src.Dy() / src.Dx()
	if height < 2 {
		height = 2
	}
	if height%2 != 0 {
		height++
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	rows := make([]string, 0, height/2)
	var sb strings.Builder
	for y := 0; y < height; y += 2 {
		sb.Reset()
		for x := 0; x < width; x++ {
			cell := lipgloss.NewStyle().
				Foreground(hexColor(dst, x, y)).
				Background(hexColor(dst, x, y+1))
			sb.WriteString(cell.Render("▀"))
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

func hexColor(img *image.RGBA, x, y int) lipgloss.Color {
	c := img.RGBAAt(x, y)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
