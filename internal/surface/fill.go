package surface

import (
	"image"
	"image/color"
)

// FloodFill recolors the 4-connected region of img that has exactly the color
// of pixel (x, y). All four channels must match; there is no tolerance, so
// anti-aliased edges stay unfilled. The work list is an explicit stack.
//
// It reports whether any pixel changed: a seed outside img, or a region
// already of color c, is a no-op.
func FloodFill(img *image.NRGBA, x, y int, c color.NRGBA) bool {
	seed := image.Pt(x, y)
	if !seed.In(img.Rect) {
		return false
	}
	target := img.NRGBAAt(x, y)
	if target == c {
		return false
	}

	stack := []image.Point{seed}
	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !pt.In(img.Rect) {
			continue
		}
		i := img.PixOffset(pt.X, pt.Y)
		px := img.Pix[i : i+4 : i+4]
		if px[0] != target.R || px[1] != target.G || px[2] != target.B || px[3] != target.A {
			continue
		}
		px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
		stack = append(stack,
			image.Pt(pt.X+1, pt.Y),
			image.Pt(pt.X-1, pt.Y),
			image.Pt(pt.X, pt.Y+1),
			image.Pt(pt.X, pt.Y-1),
		)
	}
	return true
}
