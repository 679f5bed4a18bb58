package render

import (
	"github.com/akavel/polyclip-go"

	"github.com/VasiliyTurchenko/gerber2canvas/plotter"
)

// RectangularPath returns the outline swept by a rectangle with half sizes
// dx, dy moving from (x1, y1) to (x2, y2).
func RectangularPath(x1, y1, x2, y2, dx, dy float64) polyclip.Contour {
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}
	switch {
	case y1 < y2: // rising
		return polyclip.Contour{
			{X: x1 - dx, Y: y1 - dy},
			{X: x1 - dx, Y: y1 + dy},
			{X: x2 - dx, Y: y2 + dy},
			{X: x2 + dx, Y: y2 + dy},
			{X: x2 + dx, Y: y2 - dy},
			{X: x1 + dx, Y: y1 - dy},
		}
	case y1 > y2: // falling
		return polyclip.Contour{
			{X: x1 - dx, Y: y1 + dy},
			{X: x1 + dx, Y: y1 + dy},
			{X: x2 + dx, Y: y2 + dy},
			{X: x2 + dx, Y: y2 - dy},
			{X: x2 - dx, Y: y2 - dy},
			{X: x1 - dx, Y: y1 - dy},
		}
	}
	return polyclip.Contour{
		{X: x1 - dx, Y: y1 - dy},
		{X: x1 - dx, Y: y1 + dy},
		{X: x2 + dx, Y: y2 + dy},
		{X: x2 + dx, Y: y2 - dy},
	}
}

// contourPath converts a polygon into a closed path.
func contourPath(c polyclip.Contour) *plotter.Path {
	p := plotter.NewPath()
	for i, pt := range c {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	p.Close()
	return p
}
