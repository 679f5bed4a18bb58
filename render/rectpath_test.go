package render

import (
	"testing"
)

func TestRectangularPath(t *testing.T) {
	var tests = []struct {
		x1, y1, x2, y2, dx, dy float64
		points                 int
		minX, minY, maxX, maxY float64
	}{
		{0, 0, 10, 0, 2, 1, 4, -2, -1, 12, 1},
		{10, 0, 0, 0, 2, 1, 4, -2, -1, 12, 1},
		{0, 0, 10, 5, 2, 1, 6, -2, -1, 12, 6},
		{0, 5, 10, 0, 2, 1, 6, -2, -1, 12, 6},
		{10, 5, 0, 0, 2, 1, 6, -2, -1, 12, 6},
	}
	for _, tt := range tests {
		c := RectangularPath(tt.x1, tt.y1, tt.x2, tt.y2, tt.dx, tt.dy)
		if len(c) != tt.points {
			t.Errorf("%+v: %d points", tt, len(c))
		}
		bb := c.BoundingBox()
		if bb.Min.X != tt.minX || bb.Min.Y != tt.minY || bb.Max.X != tt.maxX || bb.Max.Y != tt.maxY {
			t.Errorf("%+v: bounding box %v", tt, bb)
		}
		p := contourPath(c)
		if p.Len() != tt.points+1 {
			t.Errorf("%+v: path of %d elements", tt, p.Len())
		}
	}
}
