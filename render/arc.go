package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	. "github.com/VasiliyTurchenko/gerber2canvas/gerberbasetypes"
)

// Arc is a circular segment, angles in degrees, negative extent is clockwise.
type Arc struct {
	CX, CY     float64
	Radius     float64
	StartAngle float64
	Extent     float64
}

// sweep returns the start angle and the signed extent of the arc around
// (cx, cy) from (px, py) to (x, y). Coincident end points give a full circle.
func sweep(cx, cy, px, py, x, y float64, ipm IPmode) (float64, float64) {
	start := mgl64.RadToDeg(math.Atan2(py-cy, px-cx))
	end := mgl64.RadToDeg(math.Atan2(y-cy, x-cx))
	extent := end - start
	if ipm == IPModeCwC && extent >= 0 {
		extent -= 360
	} else if ipm == IPModeCCwC && extent <= 0 {
		extent += 360
	}
	return start, extent
}

var quadrantSigns = [4][2]float64{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// ComputeArc finds the arc from (px, py) to (x, y) with center offsets (i, j).
// ok is false for a zero radius arc, which draws nothing.
//
// In single quadrant mode i and j are unsigned; of the four candidate centers
// the one whose circle passes through the end point with a sweep of at most
// 90 degrees is taken.
func ComputeArc(px, py, x, y, i, j float64, ipm IPmode, qm QuadMode) (arc Arc, ok bool, err error) {
	arc.Radius = math.Hypot(i, j)
	if arc.Radius == 0 {
		return arc, false, nil
	}
	if qm != QuadModeSingle {
		arc.CX, arc.CY = px+i, py+j
		arc.StartAngle, arc.Extent = sweep(arc.CX, arc.CY, px, py, x, y, ipm)
		return arc, true, nil
	}
	if i < 0 || j < 0 {
		return arc, false, newError("Negative i or j values with Single Quadrant Interpolation")
	}
	best := math.Inf(1)
	for _, s := range quadrantSigns {
		cx, cy := px+s[0]*i, py+s[1]*j
		start, extent := sweep(cx, cy, px, py, x, y, ipm)
		cost := math.Abs(math.Hypot(x-cx, y-cy)-arc.Radius) / arc.Radius
		if math.Abs(extent) > 90+1e-6 {
			cost += 1
		}
		if cost < best {
			best = cost
			arc.CX, arc.CY = cx, cy
			arc.StartAngle, arc.Extent = start, extent
		}
	}
	return arc, true, nil
}
