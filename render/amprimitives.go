package render

import (
	"math"

	"github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/glog"

	"github.com/VasiliyTurchenko/gerber2canvas/amprocessor"
	"github.com/VasiliyTurchenko/gerber2canvas/plotter"
)

// rotates (x, y) around the macro origin, deg counterclockwise
func rotate(x, y, deg float64) (float64, float64) {
	if deg == 0 {
		return x, y
	}
	v := mgl64.Rotate2D(mgl64.DegToRad(deg)).Mul2x1(mgl64.Vec2{x, y})
	return v[0], v[1]
}

/*
	drawPrimitive draws one primitive of a macro aperture around the current
	point. Parameters are in file units, rotations in degrees.
*/
func (st *State) drawPrimitive(p amprocessor.Primitive) error {
	u := st.unit
	c := st.canvas
	c.SaveState()
	defer c.RestoreState()

	switch p.Type {
	case amprocessor.AMPrimitive_Circle:
		st.setExposure(p.Params[0] != 0)
		cx, cy := rotate(p.Params[2]*u, p.Params[3]*u, p.Param(4, 0))
		r := 0.5 * p.Params[1] * u
		st.ext.UpdateCircle(st.x+cx, st.y+cy, r, 0)
		c.FillCircle(st.x+cx, st.y+cy, r)

	case amprocessor.AMPrimitive_VectLine:
		st.setExposure(p.Params[0] != 0)
		rot := p.Param(6, 0)
		x1, y1 := rotate(p.Params[2]*u, p.Params[3]*u, rot)
		x2, y2 := rotate(p.Params[4]*u, p.Params[5]*u, rot)
		st.line(x1, y1, x2, y2, p.Params[1]*u, plotter.LineCapButt)

	case amprocessor.AMPrimitive_CenterLine:
		st.setExposure(p.Params[0] != 0)
		w, h := p.Params[1]*u, p.Params[2]*u
		cx, cy := p.Params[3]*u, p.Params[4]*u
		rot := p.Param(5, 0)
		x1, y1 := rotate(cx-0.5*w, cy, rot)
		x2, y2 := rotate(cx+0.5*w, cy, rot)
		st.line(x1, y1, x2, y2, h, plotter.LineCapButt)

	case amprocessor.AMPrimitive_LowerLeftLine:
		st.setExposure(p.Params[0] != 0)
		w, h := p.Params[1]*u, p.Params[2]*u
		xa, ya := p.Params[3]*u, p.Params[4]*u+0.5*h
		rot := p.Param(5, 0)
		x1, y1 := rotate(xa, ya, rot)
		x2, y2 := rotate(xa+w, ya, rot)
		st.line(x1, y1, x2, y2, h, plotter.LineCapButt)

	case amprocessor.AMPRimitive_OutLine:
		st.setExposure(p.Params[0] != 0)
		n := int(p.Params[1])
		if n > st.cfg.MaxPolygonVertices {
			return newError("Outline primitive with %d vertices", n)
		}
		rot := p.Param(2+2*(n+1), 0)
		contour := make(polyclip.Contour, 0, n+1)
		for k := 0; k <= n; k++ {
			x, y := rotate(p.Params[2+2*k]*u, p.Params[3+2*k]*u, rot)
			contour = append(contour, polyclip.Point{X: st.x + x, Y: st.y + y})
		}
		st.fillContour(contour)

	case amprocessor.AMPrimitive_Polygon:
		st.setExposure(p.Params[0] != 0)
		n := int(p.Params[1])
		if n < 3 || n > st.cfg.MaxPolygonVertices {
			return newError("Polygon primitive with %d vertices", n)
		}
		cx, cy, r := p.Params[2]*u, p.Params[3]*u, 0.5*p.Params[4]*u
		rot := p.Param(5, 0)
		step := 2.0 * math.Pi / float64(n)
		contour := make(polyclip.Contour, 0, n)
		for k := 0; k < n; k++ {
			a := float64(k) * step
			x, y := rotate(cx+r*math.Cos(a), cy+r*math.Sin(a), rot)
			contour = append(contour, polyclip.Point{X: st.x + x, Y: st.y + y})
		}
		st.fillContour(contour)

	case amprocessor.AMPrimitive_Moire:
		rot := p.Param(8, 0)
		cx, cy := rotate(p.Params[0]*u, p.Params[1]*u, rot)
		od, t, gap := p.Params[2]*u, p.Params[3]*u, p.Params[4]*u
		chT, chL := p.Params[6]*u, p.Params[7]*u
		rings := int(p.Params[5])
		if rings > st.cfg.MaxMoireRings {
			rings = st.cfg.MaxMoireRings
		}
		c.SetLineWidth(t)
		for i := 0; i < rings; i++ {
			r := 0.5*od - 0.5*t - float64(i)*(gap+t)
			if r <= 0 {
				break
			}
			st.ext.UpdateCircle(st.x+cx, st.y+cy, r, t)
			c.StrokeCircle(st.x+cx, st.y+cy, r)
		}
		st.crosshair(p.Params[0]*u, p.Params[1]*u, chL, chT, rot, plotter.LineCapButt)

	case amprocessor.AMPrimitive_Thermal:
		rot := p.Param(5, 0)
		cx, cy := rotate(p.Params[0]*u, p.Params[1]*u, rot)
		od, id, gap := p.Params[2]*u, p.Params[3]*u, p.Params[4]*u
		r := 0.25 * (od + id)
		t := 0.5 * (od - id)
		c.SetLineWidth(t)
		st.ext.UpdateCircle(st.x+cx, st.y+cy, r, t)
		c.StrokeCircle(st.x+cx, st.y+cy, r)
		c.SetStrokeColor(st.curBg)
		st.crosshair(p.Params[0]*u, p.Params[1]*u, od, gap, rot, plotter.LineCapSquare)

	default:
		glog.V(1).Infoln("skipping unknown macro primitive", int(p.Type))
	}
	return nil
}

// strokes a segment given relative to the current point
func (st *State) line(x1, y1, x2, y2, width float64, lc plotter.LineCap) {
	c := st.canvas
	c.SetLineWidth(width)
	c.SetLineCap(lc)
	st.ext.UpdateLine(st.x+x1, st.y+y1, st.x+x2, st.y+y2, width)
	c.Line(st.x+x1, st.y+y1, st.x+x2, st.y+y2)
}

// two lines of the given length crossing at (cx, cy)
func (st *State) crosshair(cx, cy, length, width, rot float64, lc plotter.LineCap) {
	h := 0.5 * length
	x1, y1 := rotate(cx-h, cy, rot)
	x2, y2 := rotate(cx+h, cy, rot)
	st.line(x1, y1, x2, y2, width, lc)
	x1, y1 = rotate(cx, cy-h, rot)
	x2, y2 = rotate(cx, cy+h, rot)
	st.line(x1, y1, x2, y2, width, lc)
}

func (st *State) fillContour(contour polyclip.Contour) {
	st.ext.UpdateContour(contour)
	st.canvas.FillPath(contourPath(contour))
}
