// Apertures support
package render

import (
	"math"
	"regexp"
	"strconv"

	"github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/VasiliyTurchenko/gerber2canvas/amprocessor"
	. "github.com/VasiliyTurchenko/gerber2canvas/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2canvas/plotter"
)

var adRegexp = regexp.MustCompile(`^ADD(\d+)([^,*]+)(?:,(.*))?\*$`)

/*
	Aperture is a tool bound to a D-code. Dimensions are kept in file units
	and scaled when used.
*/
type Aperture interface {
	Type() GerberApType
	Code() int
	// draws the aperture at the current point
	Flash(st *State) error
	// line width for draws, ok is false if the aperture can not draw
	PathWidth() (float64, bool)
	LineCap() plotter.LineCap
	// half sizes of an aperture drawing by sweeping a rectangle
	Rectangular() (dx, dy float64, ok bool)
	String() string
}

type hole struct {
	kind HoleType
	x, y float64 // diameter is x
}

func newHole(params []float64) hole {
	switch len(params) {
	case 1:
		return hole{kind: HoleRound, x: params[0]}
	case 2:
		return hole{kind: HoleRect, x: params[0], y: params[1]}
	}
	return hole{kind: HoleNone}
}

// paints the hole with the background color
func (h hole) draw(st *State) {
	if h.kind == HoleNone {
		return
	}
	c := st.canvas
	c.SetFillColor(st.curBg)
	switch h.kind {
	case HoleRound:
		c.FillCircle(st.x, st.y, 0.5*h.x*st.unit)
	case HoleRect:
		w, ht := h.x*st.unit, h.y*st.unit
		c.Rect(st.x-0.5*w, st.y-0.5*ht, w, ht)
	}
	c.SetFillColor(st.curFg)
}

func (h hole) String() string {
	switch h.kind {
	case HoleRound:
		return ", " + h.kind.String() + " " + fmtF(h.x)
	case HoleRect:
		return ", " + h.kind.String() + " " + fmtF(h.x) + "x" + fmtF(h.y)
	}
	return ""
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}

type apertureBase struct {
	code int
	typ  GerberApType
}

func (a *apertureBase) Type() GerberApType { return a.typ }
func (a *apertureBase) Code() int          { return a.code }
func (a *apertureBase) PathWidth() (float64, bool) {
	return 0, false
}
func (a *apertureBase) LineCap() plotter.LineCap { return plotter.LineCapRound }
func (a *apertureBase) Rectangular() (float64, float64, bool) {
	return 0, 0, false
}
func (a *apertureBase) header() string {
	return "D" + strconv.Itoa(a.code) + ": " + a.typ.String()
}

// %ADDnnC,diameter[Xhole[Xhole]]*%
type circleAperture struct {
	apertureBase
	diameter float64
	hole     hole
}

func (a *circleAperture) Flash(st *State) error {
	r := 0.5 * a.diameter * st.unit
	st.ext.UpdateCircle(st.x, st.y, r, 0)
	st.canvas.FillCircle(st.x, st.y, r)
	a.hole.draw(st)
	return nil
}

func (a *circleAperture) PathWidth() (float64, bool) {
	return a.diameter, true
}

func (a *circleAperture) String() string {
	return a.header() + ", diameter " + fmtF(a.diameter) + a.hole.String()
}

// %ADDnnR,xXy[Xhole[Xhole]]*%
type rectAperture struct {
	apertureBase
	xSize, ySize float64
	hole         hole
}

func (a *rectAperture) Flash(st *State) error {
	w, h := a.xSize*st.unit, a.ySize*st.unit
	x, y := st.x-0.5*w, st.y-0.5*h
	st.ext.UpdateRect(x, y, x+w, y+h)
	st.canvas.Rect(x, y, w, h)
	a.hole.draw(st)
	return nil
}

func (a *rectAperture) LineCap() plotter.LineCap { return plotter.LineCapSquare }

func (a *rectAperture) Rectangular() (float64, float64, bool) {
	return 0.5 * a.xSize, 0.5 * a.ySize, true
}

func (a *rectAperture) String() string {
	return a.header() + ", " + fmtF(a.xSize) + "x" + fmtF(a.ySize) + a.hole.String()
}

// %ADDnnO,xXy[Xhole[Xhole]]*%
type ovalAperture struct {
	apertureBase
	xSize, ySize float64
	hole         hole
}

func (a *ovalAperture) Flash(st *State) error {
	w, h := a.xSize*st.unit, a.ySize*st.unit
	x, y := st.x-0.5*w, st.y-0.5*h
	st.ext.UpdateRect(x, y, x+w, y+h)
	st.canvas.RoundRect(x, y, w, h, 0.5*math.Min(w, h))
	a.hole.draw(st)
	return nil
}

func (a *ovalAperture) String() string {
	return a.header() + ", " + fmtF(a.xSize) + "x" + fmtF(a.ySize) + a.hole.String()
}

// %ADDnnP,diameterXvertices[Xrotation[Xhole[Xhole]]]*%
type polyAperture struct {
	apertureBase
	diameter float64
	vertices int
	rotation float64 // degrees
	hole     hole
}

func (a *polyAperture) Flash(st *State) error {
	r := 0.5 * a.diameter * st.unit
	step := 2.0 * math.Pi / float64(a.vertices)
	rot := mgl64.DegToRad(a.rotation)
	contour := make(polyclip.Contour, 0, a.vertices)
	for k := 0; k < a.vertices; k++ {
		angle := float64(k)*step + rot
		contour = append(contour, polyclip.Point{X: st.x + r*math.Cos(angle), Y: st.y + r*math.Sin(angle)})
	}
	st.ext.UpdateContour(contour)
	st.canvas.FillPath(contourPath(contour))
	a.hole.draw(st)
	return nil
}

func (a *polyAperture) String() string {
	return a.header() + ", diameter " + fmtF(a.diameter) + ", " + strconv.Itoa(a.vertices) +
		" vertices, rotation " + fmtF(a.rotation) + a.hole.String()
}

// instance of an aperture macro, the primitives are evaluated when defined
type macroAperture struct {
	apertureBase
	macro      *amprocessor.ApertureMacro
	modifiers  []float64
	primitives []amprocessor.Primitive
}

func (a *macroAperture) Flash(st *State) error {
	for _, p := range a.primitives {
		if err := st.drawPrimitive(p); err != nil {
			return err
		}
	}
	return nil
}

func (a *macroAperture) String() string {
	retVal := a.header() + " " + a.macro.Name + "\n" +
		amprocessor.ArrayInfo(a.modifiers, nil)
	for _, p := range a.primitives {
		retVal += p.String()
	}
	return retVal
}

// newAperture creates the aperture of an AD block.
func (st *State) newAperture(code int, shape string, params []float64) (Aperture, error) {
	switch shape {
	case "C":
		if len(params) < 1 || len(params) > 3 {
			return nil, newError("Malformed circle aperture definition")
		}
		return &circleAperture{apertureBase: apertureBase{code, AptypeCircle},
			diameter: params[0], hole: newHole(params[1:])}, nil
	case "R":
		if len(params) < 2 {
			return nil, newError("No Y dimension in rectangle aperture definition")
		}
		if len(params) > 4 {
			return nil, newError("Malformed rectangle aperture definition")
		}
		return &rectAperture{apertureBase: apertureBase{code, AptypeRectangle},
			xSize: params[0], ySize: params[1], hole: newHole(params[2:])}, nil
	case "O":
		if len(params) < 2 {
			return nil, newError("No Y dimension in oval aperture definition")
		}
		if len(params) > 4 {
			return nil, newError("Malformed oval aperture definition")
		}
		return &ovalAperture{apertureBase: apertureBase{code, AptypeObround},
			xSize: params[0], ySize: params[1], hole: newHole(params[2:])}, nil
	case "P":
		if len(params) < 2 {
			return nil, newError("Malformed aperture definition for regular polygon")
		}
		if len(params) > 5 {
			return nil, newError("Malformed polygon aperture definition")
		}
		a := &polyAperture{apertureBase: apertureBase{code, AptypePoly},
			diameter: params[0], vertices: int(params[1])}
		if a.vertices < 3 || a.vertices > st.cfg.MaxPolygonVertices {
			return nil, newError("Bad number of polygon vertices: %d", a.vertices)
		}
		if len(params) > 2 {
			a.rotation = params[2]
		}
		if len(params) > 3 {
			a.hole = newHole(params[3:])
		}
		return a, nil
	}
	macro, ok := st.macros[shape]
	if !ok {
		return nil, newError("Undefined aperture macro: %s", shape)
	}
	prims, err := macro.Instantiate(params)
	if err != nil {
		return nil, newError("%v", err)
	}
	return &macroAperture{apertureBase: apertureBase{code, AptypeMacro},
		macro: macro, modifiers: params, primitives: prims}, nil
}
