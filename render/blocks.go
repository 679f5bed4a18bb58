package render

import (
	"regexp"
	"strconv"

	"github.com/golang/glog"

	. "github.com/VasiliyTurchenko/gerber2canvas/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2canvas/plotter"
	"github.com/VasiliyTurchenko/gerber2canvas/regions"
)

// N G X Y I J D M, each one optional
var blockRegexp = regexp.MustCompile(
	`^(?:N(\d+))?(?:G(\d+))?(?:X([+-]?\d*))?(?:Y([+-]?\d*))?(?:I([+-]?\d*))?(?:J([+-]?\d*))?(?:D(\d+))?(?:M(\d+))?\*$`)

const (
	fieldN = iota + 1
	fieldG
	fieldX
	fieldY
	fieldI
	fieldJ
	fieldD
	fieldM
)

// receives path segments, either a stroke path or a region contour
type segmentSink interface {
	LineTo(x, y float64)
	ArcTo(cx, cy, r, startDeg, extentDeg float64)
}

// HandleBlock interprets one data block, trailing '*' included.
func (st *State) HandleBlock(block string) error {
	loc := blockRegexp.FindStringSubmatchIndex(block)
	if loc == nil {
		return newError("Invalid Block: %s", block)
	}
	field := func(n int) (string, bool) {
		if loc[2*n] < 0 {
			return "", false
		}
		return block[loc[2*n]:loc[2*n+1]], true
	}

	gCode := -1
	if s, ok := field(fieldG); ok {
		gCode, _ = strconv.Atoi(s)
		if err := st.HandleGCode(gCode); err != nil {
			return err
		}
	}
	if s, ok := field(fieldX); ok {
		v, err := st.format.DecodeX(s, st.unit)
		if err != nil {
			return newError("Bad X coordinate in %s: %v", block, err)
		}
		if st.absolute {
			st.x = v
		} else {
			st.x += v
		}
	}
	if s, ok := field(fieldY); ok {
		v, err := st.format.DecodeY(s, st.unit)
		if err != nil {
			return newError("Bad Y coordinate in %s: %v", block, err)
		}
		if st.absolute {
			st.y = v
		} else {
			st.y += v
		}
	}
	st.i, st.j = 0, 0
	if s, ok := field(fieldI); ok {
		v, err := st.format.DecodeX(s, st.unit)
		if err != nil {
			return newError("Bad I offset in %s: %v", block, err)
		}
		st.i = v
	}
	if s, ok := field(fieldJ); ok {
		v, err := st.format.DecodeY(s, st.unit)
		if err != nil {
			return newError("Bad J offset in %s: %v", block, err)
		}
		st.j = v
	}
	if s, ok := field(fieldD); ok {
		d, _ := strconv.Atoi(s)
		if err := st.HandleDCode(d); err != nil {
			return err
		}
	}

	var err error
	mCode, hasM := field(fieldM)
	switch {
	case gCode == 36 || gCode == 74 || gCode == 75:
	case st.areaFill:
		err = st.executeAreaFill()
	case st.region != nil:
		st.fillRegion()
	case hasM:
		m, _ := strconv.Atoi(mCode)
		err = st.HandleMCode(m)
	default:
		err = st.executeBlock()
	}
	st.px, st.py = st.x, st.y
	return err
}

func (st *State) HandleGCode(code int) error {
	switch code {
	case 0, 4, 54, 55:
	case 1:
		st.ipMode = IPModeLinear
		st.interpolationScale = 1.0
	case 2:
		st.ipMode = IPModeCwC
	case 3:
		st.ipMode = IPModeCCwC
	case 10:
		st.ipMode = IPModeLinear
		st.interpolationScale = 10.0
	case 11:
		st.ipMode = IPModeLinear
		st.interpolationScale = 0.1
	case 12:
		st.ipMode = IPModeLinear
		st.interpolationScale = 0.01
	case 36:
		st.areaFill = true
		st.region = nil
	case 37:
		st.areaFill = false
	case 70:
		st.setUnits(UnitInch)
	case 71:
		st.setUnits(UnitMM)
	case 74:
		st.qMode = QuadModeSingle
	case 75:
		st.qMode = QuadModeMulti
	case 90:
		st.absolute = true
	case 91:
		st.absolute = false
	default:
		return newError("Invalid G-Code: G%02d", code)
	}
	return nil
}

func (st *State) HandleDCode(code int) error {
	if code >= MinApertureCode {
		ap, ok := st.LookupAperture(code)
		if !ok {
			return newError("Unknown Aperture: D%d", code)
		}
		st.tool = ap
		// a tool change draws nothing
		st.dnumber = OpcodeNone
		return nil
	}
	if code < 1 || code > 3 {
		return newError("Invalid D-Code: D%02d", code)
	}
	st.dnumber = ActType(code)
	return nil
}

// M00, M01 and M02 end the program
func (st *State) HandleMCode(code int) error {
	switch code {
	case 0, 1, 2:
		st.Flush()
		return nil
	}
	return newError("Invalid M-Code: M%02d", code)
}

func (st *State) executeBlock() error {
	c := st.canvas
	switch st.dnumber {
	case OpcodeD01_DRAW:
		if st.tool == nil {
			return newError("No aperture selected")
		}
		if dx, dy, ok := st.tool.Rectangular(); ok {
			st.strokePath()
			if st.ipMode == IPModeLinear {
				contour := RectangularPath(st.px, st.py, st.x, st.y, dx*st.unit, dy*st.unit)
				st.ext.UpdateContour(contour)
				c.FillPath(contourPath(contour))
			} else {
				glog.Warningf("%s:%d: arc drawn with a rectangular aperture ignored", st.fileName, st.line)
			}
			return nil
		}
		width, ok := st.tool.PathWidth()
		if !ok {
			return newError("Illegal aperture selected for path")
		}
		width *= st.unit
		lc := st.tool.LineCap()
		if c.LineWidth() != width || c.LineCap() != lc {
			st.strokePath()
			c.SetLineWidth(width)
			c.SetLineCap(lc)
		}
		if st.path == nil {
			st.path = newPathAt(st.px, st.py)
		}
		if st.ipMode == IPModeLinear {
			st.ext.UpdateLine(st.px, st.py, st.x, st.y, c.LineWidth())
			st.path.LineTo(st.x, st.y)
			return nil
		}
		return st.arcPath(st.path)
	case OpcodeD02_MOVE:
		st.strokePath()
	case OpcodeD03_FLASH:
		st.strokePath()
		if st.tool == nil {
			return newError("No aperture selected for flash")
		}
		if err := st.tool.Flash(st); err != nil {
			return err
		}
		st.dnumber = OpcodeNone
	}
	return nil
}

func (st *State) executeAreaFill() error {
	st.strokePath()
	switch st.dnumber {
	case OpcodeD01_DRAW:
		if st.region == nil {
			st.region = regions.NewRegion(st.line, st.px, st.py)
		}
		if st.x == st.px && st.y == st.py {
			return nil
		}
		if st.ipMode == IPModeLinear {
			st.ext.UpdateLine(st.px, st.py, st.x, st.y, st.canvas.LineWidth())
			st.region.LineTo(st.x, st.y)
			return nil
		}
		return st.arcPath(st.region)
	case OpcodeD02_MOVE:
		st.fillRegion()
		return nil
	}
	return newError("Illegal D-code within area fill")
}

// adds the arc from the previous to the current point
func (st *State) arcPath(sink segmentSink) error {
	arc, ok, err := ComputeArc(st.px, st.py, st.x, st.y, st.i, st.j, st.ipMode, st.qMode)
	if err != nil || !ok {
		return err
	}
	st.ext.UpdateCircle(arc.CX, arc.CY, arc.Radius, st.canvas.LineWidth())
	sink.ArcTo(arc.CX, arc.CY, arc.Radius, arc.StartAngle, arc.Extent)
	return nil
}

func newPathAt(x, y float64) *plotter.Path {
	p := plotter.NewPath()
	p.MoveTo(x, y)
	return p
}
