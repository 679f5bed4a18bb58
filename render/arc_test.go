package render

import (
	"math"
	"testing"

	. "github.com/VasiliyTurchenko/gerber2canvas/gerberbasetypes"
)

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeArcSingleQuadrantClockwise(t *testing.T) {
	arc, ok, err := ComputeArc(1, 0, 0, 1, 1, 0, IPModeCwC, QuadModeSingle)
	if err != nil || !ok {
		t.Fatal("arc not computed:", ok, err)
	}
	if !closeEnough(arc.CX, 0) || !closeEnough(arc.CY, 0) {
		t.Error("bad center:", arc.CX, arc.CY)
	}
	if !closeEnough(arc.Radius, 1) {
		t.Error("bad radius:", arc.Radius)
	}
	if arc.Extent >= 0 || arc.Extent <= -360 {
		t.Error("bad extent:", arc.Extent)
	}
}

func TestComputeArcSingleQuadrantPicksShortArc(t *testing.T) {
	// quarter circle around (0,1) from (0,0) to (1,1), counterclockwise
	arc, ok, err := ComputeArc(0, 0, 1, 1, 0, 1, IPModeCCwC, QuadModeSingle)
	if err != nil || !ok {
		t.Fatal("arc not computed:", ok, err)
	}
	if !closeEnough(arc.CX, 0) || !closeEnough(arc.CY, 1) {
		t.Error("bad center:", arc.CX, arc.CY)
	}
	if !closeEnough(arc.StartAngle, -90) || !closeEnough(arc.Extent, 90) {
		t.Error("bad angles:", arc.StartAngle, arc.Extent)
	}
}

func TestComputeArcMultiQuadrant(t *testing.T) {
	var tests = []struct {
		px, py, x, y, i, j float64
		ipm                IPmode
		cx, cy, extent     float64
	}{
		{1, 0, 1, 0, -1, 0, IPModeCCwC, 0, 0, 360},
		{1, 0, 1, 0, -1, 0, IPModeCwC, 0, 0, -360},
		{1, 0, -1, 0, -1, 0, IPModeCCwC, 0, 0, 180},
		{0, 1, 1, 0, 0, -1, IPModeCwC, 0, 0, -90},
	}
	for _, tt := range tests {
		arc, ok, err := ComputeArc(tt.px, tt.py, tt.x, tt.y, tt.i, tt.j, tt.ipm, QuadModeMulti)
		if err != nil || !ok {
			t.Fatal("arc not computed:", ok, err)
		}
		if !closeEnough(arc.CX, tt.cx) || !closeEnough(arc.CY, tt.cy) || !closeEnough(arc.Extent, tt.extent) {
			t.Errorf("%+v: got center (%v, %v) extent %v", tt, arc.CX, arc.CY, arc.Extent)
		}
	}
}

func TestComputeArcErrors(t *testing.T) {
	if _, _, err := ComputeArc(0, 0, 1, 1, -1, 0, IPModeCwC, QuadModeSingle); !IsFormatError(err) {
		t.Error("negative offsets accepted in single quadrant mode:", err)
	}
	_, ok, err := ComputeArc(0, 0, 1, 1, 0, 0, IPModeCwC, QuadModeMulti)
	if ok || err != nil {
		t.Error("zero radius arc must be skipped silently:", ok, err)
	}
}
