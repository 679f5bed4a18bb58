package regions

import (
	"testing"

	"github.com/VasiliyTurchenko/gerber2canvas/plotter"
)

func TestRegion_IsRegionOpened(t *testing.T) {
	regPtr := NewRegion(100, 0, 0)
	a, err := regPtr.IsRegionOpened()
	if err != nil {
		t.Fatal("unexpected error")
	}
	if a == false {
		t.Fatal("region must be opened")
	}
	if err = regPtr.Close(120); err != nil {
		t.Fatal("unexpected error")
	}
	a, err = regPtr.IsRegionOpened()
	if err != nil {
		t.Fatal("unexpected error")
	}
	if a == true {
		t.Fatal("region is not opened")
	}
	t.Log("all OK")

	regPtr = nil
	a, err = regPtr.IsRegionOpened()
	if err == nil {
		t.Fatal("must be an error")
	}
	if a == true {
		t.Fatal("region is not opened")
	}
	if regPtr.Close(1) == nil {
		t.Fatal("must be an error")
	}
	t.Log("all OK")
}

func TestRegion_Contour(t *testing.T) {
	reg := NewRegion(1, 0, 0)
	reg.LineTo(10, 0)
	reg.ArcTo(10, 5, 5, -90, 180)
	reg.LineTo(0, 10)
	_ = reg.Close(5)
	if reg.GetNumXY() != 4 {
		t.Fatal("bad number of vertices")
	}
	elems := reg.Contour().Elements()
	if elems[0].Op != plotter.OpMoveTo || elems[len(elems)-1].Op != plotter.OpClose {
		t.Fatal("contour must start with moveto and end closed")
	}
	t.Log(reg.String())
}
