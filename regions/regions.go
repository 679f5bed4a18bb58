package regions

import (
	"errors"
	"strconv"

	"github.com/VasiliyTurchenko/gerber2canvas/plotter"
)

/*####################  regions ##################################
 */
// Region is the contour being built between G36 and G37.
type Region struct {
	startX, startY  float64
	contour         *plotter.Path
	numberOfXY      int // number of entries
	G36StringNumber int // number of the string with G36 cmd
	G37StringNumber int // number of the string with G37 cmd
}

func (region *Region) String() string {
	if region == nil {
		return "<nil>"
	}
	return "Region:\n" +
		"\t\tstart point: (" + strconv.FormatFloat(region.startX, 'f', 5, 64) + "," +
		strconv.FormatFloat(region.startY, 'f', 5, 64) + ")\n" +
		"\t\tcontains " + strconv.Itoa(region.numberOfXY) + " vertices\n" +
		"\t\tG36 command is at line " + strconv.Itoa(region.G36StringNumber) + "\n" +
		"\t\tG37 command is at line " + strconv.Itoa(region.G37StringNumber)
}

// creates and initialises a region object starting at x, y
func NewRegion(strNum int, x, y float64) *Region {
	retVal := new(Region)
	retVal.G36StringNumber = strNum
	retVal.G37StringNumber = -1
	retVal.startX, retVal.startY = x, y
	retVal.contour = plotter.NewPath()
	retVal.contour.MoveTo(x, y)
	retVal.numberOfXY = 1
	return retVal
}

// adds a linear segment
func (region *Region) LineTo(x, y float64) {
	region.contour.LineTo(x, y)
	region.numberOfXY++
}

// adds a circular segment
func (region *Region) ArcTo(cx, cy, r, startDeg, extentDeg float64) {
	region.contour.ArcTo(cx, cy, r, startDeg, extentDeg)
	region.numberOfXY++
}

// closes the region
func (region *Region) Close(strnum int) error {
	if region == nil {
		return errors.New("can not close the contour referenced by null pointer")
	}
	region.G37StringNumber = strnum
	region.contour.Close()
	return nil
}

// returns the number of coordinate entries of the contour
func (region *Region) GetNumXY() int {
	return region.numberOfXY
}

// returns the contour path
func (region *Region) Contour() *plotter.Path {
	return region.contour
}

// returns true if region is opened
func (region *Region) IsRegionOpened() (bool, error) {
	if region == nil {
		return false, errors.New("bad region referenced (by nil ptr)")
	}
	if region.G37StringNumber == -1 {
		return true, nil
	} else {
		return false, nil
	}
}
