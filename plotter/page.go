package plotter

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	_ "github.com/gogpu/gg/recording/backends/raster"
	"github.com/golang/glog"
)

type pageState struct {
	fill   gg.RGBA
	stroke gg.RGBA
	width  float64
	cap    LineCap
}

/*
	Page records drawing commands with gogpu/gg and replays them into
	an output backend. Drawing coordinates are mapped with
		device = ((x * scale + offsetX) * res, height - (y * scale + offsetY) * res)
	where res is pixels per point.
*/
type Page struct {
	widthPt  float64
	heightPt float64
	res      float64
	paper    gg.RGBA

	scale   float64
	offsetX float64
	offsetY float64

	rec   *recording.Recorder
	pages []*recording.Recording
	st    pageState
	stack []pageState
	stats Stats
}

// NewPage creates a page of widthPt x heightPt points rendered at dpi.
func NewPage(widthPt, heightPt, dpi float64, paper gg.RGBA) *Page {
	p := &Page{
		widthPt:  widthPt,
		heightPt: heightPt,
		res:      dpi / 72.0,
		paper:    paper,
		scale:    1.0,
		st:       pageState{fill: gg.Black, stroke: gg.Black, width: 1.0, cap: LineCapRound},
	}
	p.startPage()
	return p
}

func (p *Page) pixelSize() (int, int) {
	return int(math.Ceil(p.widthPt * p.res)), int(math.Ceil(p.heightPt * p.res))
}

func (p *Page) startPage() {
	w, h := p.pixelSize()
	p.rec = recording.NewRecorder(w, h)
	p.rec.SetFillRGBA(p.paper.R, p.paper.G, p.paper.B, p.paper.A)
	p.rec.FillRectangle(0, 0, float64(w), float64(h))
}

// SetTransform sets the user transform applied to all drawing coordinates.
// Offsets are in points.
func (p *Page) SetTransform(scale, offsetX, offsetY float64) {
	p.scale = scale
	p.offsetX = offsetX
	p.offsetY = offsetY
}

func (p *Page) Transform() (float64, float64, float64) {
	return p.scale, p.offsetX, p.offsetY
}

func (p *Page) device(x, y float64) (float64, float64) {
	_, h := p.pixelSize()
	return (x*p.scale + p.offsetX) * p.res, float64(h) - (y*p.scale+p.offsetY)*p.res
}

func (p *Page) length(l float64) float64 {
	return l * p.scale * p.res
}

func (p *Page) SetFillColor(c gg.RGBA)   { p.st.fill = c }
func (p *Page) SetStrokeColor(c gg.RGBA) { p.st.stroke = c }
func (p *Page) SetLineWidth(w float64)   { p.st.width = w }
func (p *Page) SetLineCap(lc LineCap)    { p.st.cap = lc }
func (p *Page) LineWidth() float64       { return p.st.width }
func (p *Page) LineCap() LineCap         { return p.st.cap }

func (p *Page) SaveState() {
	p.stack = append(p.stack, p.st)
}

func (p *Page) RestoreState() {
	if len(p.stack) == 0 {
		glog.Warningln("plotter: RestoreState without SaveState")
		return
	}
	p.st = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func recordingCap(lc LineCap) recording.LineCap {
	switch lc {
	case LineCapRound:
		return recording.LineCapRound
	case LineCapSquare:
		return recording.LineCapSquare
	default:
	}
	return recording.LineCapButt
}

func (p *Page) fill() {
	c := p.st.fill
	p.rec.SetFillRGBA(c.R, c.G, c.B, c.A)
	p.rec.Fill()
	p.stats.Fills++
}

func (p *Page) stroke() {
	c := p.st.stroke
	p.rec.SetStrokeRGBA(c.R, c.G, c.B, c.A)
	p.rec.SetLineWidth(p.length(p.st.width))
	p.rec.SetLineCap(recordingCap(p.st.cap))
	p.rec.Stroke()
	p.stats.Strokes++
}

func (p *Page) moveTo(x, y float64) {
	p.rec.MoveTo(p.device(x, y))
}

func (p *Page) lineTo(x, y float64) {
	p.rec.LineTo(p.device(x, y))
}

func (p *Page) trace(path *Path) {
	for _, e := range path.Elements() {
		switch e.Op {
		case OpMoveTo:
			p.moveTo(e.X, e.Y)
		case OpLineTo:
			p.lineTo(e.X, e.Y)
		case OpArc:
			segs := ArcSegments(e.X, e.Y, e.R, e.Start, e.Extent)
			if len(segs) == 0 {
				continue
			}
			p.lineTo(segs[0].X0, segs[0].Y0)
			for _, s := range segs {
				x1, y1 := p.device(s.X1, s.Y1)
				x2, y2 := p.device(s.X2, s.Y2)
				x3, y3 := p.device(s.X3, s.Y3)
				p.rec.CubicTo(x1, y1, x2, y2, x3, y3)
			}
		case OpClose:
			p.rec.ClosePath()
		}
	}
}

func (p *Page) FillPath(path *Path) {
	if path.Empty() {
		return
	}
	p.trace(path)
	p.fill()
}

func (p *Page) StrokePath(path *Path) {
	if path.Empty() {
		return
	}
	p.trace(path)
	p.stroke()
}

func (p *Page) circle(x, y, r float64) {
	dx, dy := p.device(x, y)
	p.rec.DrawCircle(dx, dy, p.length(r))
}

func (p *Page) FillCircle(x, y, r float64) {
	p.circle(x, y, r)
	p.fill()
}

func (p *Page) StrokeCircle(x, y, r float64) {
	p.circle(x, y, r)
	p.stroke()
}

func (p *Page) Line(x1, y1, x2, y2 float64) {
	p.moveTo(x1, y1)
	p.lineTo(x2, y2)
	p.stroke()
}

func (p *Page) Rect(x, y, w, h float64) {
	p.moveTo(x, y)
	p.lineTo(x+w, y)
	p.lineTo(x+w, y+h)
	p.lineTo(x, y+h)
	p.rec.ClosePath()
	p.fill()
}

func (p *Page) RoundRect(x, y, w, h, r float64) {
	// the top left corner in device space
	dx, dy := p.device(x, y+h)
	p.rec.DrawRoundedRectangle(dx, dy, p.length(w), p.length(h), p.length(r))
	p.fill()
}

func (p *Page) ShowPage() {
	p.pages = append(p.pages, p.rec.FinishRecording())
	p.stats.Pages++
	p.startPage()
}

func (p *Page) Stats() Stats {
	return p.stats
}

// Finish closes the current page and returns all recorded pages.
func (p *Page) Finish() []*recording.Recording {
	p.ShowPage()
	return p.pages
}

// PageFileName returns the file name of page n (0-based) out of total.
func PageFileName(fileName string, n, total int) string {
	if total <= 1 {
		return fileName
	}
	ext := filepath.Ext(fileName)
	return strings.TrimSuffix(fileName, ext) + fmt.Sprintf("-%d", n+1) + ext
}

// Save finishes the page and plays every recorded page back into a new
// instance of the named backend, writing one file per page.
func (p *Page) Save(fileName, backendName string) ([]string, error) {
	pages := p.Finish()
	names := make([]string, 0, len(pages))
	for i, rec := range pages {
		backend, err := recording.NewBackend(backendName)
		if err != nil {
			return names, err
		}
		if err := rec.Playback(backend); err != nil {
			return names, err
		}
		fb, ok := backend.(recording.FileBackend)
		if !ok {
			return names, errors.New("backend " + backendName + " can not write files")
		}
		name := PageFileName(fileName, i, len(pages))
		if err := fb.SaveToFile(name); err != nil {
			return names, err
		}
		glog.Infoln("page", i+1, "saved to", name)
		names = append(names, name)
	}
	return names, nil
}
