package plotter

import "github.com/gogpu/gg"

// Discard is a Canvas that only keeps the drawing state. It is used when
// a file is processed just to measure its extents.
type Discard struct {
	st    pageState
	stack []pageState
	stats Stats
}

func NewDiscard() *Discard {
	return &Discard{st: pageState{width: 1.0, cap: LineCapRound}}
}

func (d *Discard) SetFillColor(c gg.RGBA)   { d.st.fill = c }
func (d *Discard) SetStrokeColor(c gg.RGBA) { d.st.stroke = c }
func (d *Discard) SetLineWidth(w float64)   { d.st.width = w }
func (d *Discard) SetLineCap(lc LineCap)    { d.st.cap = lc }
func (d *Discard) LineWidth() float64       { return d.st.width }
func (d *Discard) LineCap() LineCap         { return d.st.cap }

func (d *Discard) SaveState() {
	d.stack = append(d.stack, d.st)
}

func (d *Discard) RestoreState() {
	if len(d.stack) == 0 {
		return
	}
	d.st = d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
}

func (d *Discard) FillPath(p *Path) {
	if !p.Empty() {
		d.stats.Fills++
	}
}

func (d *Discard) StrokePath(p *Path) {
	if !p.Empty() {
		d.stats.Strokes++
	}
}

func (d *Discard) FillCircle(x, y, r float64)      { d.stats.Fills++ }
func (d *Discard) StrokeCircle(x, y, r float64)    { d.stats.Strokes++ }
func (d *Discard) Line(x1, y1, x2, y2 float64)     { d.stats.Strokes++ }
func (d *Discard) Rect(x, y, w, h float64)         { d.stats.Fills++ }
func (d *Discard) RoundRect(x, y, w, h, r float64) { d.stats.Fills++ }
func (d *Discard) ShowPage()                       { d.stats.Pages++ }

func (d *Discard) Stats() Stats {
	return d.stats
}
