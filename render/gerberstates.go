/*
################################## State machine ######################################
*/
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/gogpu/gg"
	"github.com/golang/glog"

	"github.com/VasiliyTurchenko/gerber2canvas/amprocessor"
	"github.com/VasiliyTurchenko/gerber2canvas/extents"
	. "github.com/VasiliyTurchenko/gerber2canvas/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2canvas/gerberlexer"
	"github.com/VasiliyTurchenko/gerber2canvas/plotter"
	"github.com/VasiliyTurchenko/gerber2canvas/regions"
	"github.com/VasiliyTurchenko/gerber2canvas/xy"
)

// Config holds the interpreter settings which do not change between files.
type Config struct {
	Foreground gg.RGBA // dark polarity
	Background gg.RGBA // clear polarity

	MaxIncludeDepth    int
	MaxPolygonVertices int
	MaxMoireRings      int

	PrintApertures bool
}

func DefaultConfig() Config {
	return Config{
		Foreground:         gg.RGB(0.8, 0.8, 0.8),
		Background:         gg.White,
		MaxIncludeDepth:    16,
		MaxPolygonVertices: 10000,
		MaxMoireRings:      1000,
	}
}

/*
	State is the graphics state of the interpreter. One State serves one pass
	over one top level file (and the files it includes).
*/
type State struct {
	cfg    Config
	canvas plotter.Canvas
	ext    *extents.Extents

	units  Unit
	unit   float64 // points per file unit
	format *xy.FormatSpec

	absolute           bool
	x, y               float64
	px, py             float64
	i, j               float64
	ipMode             IPmode
	qMode              QuadMode
	dnumber            ActType
	interpolationScale float64
	areaFill           bool

	polarity     PolType
	curFg, curBg gg.RGBA

	tool         Aperture
	apertures    *treemap.Map // D-code -> Aperture
	macros       map[string]*amprocessor.ApertureMacro
	currentMacro *amprocessor.ApertureMacro

	path   *plotter.Path   // pending stroke
	region *regions.Region // pending area fill

	includes *linkedliststack.Stack
	fileName string // file being processed
	line     int    // line of the block being processed
}

// NewState creates a State drawing onto canvas and growing ext.
func NewState(canvas plotter.Canvas, ext *extents.Extents, cfg Config) *State {
	st := &State{cfg: cfg, canvas: canvas, ext: ext, includes: linkedliststack.New()}
	st.Initialize()
	return st
}

// Initialize resets everything but the canvas and the extents.
func (st *State) Initialize() {
	st.setUnits(UnitInch)
	st.format = xy.NewFormatSpec()
	st.absolute = st.format.Absolute
	st.x, st.y, st.px, st.py, st.i, st.j = 0, 0, 0, 0, 0, 0
	st.ipMode = IPModeLinear
	st.qMode = QuadModeSingle
	st.dnumber = OpcodeD02_MOVE
	st.interpolationScale = 1.0
	st.areaFill = false
	st.polarity = PolTypeDark
	st.curFg = st.cfg.Foreground
	st.curBg = st.cfg.Background
	st.tool = nil
	st.apertures = treemap.NewWithIntComparator()
	st.macros = make(map[string]*amprocessor.ApertureMacro)
	st.currentMacro = nil
	st.path = nil
	st.region = nil
	st.includes.Clear()

	st.canvas.SetLineCap(plotter.LineCapRound)
	st.canvas.SetStrokeColor(st.curFg)
	st.canvas.SetFillColor(st.curFg)
}

func (st *State) Extents() *extents.Extents {
	return st.ext
}

func (st *State) Canvas() plotter.Canvas {
	return st.canvas
}

func (st *State) setUnits(u Unit) {
	st.units = u
	if u == UnitMM {
		st.unit = xy.PointsPerMM
	} else {
		st.unit = xy.PointsPerInch
	}
}

// strokes the pending path
func (st *State) strokePath() {
	if st.path != nil {
		st.canvas.StrokePath(st.path)
		st.path = nil
	}
}

// closes and fills the pending region
func (st *State) fillRegion() {
	if opened, err := st.region.IsRegionOpened(); err == nil && opened {
		if err := st.region.Close(st.line); err != nil {
			glog.Warningln(err)
		}
		glog.V(3).Infoln(st.region.String())
		st.canvas.FillPath(st.region.Contour())
		st.region = nil
	}
}

// Flush draws everything pending.
func (st *State) Flush() {
	st.fillRegion()
	st.strokePath()
}

// ProcessFile interprets a top level file. Geometry drawn before an error
// stays on the canvas and in the extents.
func (st *State) ProcessFile(name string) error {
	err := st.processFile(name)
	st.Flush()
	if st.cfg.PrintApertures {
		st.PrintApertures()
	}
	return err
}

// Process interprets a top level file already read into memory.
func (st *State) Process(name string, src []byte) error {
	abs, _ := filepath.Abs(name)
	st.includes.Push(abs)
	err := st.process(name, src)
	st.includes.Pop()
	st.Flush()
	return err
}

func (st *State) processFile(name string) error {
	abs, err := filepath.Abs(name)
	if err != nil {
		abs = name
	}
	for _, v := range st.includes.Values() {
		if v.(string) == abs {
			return newError("Recursive include of %s", name)
		}
	}
	if st.includes.Size() >= st.cfg.MaxIncludeDepth {
		return newError("Include depth exceeds %d at %s", st.cfg.MaxIncludeDepth, name)
	}
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	st.includes.Push(abs)
	defer st.includes.Pop()
	return st.process(name, src)
}

func (st *State) process(name string, src []byte) error {
	saved := st.fileName
	st.fileName = name
	defer func() { st.fileName = saved }()

	glog.V(1).Infoln("processing file", name)
	lx := gerberlexer.NewLexer(name, src)
	for {
		tok, err := lx.Next()
		if err != nil {
			return st.positioned(lx, err)
		}
		if tok.Kind == gerberlexer.TokenEOF {
			return nil
		}
		st.line = tok.Line
		glog.V(2).Infof("%s:%d: %s", name, tok.Line, tok.Text)
		if err := st.handleToken(tok); err != nil {
			return st.positioned(lx, err)
		}
	}
}

func (st *State) positioned(lx *gerberlexer.Lexer, err error) error {
	var fe *FileError
	if errors.As(err, &fe) {
		return err
	}
	line, col := lx.Position()
	return &FileError{File: lx.Name(), Line: line, Col: col, Err: err}
}

func (st *State) handleToken(tok gerberlexer.Token) error {
	switch tok.Kind {
	case gerberlexer.TokenData:
		st.currentMacro = nil
		return st.HandleBlock(tok.Text)
	case gerberlexer.TokenParam:
		st.currentMacro = nil
		return st.HandleParameterBlock(tok.Text)
	case gerberlexer.TokenMacro:
		return st.HandleMacroBlock(tok.Text)
	}
	return nil
}

// include processes another file with the current state.
func (st *State) include(name string) error {
	if !filepath.IsAbs(name) && st.fileName != "" {
		name = filepath.Join(filepath.Dir(st.fileName), name)
	}
	glog.Infoln("including", name)
	return st.processFile(name)
}

// LookupAperture returns the aperture bound to a D-code.
func (st *State) LookupAperture(code int) (Aperture, bool) {
	v, ok := st.apertures.Get(code)
	if !ok {
		return nil, false
	}
	return v.(Aperture), true
}

// PrintApertures logs the aperture table in D-code order.
func (st *State) PrintApertures() {
	glog.Infoln(fmt.Sprintf("%d apertures defined", st.apertures.Size()))
	st.apertures.Each(func(key, value interface{}) {
		glog.Infoln(value.(Aperture).String())
	})
}
