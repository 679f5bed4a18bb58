package gerber2canvas

import (
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/VasiliyTurchenko/gerber2canvas/configurator"
	"github.com/VasiliyTurchenko/gerber2canvas/extents"
	"github.com/VasiliyTurchenko/gerber2canvas/plotter"
	"github.com/VasiliyTurchenko/gerber2canvas/render"
	"github.com/VasiliyTurchenko/gerber2canvas/xy"
)

// FileResult is the outcome of drawing one Gerber file.
type FileResult struct {
	Name    string
	Extents *extents.Extents // points, before the page transform
	Err     error
	Elapsed time.Duration
}

// Report is the outcome of a batch.
type Report struct {
	Files  []FileResult
	Pages  []string // written output files
	Stats  plotter.Stats
	Errors int
}

// Transform maps drawing coordinates to the page, offsets in points.
type Transform struct {
	Scale            float64
	OffsetX, OffsetY float64
}

func renderConfig(s *configurator.Settings) render.Config {
	cfg := render.DefaultConfig()
	cfg.Foreground = s.Foreground
	cfg.Background = s.Background
	cfg.MaxIncludeDepth = s.MaxIncludeDepth
	cfg.MaxPolygonVertices = s.MaxPolygonVertices
	cfg.MaxMoireRings = s.MaxMoireRings
	cfg.PrintApertures = s.PrintApertures
	return cfg
}

// Measure interprets every file without drawing and returns their extents.
// Files are processed concurrently, each with its own state.
func Measure(files []string, cfg render.Config) []*extents.Extents {
	result := make([]*extents.Extents, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f string) {
			defer wg.Done()
			ext := extents.New()
			cfg := cfg
			cfg.PrintApertures = false
			st := render.NewState(plotter.NewDiscard(), ext, cfg)
			if err := st.ProcessFile(f); err != nil {
				glog.Warningln("measuring", f, ":", err)
			}
			result[i] = ext
		}(i, f)
	}
	wg.Wait()
	return result
}

// Fit returns the transform placing ext in the page of widthPt x heightPt
// points with the margin on every side. Empty extents give def.
func Fit(ext *extents.Extents, widthPt, heightPt, marginPt float64, def Transform) Transform {
	if ext == nil || ext.IsEmpty() {
		return def
	}
	minX, minY, maxX, maxY := ext.Bounds()
	extW, extH := maxX-minX, maxY-minY
	scale := math.Inf(1)
	if extW > 0 {
		scale = (widthPt - 2*marginPt) / extW
	}
	if extH > 0 {
		scale = math.Min(scale, (heightPt-2*marginPt)/extH)
	}
	if math.IsInf(scale, 1) || scale <= 0 {
		return def
	}
	return Transform{
		Scale:   scale,
		OffsetX: -minX*scale + marginPt,
		OffsetY: -minY*scale + marginPt,
	}
}

func union(exts []*extents.Extents) *extents.Extents {
	u := extents.New()
	for _, e := range exts {
		if e != nil && !e.IsEmpty() {
			minX, minY, maxX, maxY := e.Bounds()
			u.UpdateRect(minX, minY, maxX, maxY)
		}
	}
	return u
}

// OutputPath places a relative output name next to the first input file.
func OutputPath(files []string, name string) string {
	if filepath.IsAbs(name) || len(files) == 0 {
		return name
	}
	return filepath.Join(filepath.Dir(files[0]), name)
}

/*
	Translate draws the files onto one page (overlay) or one page per file and
	saves the result. An error in one file is logged and the batch goes on
	with the next file.
*/
func Translate(files []string, s *configurator.Settings) (*Report, error) {
	cfg := renderConfig(s)
	widthPt, heightPt := s.PageWidth*xy.PointsPerInch, s.PageHeight*xy.PointsPerInch
	marginPt := s.Margin * xy.PointsPerInch
	def := Transform{Scale: s.Scale, OffsetX: s.OffsetX * xy.PointsPerInch, OffsetY: s.OffsetY * xy.PointsPerInch}

	transforms := make([]Transform, len(files))
	for i := range transforms {
		transforms[i] = def
	}
	if s.FitPage {
		glog.Infoln("Prereading for page sizes")
		sizes := Measure(files, cfg)
		if s.Overlay {
			t := Fit(union(sizes), widthPt, heightPt, marginPt, def)
			for i := range transforms {
				transforms[i] = t
			}
		} else {
			for i := range transforms {
				transforms[i] = Fit(sizes[i], widthPt, heightPt, marginPt, def)
			}
		}
	}

	page := plotter.NewPage(widthPt, heightPt, s.Resolution, s.Background)
	report := &Report{Files: make([]FileResult, 0, len(files))}
	for i, f := range files {
		if i > 0 && !s.Overlay {
			page.ShowPage()
		}
		t := transforms[i]
		page.SetTransform(t.Scale, t.OffsetX, t.OffsetY)
		glog.Infoln("Processing file:", f)
		start := time.Now()
		st := render.NewState(page, extents.New(), cfg)
		err := st.ProcessFile(f)
		res := FileResult{Name: f, Extents: st.Extents(), Err: err, Elapsed: time.Since(start)}
		if err != nil {
			glog.Errorln(err)
			report.Errors++
		}
		glog.Infoln("Finished:", inchExtents(res.Extents))
		report.Files = append(report.Files, res)
	}

	report.Stats = page.Stats()
	names, err := page.Save(OutputPath(files, s.OutputFile), s.Backend)
	report.Pages = names
	report.Stats.Pages = len(names)
	return report, err
}

// extents in inches, the way they are reported after every file
func inchExtents(e *extents.Extents) string {
	if e == nil || e.IsEmpty() {
		return "extents are empty"
	}
	minX, minY, maxX, maxY := e.Bounds()
	return fmtInches(minX, minY, maxX, maxY)
}
