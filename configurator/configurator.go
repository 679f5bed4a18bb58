package configurator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/gg"
	"github.com/spf13/viper"
	"golang.org/x/image/colornames"
)

const (
	CfgPageWidth   string = "page.Width"
	CfgPageHeight  string = "page.Height"
	CfgPageMargin  string = "page.Margin"
	CfgPageFitPage string = "page.FitPage"
	CfgPageScale   string = "page.Scale"
	CfgPageOffsetX string = "page.OffsetX"
	CfgPageOffsetY string = "page.OffsetY"
	CfgPageOverlay string = "page.Overlay"

	CfgOutputFile       string = "output.File"
	CfgOutputBackend    string = "output.Backend"
	CfgOutputResolution string = "output.Resolution"

	CfgColorsForeground string = "colors.Foreground"
	CfgColorsBackground string = "colors.Background"

	CfgLimitsMaxIncludeDepth    string = "limits.MaxIncludeDepth"
	CfgLimitsMaxPolygonVertices string = "limits.MaxPolygonVertices"
	CfgLimitsMaxMoireRings      string = "limits.MaxMoireRings"

	CfgCommonPrintAperturesInfo string = "common.PrintAperturesInfo"
	CfgCommonPrintSummary       string = "common.PrintSummary"

	CfgFiles string = "files"
)

const ConfigName = "gerber2canvas"

var ErrBadColor = errors.New("bad color")

// SetDefaults prepares v to look for gerber2canvas.toml in dirs and then in
// the working directory.
func SetDefaults(v *viper.Viper, dirs ...string) {
	v.SetConfigName(ConfigName) // no need to include file extension
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.AddConfigPath(".")
	v.SetConfigType("toml")

	// page, inches
	v.SetDefault(CfgPageWidth, 8.5)
	v.SetDefault(CfgPageHeight, 11.0)
	v.SetDefault(CfgPageMargin, 0.75)
	v.SetDefault(CfgPageFitPage, false)
	v.SetDefault(CfgPageScale, 1.0)
	v.SetDefault(CfgPageOffsetX, 0.0)
	v.SetDefault(CfgPageOffsetY, 0.0)
	v.SetDefault(CfgPageOverlay, true)

	//
	v.SetDefault(CfgOutputFile, "gerber.png")
	v.SetDefault(CfgOutputBackend, "raster")
	v.SetDefault(CfgOutputResolution, 150)

	//
	v.SetDefault(CfgColorsForeground, "#cccccc")
	v.SetDefault(CfgColorsBackground, "white")

	//
	v.SetDefault(CfgLimitsMaxIncludeDepth, 16)
	v.SetDefault(CfgLimitsMaxPolygonVertices, 10000)
	v.SetDefault(CfgLimitsMaxMoireRings, 1000)

	// diagnostic messages
	v.SetDefault(CfgCommonPrintAperturesInfo, false)
	v.SetDefault(CfgCommonPrintSummary, true)

	v.SetDefault(CfgFiles, []string{})
}

// ProcessConfigFile reads the configuration file. A missing file is not an error.
func ProcessConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func DiagnosticAllCfgPrint(v *viper.Viper) {
	keys := v.AllKeys()
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Println(key, ":", v.Get(key))
	}
	fmt.Println()
}

/*
	Settings is the typed form of the configuration. Lengths are in inches.
*/
type Settings struct {
	PageWidth, PageHeight float64
	Margin                float64
	FitPage               bool
	Scale                 float64
	OffsetX, OffsetY      float64
	Overlay               bool

	OutputFile string
	Backend    string
	Resolution float64

	Foreground gg.RGBA
	Background gg.RGBA

	MaxIncludeDepth    int
	MaxPolygonVertices int
	MaxMoireRings      int

	PrintApertures bool
	PrintSummary   bool

	Files []string
}

func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		PageWidth:          v.GetFloat64(CfgPageWidth),
		PageHeight:         v.GetFloat64(CfgPageHeight),
		Margin:             v.GetFloat64(CfgPageMargin),
		FitPage:            v.GetBool(CfgPageFitPage),
		Scale:              v.GetFloat64(CfgPageScale),
		OffsetX:            v.GetFloat64(CfgPageOffsetX),
		OffsetY:            v.GetFloat64(CfgPageOffsetY),
		Overlay:            v.GetBool(CfgPageOverlay),
		OutputFile:         v.GetString(CfgOutputFile),
		Backend:            v.GetString(CfgOutputBackend),
		Resolution:         v.GetFloat64(CfgOutputResolution),
		MaxIncludeDepth:    v.GetInt(CfgLimitsMaxIncludeDepth),
		MaxPolygonVertices: v.GetInt(CfgLimitsMaxPolygonVertices),
		MaxMoireRings:      v.GetInt(CfgLimitsMaxMoireRings),
		PrintApertures:     v.GetBool(CfgCommonPrintAperturesInfo),
		PrintSummary:       v.GetBool(CfgCommonPrintSummary),
		Files:              v.GetStringSlice(CfgFiles),
	}
	var err error
	if s.Foreground, err = ParseColor(v.GetString(CfgColorsForeground)); err != nil {
		return nil, fmt.Errorf("%s: %w", CfgColorsForeground, err)
	}
	if s.Background, err = ParseColor(v.GetString(CfgColorsBackground)); err != nil {
		return nil, fmt.Errorf("%s: %w", CfgColorsBackground, err)
	}
	if s.PageWidth <= 0 || s.PageHeight <= 0 {
		return nil, fmt.Errorf("page size %gx%g is not positive", s.PageWidth, s.PageHeight)
	}
	if s.Scale <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %g", CfgPageScale, s.Scale)
	}
	if s.Resolution <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %g", CfgOutputResolution, s.Resolution)
	}
	return s, nil
}

// ParseColor accepts an SVG color name or a #rgb / #rrggbb / #rrggbbaa value.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return gg.FromColor(c), nil
	}
	if strings.HasPrefix(s, "#") {
		switch len(s) {
		case 4, 7, 9:
			if strings.Trim(s[1:], "0123456789abcdef") == "" {
				return gg.Hex(s), nil
			}
		}
	}
	return gg.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}
