package configurator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v, t.TempDir())
	if err := ProcessConfigFile(v); err != nil {
		t.Fatal("missing config file must not fail:", err)
	}
	s, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if s.PageWidth != 8.5 || s.PageHeight != 11 || s.Margin != 0.75 || s.Scale != 1 {
		t.Error("bad page defaults:", s)
	}
	if !s.Overlay || s.FitPage || s.OutputFile != "gerber.png" || s.Backend != "raster" {
		t.Error("bad output defaults:", s)
	}
	if s.Foreground != gg.Hex("#cccccc") || s.Background != gg.White {
		t.Error("bad colors:", s.Foreground, s.Background)
	}
	if s.MaxIncludeDepth != 16 || len(s.Files) != 0 {
		t.Error("bad limits:", s)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `
files = ["top.gbr", "bottom.gbr"]

[page]
FitPage = true
Margin = 0.5

[colors]
Foreground = "black"

[output]
Resolution = 300
`
	if err := os.WriteFile(filepath.Join(dir, ConfigName+".toml"), []byte(cfg), 0600); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	SetDefaults(v, dir)
	if err := ProcessConfigFile(v); err != nil {
		t.Fatal(err)
	}
	s, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if !s.FitPage || s.Margin != 0.5 || s.Resolution != 300 || s.PageWidth != 8.5 {
		t.Error("config file not applied:", s)
	}
	if s.Foreground != gg.Black {
		t.Error("bad foreground:", s.Foreground)
	}
	if len(s.Files) != 2 || s.Files[1] != "bottom.gbr" {
		t.Error("bad file list:", s.Files)
	}
}

func TestLoadErrors(t *testing.T) {
	var tests = []struct {
		key   string
		value interface{}
	}{
		{CfgColorsForeground, "not-a-color"},
		{CfgColorsBackground, "#12345"},
		{CfgPageWidth, 0.0},
		{CfgPageScale, -1.0},
		{CfgOutputResolution, 0},
	}
	for _, tt := range tests {
		v := viper.New()
		SetDefaults(v)
		v.Set(tt.key, tt.value)
		if _, err := Load(v); err == nil {
			t.Errorf("%s = %v accepted", tt.key, tt.value)
		}
	}
}

func TestParseColor(t *testing.T) {
	var tests = []struct {
		in   string
		want gg.RGBA
	}{
		{"white", gg.White},
		{" Black ", gg.Black},
		{"#fff", gg.Hex("fff")},
		{"#00ff00", gg.RGB(0, 1, 0)},
		{"#ff000080", gg.Hex("ff000080")},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if err != nil {
			t.Error(tt.in, err)
			continue
		}
		if c != tt.want {
			t.Errorf("%q: got %v, want %v", tt.in, c, tt.want)
		}
	}
	if _, err := ParseColor("#xyz"); !errors.Is(err, ErrBadColor) {
		t.Error("bad hex accepted:", err)
	}
}
