// Copyright 2018 Vasily Turchenko <turchenkov@gmail.com>. All rights reserved.
// Use of this source code is free

package gerber2canvas

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/VasiliyTurchenko/gerber2canvas/configurator"
	"github.com/VasiliyTurchenko/gerber2canvas/xy"
)

var ErrNoInput = errors.New("no input files")

type options struct {
	config  string
	output  string
	fit     bool
	overlay bool
	perFile bool
	dump    bool
	help    bool
}

func parseFlags(fs *pflag.FlagSet, args []string) (*options, error) {
	o := new(options)
	fs.StringVarP(&o.config, "config", "c", "", "configuration file (default: gerber2canvas.toml next to the first input file)")
	fs.StringVarP(&o.output, "output", "o", "", "output file name")
	fs.BoolVar(&o.fit, "fit", false, "scale the drawing to fit the page")
	fs.BoolVar(&o.overlay, "overlay", false, "draw all files on one page")
	fs.BoolVar(&o.perFile, "per-file", false, "draw every file on its own page")
	fs.BoolVar(&o.dump, "dump-config", false, "print the configuration")
	fs.BoolVarP(&o.help, "help", "h", false, "show help message")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.overlay && o.perFile {
		return nil, errors.New("--overlay and --per-file are mutually exclusive")
	}
	return o, nil
}

// ExpandGlobs expands the patterns, a pattern matching nothing is kept as is.
func ExpandGlobs(patterns []string) []string {
	files := make([]string, 0, len(patterns))
	for _, p := range patterns {
		m, err := filepath.Glob(p)
		if err != nil || len(m) == 0 {
			files = append(files, p)
			continue
		}
		sort.Strings(m)
		files = append(files, m...)
	}
	return files
}

// Main runs the command line tool and returns the exit code.
func Main() int {
	defer glog.Flush()

	fs := pflag.NewFlagSet("gerber2canvas", pflag.ContinueOnError)
	fs.AddGoFlagSet(flag.CommandLine)
	o, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	// glog reads its settings from the go flag set
	_ = flag.CommandLine.Parse(nil)
	if o.help {
		printHelp(fs)
		return 0
	}
	fmt.Println(returnAppInfo())

	files := ExpandGlobs(fs.Args())

	v := viper.New()
	dirs := make([]string, 0, 1)
	if len(files) > 0 {
		dirs = append(dirs, filepath.Dir(files[0]))
	}
	configurator.SetDefaults(v, dirs...)
	if o.config != "" {
		v.SetConfigFile(o.config)
	}
	if err := configurator.ProcessConfigFile(v); err != nil {
		fmt.Println("An error has occured:", err)
		fmt.Println("Using built-in defaults.")
	}
	if o.output != "" {
		v.Set(configurator.CfgOutputFile, o.output)
	}
	if o.fit {
		v.Set(configurator.CfgPageFitPage, true)
	}
	if o.overlay {
		v.Set(configurator.CfgPageOverlay, true)
	}
	if o.perFile {
		v.Set(configurator.CfgPageOverlay, false)
	}
	if o.dump {
		configurator.DiagnosticAllCfgPrint(v)
	}
	s, err := configurator.Load(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(files) == 0 {
		files = ExpandGlobs(s.Files)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, ErrNoInput)
		printHelp(fs)
		return 1
	}

	start := time.Now()
	report, err := Translate(files, s)
	if s.PrintSummary && report != nil {
		PrintSummary(os.Stdout, report)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "can not save the output:", err)
		return 1
	}
	glog.Infoln("done in", time.Since(start))
	if report.Errors > 0 {
		return 3
	}
	return 0
}

// PrintSummary writes a table with the result of every file.
func PrintSummary(w io.Writer, r *Report) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "file", "status", "extents (in.)", "time"})
	for i, f := range r.Files {
		status := "ok"
		if f.Err != nil {
			status = f.Err.Error()
		}
		tw.AppendRow(table.Row{i + 1, filepath.Base(f.Name), status, inchExtents(f.Extents),
			f.Elapsed.Round(time.Millisecond).String()})
	}
	tw.AppendFooter(table.Row{"", strconv.Itoa(len(r.Files)) + " files",
		strconv.Itoa(r.Errors) + " failed", r.Stats.String(), ""})
	tw.Render()
	for _, p := range r.Pages {
		fmt.Fprintln(w, "saved", p)
	}
}

func fmtInches(minX, minY, maxX, maxY float64) string {
	return fmt.Sprintf("(%4.2f, %4.2f) - (%4.2f, %4.2f)",
		minX/xy.PointsPerInch, minY/xy.PointsPerInch, maxX/xy.PointsPerInch, maxY/xy.PointsPerInch)
}

func printHelp(fs *pflag.FlagSet) {
	fmt.Println("gerber2canvas - renders RS-274X Gerber files")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gerber2canvas [flags] <file or pattern>...")
	fmt.Println()
	fmt.Println("Flags:")
	fs.PrintDefaults()
}

// this function returns application info
func returnAppInfo() string {
	var header = "Gerber to canvas translation tool\n"
	var version = "Version 0.2.0\n"
	return header + version
}
