package render

import (
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/VasiliyTurchenko/gerber2canvas/amprocessor"
	. "github.com/VasiliyTurchenko/gerber2canvas/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2canvas/xy"
)

// HandleParameterBlock interprets one block found between '%' delimiters.
func (st *State) HandleParameterBlock(block string) error {
	if len(block) < 2 {
		glog.Warningln("Unimplemented parameter block:", block)
		return nil
	}
	switch block[:2] {
	case "FS":
		fs, err := xy.ParseFormatSpec(block)
		if err != nil {
			return newError("Malformed FS block: %s: %v", block, err)
		}
		st.format = fs
		st.absolute = fs.Absolute
		glog.V(1).Infoln(fs.String())
	case "MO":
		switch {
		case strings.HasSuffix(block, "IN*"):
			st.setUnits(UnitInch)
		case strings.HasSuffix(block, "MM*"):
			st.setUnits(UnitMM)
		default:
			glog.Warningln("Unknown unit in", block)
		}
	case GerberApertureDef:
		return st.handleAD(block)
	case "LP":
		return st.handleLP(block)
	case "IF":
		return st.include(strings.TrimSpace(strings.TrimSuffix(block[2:], "*")))
	case "IN", "LN":
	default:
		glog.Warningln("Unimplemented parameter block:", block)
	}
	return nil
}

func (st *State) handleLP(block string) error {
	st.Flush()
	if len(block) < 3 {
		return newError("Malformed LP block: %s", block)
	}
	switch block[2] {
	case 'C':
		st.polarity = PolTypeClear
		st.curFg, st.curBg = st.cfg.Background, st.cfg.Foreground
	case 'D':
		st.polarity = PolTypeDark
		st.curFg, st.curBg = st.cfg.Foreground, st.cfg.Background
	default:
		return newError("Malformed LP block: %s", block)
	}
	st.canvas.SetFillColor(st.curFg)
	st.canvas.SetStrokeColor(st.curFg)
	return nil
}

func (st *State) handleAD(block string) error {
	if block == GerberApertureDef+"*" {
		glog.Warningln("AD parameter block has no parameters")
		return nil
	}
	m := adRegexp.FindStringSubmatch(block)
	if m == nil {
		return newError("Malformed AD block: %s", block)
	}
	code, _ := strconv.Atoi(m[1])
	if code < MinApertureCode || code > MaxApertureCode {
		return newError("Invalid aperture code D%d in %s", code, block)
	}
	var params []float64
	if m[3] != "" {
		for _, f := range strings.Split(m[3], "X") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return newError("Malformed AD block: %s", block)
			}
			params = append(params, v)
		}
	}
	ap, err := st.newAperture(code, m[2], params)
	if err != nil {
		return err
	}
	st.apertures.Put(code, ap)
	glog.V(2).Infoln(ap.String())
	return nil
}

// HandleMacroBlock takes one statement of an %AM block.
func (st *State) HandleMacroBlock(text string) error {
	if amprocessor.Classify(text) == amprocessor.KindName {
		st.currentMacro = amprocessor.NewApertureMacro(text)
		st.macros[st.currentMacro.Name] = st.currentMacro
		return nil
	}
	if st.currentMacro == nil {
		return newError("Macro statement outside of a macro definition: %s", text)
	}
	if err := st.currentMacro.AddStatement(text); err != nil {
		return newError("%v", err)
	}
	return nil
}

// fill and stroke colors for the exposure of a macro primitive
func (st *State) setExposure(on bool) {
	c := st.curFg
	if !on {
		c = st.curBg
	}
	st.canvas.SetFillColor(c)
	st.canvas.SetStrokeColor(c)
}
