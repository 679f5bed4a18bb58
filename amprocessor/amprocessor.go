//Aperture Macros support
package amprocessor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/VasiliyTurchenko/gerber2canvas/calculator"
)

type AMPrimitiveType int

const (
	AMPrimitive_Comment       AMPrimitiveType = 0
	AMPrimitive_Circle        AMPrimitiveType = 1
	AMPrimitive_VectLine      AMPrimitiveType = 20
	AMPrimitive_CenterLine    AMPrimitiveType = 21
	AMPrimitive_LowerLeftLine AMPrimitiveType = 22
	AMPRimitive_OutLine       AMPrimitiveType = 4
	AMPrimitive_Polygon       AMPrimitiveType = 5
	AMPrimitive_Moire         AMPrimitiveType = 6
	AMPrimitive_Thermal       AMPrimitiveType = 7
)

// legacy code of the vector line
const amPrimitiveVectLineOld AMPrimitiveType = 2

func (amp AMPrimitiveType) String() string {
	var retVal string
	switch amp {
	case AMPrimitive_Comment:
		retVal = "comment"
	case AMPrimitive_Circle:
		retVal = "circle"
	case AMPrimitive_VectLine:
		retVal = "vector line"
	case AMPrimitive_CenterLine:
		retVal = "center line"
	case AMPrimitive_LowerLeftLine:
		retVal = "lower left line"
	case AMPRimitive_OutLine:
		retVal = "outline"
	case AMPrimitive_Polygon:
		retVal = "polygon"
	case AMPrimitive_Moire:
		retVal = "moire"
	case AMPrimitive_Thermal:
		retVal = "thermal"
	default:
		retVal = "unknown"
	}
	return retVal
}

// Known reports whether the primitive can be drawn.
func (amp AMPrimitiveType) Known() bool {
	return amp.String() != "unknown" && amp != AMPrimitive_Comment
}

// parameter names, the trailing rotation may be omitted
var paramNames = map[AMPrimitiveType][]string{
	AMPrimitive_Circle:        {"Exposure", "Diameter", "Center X", "Center Y", "Rotation"},
	AMPrimitive_VectLine:      {"Exposure", "Width", "Start X", "Start Y", "End X", "End Y", "Rotation"},
	AMPrimitive_CenterLine:    {"Exposure", "Width", "Height", "Center X", "Center Y", "Rotation"},
	AMPrimitive_LowerLeftLine: {"Exposure", "Width", "Height", "Lower left X", "Lower left Y", "Rotation"},
	AMPrimitive_Polygon:       {"Exposure", "Vertices", "Center X", "Center Y", "Diameter", "Rotation"},
	AMPrimitive_Moire: {"Center X", "Center Y", "Outer diameter", "Ring thickness", "Ring gap",
		"Max rings", "Crosshair thickness", "Crosshair length", "Rotation"},
	AMPrimitive_Thermal: {"Center X", "Center Y", "Outer diameter", "Inner diameter", "Gap", "Rotation"},
}

// MinParams returns the number of parameters the primitive cannot do without.
// The outline length depends on its vertex count, see Primitive.Check.
func (amp AMPrimitiveType) MinParams() int {
	switch amp {
	case AMPrimitive_Circle:
		return 4
	case AMPRimitive_OutLine:
		return 2
	}
	if names, ok := paramNames[amp]; ok {
		return len(names) - 1
	}
	return 0
}

type StatementKind int

const (
	KindComment StatementKind = iota + 1
	KindEquation
	KindPrimitive
	KindName
)

func (k StatementKind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindEquation:
		return "equation"
	case KindPrimitive:
		return "primitive"
	case KindName:
		return "macro name"
	default:
	}
	return "unknown statement"
}

// Classify tells what a macro block (without '*') is.
func Classify(text string) StatementKind {
	text = strings.TrimSpace(text)
	switch {
	case text == "0" || strings.HasPrefix(text, "0 "):
		return KindComment
	case strings.Contains(text, "="):
		return KindEquation
	case strings.Contains(text, ","):
		return KindPrimitive
	}
	return KindName
}

var variableRegexp = regexp.MustCompile(`^\$[0-9]+$`)

type statement struct {
	kind   StatementKind
	source string
	target string                 // equation
	prim   AMPrimitiveType        // primitive
	exprs  []*calculator.Operand // equation has one
}

// ApertureMacro is a parsed %AM definition, a template for macro apertures.
type ApertureMacro struct {
	Name       string
	Comments   []string
	statements []statement
}

func NewApertureMacro(name string) *ApertureMacro {
	return &ApertureMacro{Name: strings.TrimSpace(strings.TrimSuffix(name, "*"))}
}

// AddStatement parses one macro block and appends it to the template.
func (am *ApertureMacro) AddStatement(text string) error {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "*"))
	switch Classify(text) {
	case KindComment:
		am.Comments = append(am.Comments, strings.TrimSpace(strings.TrimPrefix(text, "0")))
		return nil
	case KindEquation:
		eq := strings.SplitN(text, "=", 2)
		target := strings.TrimSpace(eq[0])
		if !variableRegexp.MatchString(target) {
			return fmt.Errorf("macro %s: bad assignment target %q", am.Name, target)
		}
		op, err := calculator.NewOperand(eq[1])
		if err != nil {
			return fmt.Errorf("macro %s: %w", am.Name, err)
		}
		am.statements = append(am.statements, statement{kind: KindEquation, source: text,
			target: target, exprs: []*calculator.Operand{op}})
		return nil
	case KindPrimitive:
		fields := strings.Split(text, ",")
		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return fmt.Errorf("macro %s: bad primitive code %q", am.Name, fields[0])
		}
		prim := AMPrimitiveType(id)
		if prim == amPrimitiveVectLineOld {
			prim = AMPrimitive_VectLine
		}
		st := statement{kind: KindPrimitive, source: text, prim: prim}
		for _, f := range fields[1:] {
			// stray commas leave empty fields
			if strings.TrimSpace(f) == "" {
				continue
			}
			op, err := calculator.NewOperand(f)
			if err != nil {
				return fmt.Errorf("macro %s, primitive %d: %w", am.Name, id, err)
			}
			st.exprs = append(st.exprs, op)
		}
		am.statements = append(am.statements, st)
		return nil
	}
	return errors.New("macro " + am.Name + ": unexpected statement " + text)
}

// Primitive is one instantiated drawing instruction.
type Primitive struct {
	Type   AMPrimitiveType
	Params []float64
}

// Param returns the i-th parameter or def when it was omitted.
func (p Primitive) Param(i int, def float64) float64 {
	if i < len(p.Params) {
		return p.Params[i]
	}
	return def
}

// Check validates the parameter count of a known primitive.
func (p Primitive) Check() error {
	if !p.Type.Known() {
		return nil
	}
	if len(p.Params) < p.Type.MinParams() {
		return fmt.Errorf("bad number of parameters for %s primitive: %d", p.Type, len(p.Params))
	}
	if p.Type == AMPRimitive_OutLine {
		n := int(p.Params[1])
		if n < 1 {
			return fmt.Errorf("outline primitive with %d vertices", n)
		}
		if len(p.Params) < 2+2*(n+1) {
			return fmt.Errorf("bad number of parameters for outline primitive: %d vertices, %d parameters",
				n, len(p.Params))
		}
	}
	return nil
}

func (p Primitive) String() string {
	retVal := "Aperture macro primitive:\t" + p.Type.String() + "\n"
	return retVal + ArrayInfo(p.Params, paramNames[p.Type])
}

// Instantiate binds modifiers to $1..$n and evaluates the statements in order.
// Every call works on its own environment.
func (am *ApertureMacro) Instantiate(modifiers []float64) ([]Primitive, error) {
	env := make(calculator.Env, len(modifiers))
	for i, m := range modifiers {
		env["$"+strconv.Itoa(i+1)] = m
	}
	prims := make([]Primitive, 0, len(am.statements))
	for _, st := range am.statements {
		switch st.kind {
		case KindEquation:
			v, err := st.exprs[0].Calc(env)
			if err != nil {
				return nil, fmt.Errorf("macro %s, %q: %w", am.Name, st.source, err)
			}
			env[st.target] = v
		case KindPrimitive:
			if len(st.exprs) == 0 {
				continue
			}
			p := Primitive{Type: st.prim, Params: make([]float64, len(st.exprs))}
			for i, e := range st.exprs {
				v, err := e.Calc(env)
				if err != nil {
					return nil, fmt.Errorf("macro %s, %q: %w", am.Name, st.source, err)
				}
				p.Params[i] = v
			}
			if err := p.Check(); err != nil {
				return nil, fmt.Errorf("macro %s: %w", am.Name, err)
			}
			prims = append(prims, p)
		}
	}
	return prims, nil
}

func (am *ApertureMacro) String() string {
	retVal := "Aperture macro " + am.Name + "\n"
	for _, c := range am.Comments {
		retVal += "\tcomment: " + c + "\n"
	}
	for _, st := range am.statements {
		retVal += "\t" + st.kind.String() + ": " + st.source + "\n"
	}
	return retVal
}

// ArrayInfo prints values with their names
func ArrayInfo(values []float64, names []string) string {
	retVal := ""
	for i, v := range values {
		name := "Param " + strconv.Itoa(i+1)
		if i < len(names) {
			name = names[i]
		}
		retVal += "\t\t" + name + ": " + strconv.FormatFloat(v, 'f', 5, 64) + "\n"
	}
	return retVal
}
