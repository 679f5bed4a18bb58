package amprocessor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/VasiliyTurchenko/gerber2canvas/calculator"
)

func buildMacro(t *testing.T, name string, blocks []string) *ApertureMacro {
	am := NewApertureMacro(name)
	for _, b := range blocks {
		if err := am.AddStatement(b); err != nil {
			t.Fatal(err)
		}
	}
	return am
}

func TestClassify(t *testing.T) {
	var cases = []struct {
		src  string
		kind StatementKind
	}{
		{"0 Rectangle, with rounded corners", KindComment},
		{"0", KindComment},
		{"$4=$1x0.75", KindEquation},
		{"1,1,$1,0,0", KindPrimitive},
		{"DONUT", KindName},
		{"  THERMAL80 ", KindName},
	}
	for _, c := range cases {
		if k := Classify(c.src); k != c.kind {
			t.Fatalf("%q: got %v, expected %v", c.src, k, c.kind)
		}
	}
}

func TestInstantiate(t *testing.T) {
	am := buildMacro(t, "DONUTCAL*", []string{
		"0 Donut with a computed inner diameter*",
		"1,1,$1,$2,$3*",
		"$4=$1x0.75*",
		"1,0,$4,$2,$3*",
	})
	if am.Name != "DONUTCAL" {
		t.Fatal("bad macro name " + am.Name)
	}
	if len(am.Comments) != 1 {
		t.Fatal("comment not recorded")
	}
	prims, err := am.Instantiate([]float64{0.5, 0.1, 0.2})
	if err != nil {
		t.Fatal(err)
	}
	expected := []Primitive{
		{AMPrimitive_Circle, []float64{1, 0.5, 0.1, 0.2}},
		{AMPrimitive_Circle, []float64{0, 0.375, 0.1, 0.2}},
	}
	if !reflect.DeepEqual(prims, expected) {
		t.Fatalf("got %v, expected %v", prims, expected)
	}
	t.Log(prims[1].String())
}

func TestInstantiateIsDeterministic(t *testing.T) {
	am := buildMacro(t, "BOX", []string{
		"$3=$1+$2*",
		"21,1,$1,$2,0,0,$3*",
	})
	first, err := am.Instantiate([]float64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	other, err := am.Instantiate([]float64{5, 6})
	if err != nil {
		t.Fatal(err)
	}
	second, err := am.Instantiate([]float64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("instantiation depends on a previous call")
	}
	if other[0].Params[5] != 11 {
		t.Fatal("equation not evaluated per instance")
	}
	// $3 computed by the first call must not be visible here
	short := buildMacro(t, "LEAK", []string{"1,1,$3,0,0*"})
	if _, err := short.Instantiate([]float64{1, 2}); !errors.Is(err, calculator.ErrUndefinedVariable) {
		t.Fatal("unbound variable must be an error")
	}
}

func TestLegacyVectorLine(t *testing.T) {
	am := buildMacro(t, "LINE", []string{"2,1,0.1,0,0,1X2,0,45*"})
	prims, err := am.Instantiate(nil)
	if err != nil {
		t.Fatal(err)
	}
	if prims[0].Type != AMPrimitive_VectLine {
		t.Fatal("code 2 must be mapped to the vector line")
	}
	if prims[0].Params[4] != 2 {
		t.Fatal("x must multiply")
	}
}

func TestEmptyFieldsSkipped(t *testing.T) {
	am := buildMacro(t, "COMMAS", []string{"1,1,$1,,0,0,*"})
	prims, err := am.Instantiate([]float64{0.5})
	if err != nil {
		t.Fatal(err)
	}
	expected := []Primitive{{AMPrimitive_Circle, []float64{1, 0.5, 0, 0}}}
	if !reflect.DeepEqual(prims, expected) {
		t.Fatalf("got %v, expected %v", prims, expected)
	}
}

func TestUnknownPrimitiveKept(t *testing.T) {
	am := buildMacro(t, "ODD", []string{"9,1,2,3*"})
	prims, err := am.Instantiate(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(prims) != 1 || prims[0].Type.Known() {
		t.Fatal("unknown primitive must be passed through as unknown")
	}
}

func TestParameterCount(t *testing.T) {
	var bad = []string{
		"1,1,0.5*",
		"20,1,0.1,0,0,1*",
		"4,1,3,0,0,1,0,1,1*",
		"7,0,0,1*",
	}
	for _, b := range bad {
		am := buildMacro(t, "BAD", []string{b})
		if _, err := am.Instantiate(nil); err == nil {
			t.Fatal(b + " must be rejected")
		}
	}
	am := buildMacro(t, "TRIANGLE", []string{"4,1,3,0,0,1,0,1,1,0,0,30*"})
	if _, err := am.Instantiate(nil); err != nil {
		t.Fatal(err)
	}
}

func TestAddStatementErrors(t *testing.T) {
	am := NewApertureMacro("E")
	for _, s := range []string{"4=1*", "$1=1+*", "X,1*", "1,1,(2*"} {
		if err := am.AddStatement(s); err == nil {
			t.Fatal(s + " must be rejected")
		}
	}
}
