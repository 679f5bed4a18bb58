package calculator

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestOperation_Calc(t *testing.T) {
	val1 := 222.222
	val2 := 333.333
	op1 := Operand{"op1", 0, nil}
	op2 := Operand{"", val2, nil}
	oper1 := Operation{&op1, &op2, Add}
	op3 := Operand{"", 0, &oper1}

	oper2 := Operation{&op3, nil, Neg}

	env := Env{"op1": val1}
	if v, err := op3.Calc(env); err != nil || v != (val1+val2) {
		t.Fatal("op3.Calc() error!")
	}

	if v, err := oper2.Calc(env); err != nil || v != -(val1+val2) {
		t.Fatal("oper2.Calc() error!")
	}
}

func TestOpCodeValues(t *testing.T) {
	codes := []OpCode{Nop, Add, Sub, Mul, Div, Neg, Plus}
	for i, c := range codes {
		if int(c) != i {
			t.Fatalf("%s has value %d, expected %d", c, c, i)
		}
	}
}

type testCase struct {
	src string
	ans float64
}

var src = []testCase{
	{"-2x3", -2 * 3},
	{"-2X-3", -2 * -3},
	{"2x3", 2 * 3},
	{"(((-2)))", -2},
	{"2--3", 2 - -3},
	{"2/-3.0", 2 / -3.0},
	{"-2--3", -2 - (-3)},
	{"-2+1-1", -2 + 1 - 1},
	{"2+1-1", 2 + 1 - 1},
	{"-2+1--3", -2 + 1 - (-3)},
	{"-6x9/8", -6 * 9 / 8.0},
	{"-6x9/8x8/-4X787.33", -6 * 9 / 8.0 * 8 / -4 * 787.33},
	{"-6x9/1x-6x9/2/-6x9/3", -6 * 9 / 1 * -6 * 9 / 2 / -6 * 9 / 3},
	{"-1", -1},
	{"1+2x3", 7},
	{"(1+2)x3", 9},
	{" 0.5 + .25 ", 0.75},
	{"(-2x(333+444x4343)/555)-(666-(-777x(888x(-999--1000))))+(11-12)", -697593},
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestCalcExpression(t *testing.T) {
	for _, s := range src {
		result, err := CalcExpression(s.src, nil)
		if err != nil {
			t.Fatal(s.src + " unexpected error: " + err.Error())
		}
		if !closeEnough(result, s.ans) {
			t.Fatal(s.src + " calculation error! got " +
				strconv.FormatFloat(result, 'f', 10, 64) +
				" expected " + strconv.FormatFloat(s.ans, 'f', 10, 64))
		} else {
			t.Log(s.src + " = " + strconv.FormatFloat(s.ans, 'f', 5, 64))
		}
	}
}

func TestVariables(t *testing.T) {
	env := Env{"$1": 0.5, "$2": 2, "$10": 3}
	var cases = []testCase{
		{"$1x$2", 1},
		{"$1+$10", 3.5},
		{"-$2/($1+$1)", -2},
		{"$10X$10X0.5", 4.5},
	}
	for _, c := range cases {
		v, err := CalcExpression(c.src, env)
		if err != nil {
			t.Fatal(c.src + " unexpected error: " + err.Error())
		}
		if !closeEnough(v, c.ans) {
			t.Fatal(c.src + " got " + strconv.FormatFloat(v, 'f', 10, 64))
		}
	}
}

func TestErrors(t *testing.T) {
	if _, err := CalcExpression("$3+1", Env{"$1": 1}); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatal("undefined variable must be reported")
	}
	if _, err := CalcExpression("1/(2-2)", nil); !errors.Is(err, ErrDivisionByZero) {
		t.Fatal("division by zero must be reported")
	}
	for _, s := range []string{"", "1+", "(1+2", "1 2", "2x*3", "1;2", "abc"} {
		if _, err := CalcExpression(s, nil); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%q must be a syntax error, got %v", s, err)
		}
	}
}

func TestParseOnce(t *testing.T) {
	op, err := NewOperand("$1x2")
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		v, err := op.Calc(Env{"$1": float64(i)})
		if err != nil {
			t.Fatal(err)
		}
		if v != float64(2*i) {
			t.Fatal("tree must be reusable with different bindings")
		}
	}
}
