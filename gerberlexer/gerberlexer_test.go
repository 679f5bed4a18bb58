package gerberlexer

import (
	"errors"
	"testing"
)

type testdata struct {
	input  string
	answer []Token
}

var td = []testdata{
	{"X4794700Y2202900D01*\n", []Token{{TokenData, "X4794700Y2202900D01*", 1, 1}}},
	{"G04 comment*\nD10*", []Token{{TokenData, "D10*", 2, 1}}},
	{"G4 old style comment\nD11*", []Token{{TokenData, "D11*", 2, 1}}},
	{"%FSLAX24Y24*MOIN*%\nD10*", []Token{
		{TokenParam, "FSLAX24Y24*", 1, 2},
		{TokenParam, "MOIN*", 1, 13},
		{TokenData, "D10*", 2, 1},
	}},
	{"%AMDONUT*\n1,1,$1,0,0*\n$2=$1x0.5*\n1,0,$2,\n0,0*%", []Token{
		{TokenMacro, "DONUT", 1, 4},
		{TokenMacro, "1,1,$1,0,0", 2, 1},
		{TokenMacro, "$2=$1x0.5", 3, 1},
		{TokenMacro, "1,0,$2,0,0", 4, 1},
	}},
	{"  D03*\r\n\tM02", []Token{
		{TokenData, "D03*", 1, 3},
		{TokenData, "M02*", 2, 2},
	}},
	{"M2\n", []Token{{TokenData, "M02*", 1, 1}}},
	{"M02*", []Token{{TokenData, "M02*", 1, 1}}},
	{"", nil},
}

func collect(t *testing.T, src string) ([]Token, error) {
	l := NewLexer("test", []byte(src))
	var result []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return result, err
		}
		if tok.Kind == TokenEOF {
			return result, nil
		}
		result = append(result, tok)
	}
}

func TestLexer_Next(t *testing.T) {
	for _, d := range td {
		result, err := collect(t, d.input)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", d.input, err)
		}
		if len(result) != len(d.answer) {
			t.Fatalf("%q: got %v, expected %v", d.input, result, d.answer)
		}
		for i := range result {
			if result[i] != d.answer[i] {
				t.Errorf("\ninput: %q\ncorr: %v\nres: %v", d.input, d.answer[i], result[i])
			}
		}
	}
}

func TestLexerErrors(t *testing.T) {
	var bad = []string{
		"X100Y100D01",
		"M02 garbage",
		"%FSLAX24Y24*",
		"%IPPOS%",
		"X100%",
	}
	for _, b := range bad {
		_, err := collect(t, b)
		if !errors.Is(err, ErrUnterminated) {
			t.Errorf("%q: expected an unterminated block error, got %v", b, err)
		}
	}
}

func TestPosition(t *testing.T) {
	l := NewLexer("pos", []byte("D10*\nD11*\n  X1"))
	for i := 0; i < 2; i++ {
		if _, err := l.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := l.Next(); err == nil {
		t.Fatal("must be an error")
	}
	line, col := l.Position()
	if line != 3 || col != 3 {
		t.Fatalf("error position %d:%d, expected 3:3", line, col)
	}
}

func TestFormatGCode(t *testing.T) {
	var testarray = []struct{ sym, num, ans string }{
		{"D", "00", "D00"},
		{"D", "001000", "D1000"},
		{"M", "2", "M02"},
		{"G", "", "G"},
		{"D", "9", "D09"},
		{"F", "10", "F10"},
	}
	for _, c := range testarray {
		if r := FormatGCode(c.sym, c.num); r != c.ans {
			t.Error(c.sym + c.num + "->" + r)
		}
	}
}
