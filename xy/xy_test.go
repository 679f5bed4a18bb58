package xy

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

const eps = 1e-9

type decodeCase struct {
	src        string
	n, m       int
	lzs        bool
	unit       float64
	ans        float64
	shouldFail bool
}

var decodeCases = []decodeCase{
	{"1234", 2, 4, true, 1.0, 0.1234, false},
	{"12", 2, 4, false, 1.0, 12.0, false},
	{"-1234", 2, 4, true, 1.0, -0.1234, false},
	{"+1234", 2, 4, true, 1.0, 0.1234, false},
	{"123456", 2, 4, true, 1.0, 12.3456, false},
	{"1", 2, 3, true, 1.0, 0.001, false},
	{"1", 2, 3, false, 1.0, 10.0, false},
	{"25", 2, 3, true, PointsPerInch, 0.025 * 72, false},
	{"1000", 3, 3, true, PointsPerMM, 1.0 * 72 / 25.4, false},
	{"", 2, 3, true, 1.0, 0, false},
	{"12a4", 2, 4, true, 1.0, 0, true},
	{"--12", 2, 4, true, 1.0, 0, true},
}

func TestDecode(t *testing.T) {
	for _, c := range decodeCases {
		v, err := Decode(c.src, c.n, c.m, c.lzs, c.unit)
		if c.shouldFail {
			if err == nil {
				t.Fatal(c.src + " must be an error")
			}
			if !errors.Is(err, ErrNotANumber) {
				t.Fatal("unexpected error " + err.Error())
			}
			continue
		}
		if err != nil {
			t.Fatal(c.src + " unexpected error: " + err.Error())
		}
		if math.Abs(v-c.ans) > eps {
			t.Fatal(c.src + " decoding error! got " + strconv.FormatFloat(v, 'f', 10, 64) +
				" expected " + strconv.FormatFloat(c.ans, 'f', 10, 64))
		}
		t.Log(c.src + " = " + strconv.FormatFloat(v, 'f', 5, 64))
	}
}

func TestParseFormatSpec(t *testing.T) {
	fs, err := ParseFormatSpec("FSLAX24Y36*")
	if err != nil {
		t.Fatal(err)
	}
	if fs.XI != 2 || fs.XD != 4 || fs.YI != 3 || fs.YD != 6 {
		t.Fatal("bad digits: " + fs.String())
	}
	if !fs.LeadingZeroSuppressed || !fs.Absolute {
		t.Fatal("bad flags: " + fs.String())
	}

	fs, err = ParseFormatSpec("FSTIN2G2X33Y33D2M2*")
	if err != nil {
		t.Fatal(err)
	}
	if fs.LeadingZeroSuppressed || fs.Absolute {
		t.Fatal("bad flags: " + fs.String())
	}
	if fs.NDigits != 2 || fs.GDigits != 2 || fs.DDigits != 2 || fs.MDigits != 2 {
		t.Fatal("bad N/G/D/M limits")
	}

	// defaults: leading zeros omitted, absolute
	fs, err = ParseFormatSpec("FSX25Y25*")
	if err != nil {
		t.Fatal(err)
	}
	if !fs.LeadingZeroSuppressed || !fs.Absolute {
		t.Fatal("defaults not applied: " + fs.String())
	}
}

func TestParseFormatSpecErrors(t *testing.T) {
	if _, err := ParseFormatSpec("FSLAX27Y27*"); !errors.Is(err, ErrIllegalXY) {
		t.Fatal("digit count above 6 must be rejected")
	}
	for _, s := range []string{"FSLAX2Y2*", "FSLAX24Y24", "FSQAX24Y24*", "FS*"} {
		if _, err := ParseFormatSpec(s); !errors.Is(err, ErrMalformedFS) {
			t.Fatal(s + " must be rejected as malformed")
		}
	}
}

func TestFormatSpecDecode(t *testing.T) {
	fs := NewFormatSpec()
	x, err := fs.DecodeX("1500", PointsPerInch)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-1.5*72) > eps {
		t.Fatal("default format must be 2.3 with leading zeros omitted")
	}
	y, err := fs.DecodeY("-500", 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(y+0.5) > eps {
		t.Fatal("bad Y value")
	}
}
