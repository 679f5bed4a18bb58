// Package xy holds the coordinate format specification and the decoder
// turning Gerber digit strings into lengths.
package xy

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Canvas units are PDF points.
const (
	PointsPerInch float64 = 72.0
	InchesToMM    float64 = 25.4
	PointsPerMM   float64 = PointsPerInch / InchesToMM
)

const maxDigits = 6

var (
	ErrMalformedFS = errors.New("malformed FS block")
	ErrIllegalXY   = errors.New("illegal X/Y value in FS block")
	ErrNotANumber  = errors.New("not a number")
)

var fsRegexp = regexp.MustCompile(`^FS([LT])?([AI])?(N\d)?(G\d)?X(\d)(\d)Y(\d)(\d)(D\d)?(M\d)?\*$`)

// Function checks against non-number characters in the string
func isNumString(ins string) bool {
	v := []byte(ins)
	for _, c := range v {
		if (c < 0x30) || (c > 0x39) {
			return false
		}
	}
	return true
}

/*
############################ format specification #####################
*/

// Format specification object
type FormatSpec struct {
	XI int // digits in the integer part
	XD int // digits in the fractional part
	YI int
	YD int

	LeadingZeroSuppressed bool
	Absolute              bool

	// recorded only
	NDigits, GDigits, DDigits, MDigits int
}

// NewFormatSpec returns the format assumed until an FS block is seen.
func NewFormatSpec() *FormatSpec {
	return &FormatSpec{
		XI: 2, XD: 3,
		YI: 2, YD: 3,
		LeadingZeroSuppressed: true,
		Absolute:              true,
	}
}

// ParseFormatSpec parses the body of an FS parameter block, e.g. "FSLAX24Y24*".
func ParseFormatSpec(block string) (*FormatSpec, error) {
	m := fsRegexp.FindStringSubmatch(strings.TrimSpace(block))
	if m == nil {
		return nil, ErrMalformedFS
	}
	fs := NewFormatSpec()
	fs.LeadingZeroSuppressed = m[1] != "T"
	fs.Absolute = m[2] != "I"
	fs.NDigits = optionalDigit(m[3])
	fs.GDigits = optionalDigit(m[4])
	fs.XI, _ = strconv.Atoi(m[5])
	fs.XD, _ = strconv.Atoi(m[6])
	fs.YI, _ = strconv.Atoi(m[7])
	fs.YD, _ = strconv.Atoi(m[8])
	fs.DDigits = optionalDigit(m[9])
	fs.MDigits = optionalDigit(m[10])
	for _, d := range []int{fs.XI, fs.XD, fs.YI, fs.YD} {
		if d > maxDigits {
			return nil, ErrIllegalXY
		}
	}
	return fs, nil
}

func optionalDigit(s string) int {
	if len(s) < 2 {
		return 0
	}
	d, _ := strconv.Atoi(s[1:])
	return d
}

// DecodeX decodes an X (or I) value.
func (fs *FormatSpec) DecodeX(digits string, unit float64) (float64, error) {
	return Decode(digits, fs.XI, fs.XD, fs.LeadingZeroSuppressed, unit)
}

// DecodeY decodes an Y (or J) value.
func (fs *FormatSpec) DecodeY(digits string, unit float64) (float64, error) {
	return Decode(digits, fs.YI, fs.YD, fs.LeadingZeroSuppressed, unit)
}

func (fs *FormatSpec) String() string {
	zeros := "leading"
	if !fs.LeadingZeroSuppressed {
		zeros = "trailing"
	}
	mode := "absolute"
	if !fs.Absolute {
		mode = "incremental"
	}
	return fmt.Sprintf("format X%d.%d Y%d.%d, %s zeros omitted, %s",
		fs.XI, fs.XD, fs.YI, fs.YD, zeros, mode)
}

/*
######################### values #########################################
*/

// Decode converts a signed implied-decimal digit string into a length.
// With leading zeros suppressed the string is padded on the left and the
// decimal point goes decDigits characters from the end; otherwise it is padded
// on the right and the point goes after intDigits characters.
func Decode(ins string, intDigits, decDigits int, leadingZeroSuppressed bool, unit float64) (float64, error) {
	neg := false
	ws := ins
	if strings.HasPrefix(ws, "-") {
		neg = true
		ws = ws[1:]
	} else if strings.HasPrefix(ws, "+") {
		ws = ws[1:]
	}
	if !isNumString(ws) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, ins)
	}
	if needed := intDigits + decDigits - len(ws); needed > 0 {
		pad := strings.Repeat("0", needed)
		if leadingZeroSuppressed {
			ws = pad + ws
		} else {
			ws = ws + pad
		}
	}
	var point int
	if leadingZeroSuppressed {
		point = len(ws) - decDigits
	} else {
		point = intDigits
	}
	d, err := decimal.NewFromString(ws[:point] + "." + ws[point:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, ins)
	}
	if neg {
		d = d.Neg()
	}
	v, _ := d.Mul(decimal.NewFromFloat(unit)).Float64()
	return v, nil
}
