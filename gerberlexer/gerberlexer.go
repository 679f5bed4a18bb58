// Package gerberlexer splits RS-274X text into data, parameter and macro blocks.
package gerberlexer

import (
	"errors"
	"fmt"
	"strings"
)

/*
The scanner has three modes.

Normal mode:
  G04 comment, terminated by '*', CR or LF. Dropped.
  %AM         enters macro mode.
  %           enters parameter mode.
  data block  a run without '*', '%', CR, LF, terminated by '*'.
  M02, M2     end of file, accepted without the trailing '*'.

Parameter mode:
  %           back to normal mode.
  block       a run up to '*'.

Macro mode:
  %           back to normal mode.
  statement   a run up to '*', may span lines.

CR and LF are ignored everywhere, blanks between blocks are skipped.
*/

var ErrUnterminated = errors.New("unterminated block")

type Delim byte

const (
	DataBlockTrailer Delim = '*'
	ExtCmdDelimiter  Delim = '%'
)

func (d Delim) String() string {
	switch d {
	case DataBlockTrailer:
		return "DBEND"
	case ExtCmdDelimiter:
		return "EXTCMD"
	default:
		return string(d)
	}
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenData
	TokenParam
	TokenMacro
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenData:
		return "data block"
	case TokenParam:
		return "parameter block"
	case TokenMacro:
		return "macro block"
	default:
	}
	return "unknown token"
}

// Token is one block. Data and parameter blocks keep their trailing '*',
// macro statements do not.
type Token struct {
	Kind TokenKind
	Text string
	Line int
	Col  int
}

func (t Token) String() string {
	return fmt.Sprintf("{%s:%q at %d:%d}", t.Kind, t.Text, t.Line, t.Col)
}

type mode int

const (
	modeNormal mode = iota
	modeParam
	modeMacro
)

type Lexer struct {
	name string
	buf  []byte
	pos  int
	line int
	col  int
	mode mode

	// start of the block being scanned
	tokLine, tokCol int
}

func NewLexer(name string, buf []byte) *Lexer {
	return &Lexer{name: name, buf: buf, line: 1, col: 1}
}

func (l *Lexer) Name() string {
	return l.name
}

// Position returns the line and column of the last block scanned.
func (l *Lexer) Position() (int, int) {
	return l.tokLine, l.tokCol
}

func (l *Lexer) advance() {
	if l.buf[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) skip(n int) {
	for i := 0; i < n && l.pos < len(l.buf); i++ {
		l.advance()
	}
}

func (l *Lexer) skipBlanks() {
	for l.pos < len(l.buf) {
		switch l.buf[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) hasPrefix(p string) bool {
	return strings.HasPrefix(string(l.buf[l.pos:min(len(l.buf), l.pos+len(p))]), p)
}

func (l *Lexer) mark() {
	l.tokLine, l.tokCol = l.line, l.col
}

// Next returns the next block, or a TokenEOF token at the end of input.
func (l *Lexer) Next() (Token, error) {
	for {
		l.skipBlanks()
		l.mark()
		if l.pos >= len(l.buf) {
			if l.mode != modeNormal {
				return Token{}, fmt.Errorf("%w: end of file inside %%...%%", ErrUnterminated)
			}
			return Token{Kind: TokenEOF, Line: l.line, Col: l.col}, nil
		}
		switch l.mode {
		case modeNormal:
			if l.hasPrefix("%AM") {
				l.skip(3)
				l.mode = modeMacro
				continue
			}
			if l.buf[l.pos] == byte(ExtCmdDelimiter) {
				l.skip(1)
				l.mode = modeParam
				continue
			}
			if l.hasPrefix("G04") || l.hasPrefix("G4") {
				l.comment()
				continue
			}
			return l.dataBlock()
		case modeParam, modeMacro:
			if l.buf[l.pos] == byte(ExtCmdDelimiter) {
				l.skip(1)
				l.mode = modeNormal
				continue
			}
			return l.extBlock()
		}
	}
}

func (l *Lexer) comment() {
	for l.pos < len(l.buf) {
		c := l.buf[l.pos]
		l.advance()
		if c == byte(DataBlockTrailer) || c == '\r' || c == '\n' {
			return
		}
	}
}

func (l *Lexer) dataBlock() (Token, error) {
	start := l.pos
	end := start
	for end < len(l.buf) {
		c := l.buf[end]
		if c == byte(DataBlockTrailer) || c == byte(ExtCmdDelimiter) || c == '\r' || c == '\n' {
			break
		}
		end++
	}
	if end < len(l.buf) && l.buf[end] == byte(DataBlockTrailer) {
		text := strings.TrimSpace(string(l.buf[start:end]))
		l.skip(end + 1 - start)
		return Token{Kind: TokenData, Text: text + "*", Line: l.tokLine, Col: l.tokCol}, nil
	}
	// end of file without the trailer
	for _, eof := range []string{"M02", "M2"} {
		if l.hasPrefix(eof) {
			l.skip(len(eof))
			return Token{Kind: TokenData, Text: FormatGCode("M", "2") + "*", Line: l.tokLine, Col: l.tokCol}, nil
		}
	}
	return Token{}, fmt.Errorf("%w: %q", ErrUnterminated, snippet(l.buf[start:end]))
}

func (l *Lexer) extBlock() (Token, error) {
	var sb strings.Builder
	for l.pos < len(l.buf) {
		c := l.buf[l.pos]
		switch c {
		case byte(DataBlockTrailer):
			l.advance()
			text := strings.TrimSpace(sb.String())
			if l.mode == modeMacro {
				return Token{Kind: TokenMacro, Text: text, Line: l.tokLine, Col: l.tokCol}, nil
			}
			return Token{Kind: TokenParam, Text: text + "*", Line: l.tokLine, Col: l.tokCol}, nil
		case byte(ExtCmdDelimiter):
			return Token{}, fmt.Errorf("%w: %q", ErrUnterminated, snippet([]byte(sb.String())))
		case '\r', '\n':
		default:
			sb.WriteByte(c)
		}
		l.advance()
	}
	return Token{}, fmt.Errorf("%w: end of file inside %%...%%", ErrUnterminated)
}

func snippet(b []byte) string {
	const maxLen = 32
	if len(b) > maxLen {
		return string(b[:maxLen]) + "..."
	}
	return string(b)
}

// deletes leading '0'
func FormatGCode(sym string, num string) string {

	if num == "" {
		return sym
	}

	num = strings.TrimLeft(num, "0")

	if len(num) == 1 {
		return sym + "0" + num
	}
	if len(num) == 0 {
		return sym + "00"
	}

	return sym + num
}
