// Package calculator evaluates aperture macro arithmetic.
//
// Expressions use + - / and x (or X) for multiplication, unary signs,
// parentheses, decimal constants and $n variables.
package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

var (
	ErrSyntax            = errors.New("expression syntax error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrDivisionByZero    = errors.New("division by zero")
)

// Env binds variable names ("$1", "$2", ...) to values.
type Env map[string]float64

type Calculator interface {
	Calc(env Env) (float64, error)
}

type Operand struct {
	variableName string
	value        float64
	operation    *Operation
}

func (op *Operand) Calc(env Env) (float64, error) {
	if op.operation != nil {
		return op.operation.Calc(env)
	}
	if op.variableName != "" {
		v, ok := env[op.variableName]
		if !ok {
			return 0, fmt.Errorf("%w %s", ErrUndefinedVariable, op.variableName)
		}
		return v, nil
	}
	return op.value, nil
}

func (op *Operand) String() string {
	if op.operation != nil {
		return op.operation.String()
	}
	if op.variableName != "" {
		return op.variableName
	}
	return strconv.FormatFloat(op.value, 'f', -1, 64)
}

type Operation struct {
	firstOperand  *Operand
	secondOperand *Operand
	operation     OpCode
}

type OpCode int

const (
	Nop OpCode = iota
	Add
	Sub
	Mul
	Div
	Neg
	Plus
)

func (oc OpCode) String() string {
	switch oc {
	case Add, Plus:
		return "+ "
	case Sub, Neg:
		return "- "
	case Mul:
		return "x "
	case Div:
		return "/ "
	case Nop:
		return "<nop> "
	default:
		return "bad OpCode "
	}
}

func (op *Operation) Calc(env Env) (float64, error) {
	if op.firstOperand == nil {
		return 0, errors.New("calculator: first operand = nil")
	}
	a, err := op.firstOperand.Calc(env)
	if err != nil {
		return 0, err
	}
	switch op.operation {
	case Neg:
		return -a, nil
	case Plus:
		return a, nil
	}
	if op.secondOperand == nil {
		return 0, errors.New("calculator: second operand = nil")
	}
	b, err := op.secondOperand.Calc(env)
	if err != nil {
		return 0, err
	}
	switch op.operation {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, errors.New("calculator: bad opcode " + strconv.Itoa(int(op.operation)))
	}
}

func (op *Operation) String() string {
	if op.operation == Neg || op.operation == Plus {
		return "(" + op.operation.String() + op.firstOperand.String() + ")"
	}
	return "(" + op.firstOperand.String() + " " + op.operation.String() + op.secondOperand.String() + ")"
}

/*
######################### tokenizer #########################################
*/

const (
	tokNumber int = iota + 1
	tokVariable
	tokOperator
)

var (
	lexer    *lexmachine.Lexer
	lexerErr error
	initOnce sync.Once
)

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func getLexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		l := lexmachine.NewLexer()
		l.Add([]byte(`[0-9]+(\.[0-9]*)?`), makeToken(tokNumber))
		l.Add([]byte(`\.[0-9]+`), makeToken(tokNumber))
		l.Add([]byte(`[$][0-9]+`), makeToken(tokVariable))
		l.Add([]byte(`[\+\-\*/\(\)]`), makeToken(tokOperator))
		l.Add([]byte(`( |\t|\n|\r)+`), skip)
		lexerErr = l.Compile()
		lexer = l
	})
	return lexer, lexerErr
}

// Normalize rewrites the x/X multiplication sign to '*'.
func Normalize(expr string) string {
	return strings.NewReplacer("x", "*", "X", "*").Replace(expr)
}

func tokenize(expr string) ([]*lexmachine.Token, error) {
	lx, err := getLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lx.Scanner([]byte(expr))
	if err != nil {
		return nil, err
	}
	toks := make([]*lexmachine.Token, 0, 16)
	for tk, err, eof := sc.Next(); !eof; tk, err, eof = sc.Next() {
		if err != nil {
			return nil, fmt.Errorf("%w in %q: %v", ErrSyntax, expr, err)
		}
		toks = append(toks, tk.(*lexmachine.Token))
	}
	return toks, nil
}

/*
######################### parser #########################################
*/

type parser struct {
	src  string
	toks []*lexmachine.Token
	pos  int
}

func (p *parser) peek() *lexmachine.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return nil
}

func (p *parser) isOperator(ops string) (string, bool) {
	tk := p.peek()
	if tk == nil || tk.Type != tokOperator {
		return "", false
	}
	lexeme := tk.Value.(string)
	if !strings.Contains(ops, lexeme) {
		return "", false
	}
	return lexeme, true
}

func (p *parser) fail(what string) error {
	if tk := p.peek(); tk != nil {
		return fmt.Errorf("%w in %q: %s at column %d", ErrSyntax, p.src, what, tk.StartColumn)
	}
	return fmt.Errorf("%w in %q: %s at end of expression", ErrSyntax, p.src, what)
}

// expression := term { ('+' | '-') term }
func (p *parser) expression() (*Operand, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOperator("+-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		code := Add
		if op == "-" {
			code = Sub
		}
		left = &Operand{operation: &Operation{left, right, code}}
	}
}

// term := factor { ('*' | '/') factor }
func (p *parser) term() (*Operand, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOperator("*/")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		code := Mul
		if op == "/" {
			code = Div
		}
		left = &Operand{operation: &Operation{left, right, code}}
	}
}

// factor := ('+' | '-') factor | number | variable | '(' expression ')'
func (p *parser) factor() (*Operand, error) {
	if op, ok := p.isOperator("+-"); ok {
		p.pos++
		f, err := p.factor()
		if err != nil {
			return nil, err
		}
		code := Plus
		if op == "-" {
			code = Neg
		}
		return &Operand{operation: &Operation{f, nil, code}}, nil
	}
	if _, ok := p.isOperator("("); ok {
		p.pos++
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, ok := p.isOperator(")"); !ok {
			return nil, p.fail("missing ')'")
		}
		p.pos++
		return e, nil
	}
	tk := p.peek()
	if tk == nil {
		return nil, p.fail("operand expected")
	}
	switch tk.Type {
	case tokNumber:
		v, err := strconv.ParseFloat(tk.Value.(string), 64)
		if err != nil {
			return nil, p.fail("bad number")
		}
		p.pos++
		return &Operand{value: v}, nil
	case tokVariable:
		p.pos++
		return &Operand{variableName: tk.Value.(string)}, nil
	}
	return nil, p.fail("operand expected")
}

// NewOperand parses an expression into an evaluation tree.
func NewOperand(expr string) (*Operand, error) {
	expr = Normalize(expr)
	toks, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	p := &parser{src: expr, toks: toks}
	op, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, p.fail("unexpected token")
	}
	return op, nil
}

// CalcExpression parses and evaluates expr against env.
func CalcExpression(expr string, env Env) (float64, error) {
	op, err := NewOperand(expr)
	if err != nil {
		return 0, err
	}
	return op.Calc(env)
}
