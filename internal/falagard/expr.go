package falagard

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/udim"
)

// ExpressionDim computes a value from an infix expression such as
// "width - 2 * {0,4}" or "max(Client.width, image.Arrow.width)". The
// expression is compiled on first use and again whenever it changes.
type ExpressionDim struct {
	Expr string

	compiled string
	program  []instr
}

// NewExpression compiles expr, reporting syntax errors immediately
func NewExpression(expr string) (*ExpressionDim, error) {
	e := &ExpressionDim{Expr: expr}
	if err := e.compile(); err != nil {
		return nil, err
	}
	return e, nil
}

// SetExpression replaces the expression; it is compiled on next use
func (e *ExpressionDim) SetExpression(expr string) { e.Expr = expr }

func (e *ExpressionDim) compile() error {
	if e.program != nil && e.compiled == e.Expr {
		return nil
	}
	prog, err := parseExpression(e.Expr)
	if err != nil {
		return err
	}
	e.program, e.compiled = prog, e.Expr
	return nil
}

func (e *ExpressionDim) Value(ctx *Context, typ DimensionType) (float32, error) {
	if err := e.compile(); err != nil {
		return 0, err
	}
	v, err := run(e.program, ctx, typ)
	if err != nil {
		return 0, fmt.Errorf("expression %q: %w", e.Expr, err)
	}
	return v, nil
}

// Eval compiles and evaluates expr in ctx as a value of type typ
func Eval(ctx *Context, expr string, typ DimensionType) (float32, error) {
	e, err := NewExpression(expr)
	if err != nil {
		return 0, err
	}
	return e.Value(ctx, typ)
}

type opcode int

const (
	opPush opcode = iota
	opUnified
	opOperand
	opNeg
	opBinary
)

// instr is one step of a compiled expression
type instr struct {
	code    opcode
	num     float32
	unified udim.UDim
	path    []string
	op      Operator
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokUnified
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind    tokenKind
	pos     int
	text    string
	num     float32
	unified udim.UDim
	path    []string
}

func syntaxError(expr string, pos int, format string, args ...any) error {
	return guierr.InvalidRequest("expression %q at offset %d: %s", expr, pos, fmt.Sprintf(format, args...))
}

func lex(expr string) ([]token, error) {
	var toks []token
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i, text: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i, text: ")"})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, pos: i, text: ","})
			i++
		case strings.IndexByte("+-*/", c) >= 0:
			toks = append(toks, token{kind: tokOp, pos: i, text: string(c)})
			i++
		case c == '{':
			end := strings.IndexByte(expr[i:], '}')
			if end < 0 {
				return nil, syntaxError(expr, i, "unterminated unified dimension")
			}
			d, err := parseUnified(expr[i+1 : i+end])
			if err != nil {
				return nil, syntaxError(expr, i, "%v", err)
			}
			toks = append(toks, token{kind: tokUnified, pos: i, text: expr[i : i+end+1], unified: d})
			i += end + 1
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(expr) && (expr[i] >= '0' && expr[i] <= '9' || expr[i] == '.') {
				i++
			}
			f, err := strconv.ParseFloat(expr[start:i], 32)
			if err != nil {
				return nil, syntaxError(expr, start, "malformed number %q", expr[start:i])
			}
			toks = append(toks, token{kind: tokNumber, pos: start, text: expr[start:i], num: float32(f)})
		case c == '_' || c == '"' || unicode.IsLetter(rune(c)):
			t, n, err := lexIdent(expr, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, t)
			i = n
		default:
			return nil, syntaxError(expr, i, "unexpected character %q", c)
		}
	}
	return toks, nil
}

// lexIdent reads a dotted name. Quoted segments may hold any character
// other than a quote, so image names containing '/' or '.' can be written
// as image."Skin/Arrow".width.
func lexIdent(expr string, start int) (token, int, error) {
	var path []string
	var seg strings.Builder
	i := start
scan:
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == '"':
			end := strings.IndexByte(expr[i+1:], '"')
			if end < 0 {
				return token{}, 0, syntaxError(expr, i, "unterminated quoted name")
			}
			seg.WriteString(expr[i+1 : i+1+end])
			i += end + 2
		case c == '.':
			path = append(path, seg.String())
			seg.Reset()
			i++
		case c == '_' || unicode.IsLetter(rune(c)) || c >= '0' && c <= '9':
			seg.WriteByte(c)
			i++
		default:
			break scan
		}
	}
	path = append(path, seg.String())
	for _, p := range path {
		if p == "" {
			return token{}, 0, syntaxError(expr, start, "empty name segment in %q", expr[start:i])
		}
	}
	return token{kind: tokIdent, pos: start, text: expr[start:i], path: path}, i, nil
}

// parseUnified reads the inside of {s,o}. A lone number is a scale when it
// contains a decimal point and an offset otherwise.
func parseUnified(body string) (udim.UDim, error) {
	body = strings.TrimSpace(body)
	if strings.Contains(body, ",") {
		return udim.ParseUDim("{" + body + "}")
	}
	f, err := strconv.ParseFloat(body, 32)
	if err != nil {
		return udim.UDim{}, fmt.Errorf("malformed unified dimension {%s}", body)
	}
	if strings.Contains(body, ".") {
		return udim.Rel(float32(f)), nil
	}
	return udim.Abs(float32(f)), nil
}

// stack entries used while converting to RPN
type pending struct {
	kind  tokenKind
	text  string
	pos   int
	unary bool
	fn    Operator
	args  int
}

func precedence(p pending) int {
	switch {
	case p.unary:
		return 3
	case p.text == "*" || p.text == "/":
		return 2
	}
	return 1
}

func binaryOp(s string) Operator {
	switch s {
	case "+":
		return OpAdd
	case "-":
		return OpSubtract
	case "*":
		return OpMultiply
	}
	return OpDivide
}

func emit(prog []instr, p pending) []instr {
	if p.unary {
		return append(prog, instr{code: opNeg})
	}
	return append(prog, instr{code: opBinary, op: binaryOp(p.text)})
}

// parseExpression converts expr to RPN with the shunting-yard algorithm
func parseExpression(expr string) ([]instr, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, syntaxError(expr, 0, "empty expression")
	}

	var prog []instr
	var ops []pending
	// operand is true when the previous token ended a value
	operand := false
	for i, t := range toks {
		switch t.kind {
		case tokNumber, tokUnified, tokIdent:
			if operand {
				return nil, syntaxError(expr, t.pos, "unexpected %q", t.text)
			}
			if t.kind == tokIdent && i+1 < len(toks) && toks[i+1].kind == tokLParen {
				fn, ok := functionOp(t.path)
				if !ok {
					return nil, syntaxError(expr, t.pos, "unknown function %q", t.text)
				}
				ops = append(ops, pending{kind: tokIdent, text: t.text, pos: t.pos, fn: fn, args: 1})
				continue
			}
			switch t.kind {
			case tokNumber:
				prog = append(prog, instr{code: opPush, num: t.num})
			case tokUnified:
				prog = append(prog, instr{code: opUnified, unified: t.unified})
			default:
				prog = append(prog, instr{code: opOperand, path: t.path})
			}
			operand = true

		case tokOp:
			if !operand {
				if t.text != "-" {
					return nil, syntaxError(expr, t.pos, "unexpected operator %q", t.text)
				}
				ops = append(ops, pending{kind: tokOp, text: t.text, pos: t.pos, unary: true})
				continue
			}
			cur := pending{kind: tokOp, text: t.text, pos: t.pos}
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind != tokOp || precedence(top) < precedence(cur) {
					break
				}
				prog = emit(prog, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, cur)
			operand = false

		case tokLParen:
			if operand {
				return nil, syntaxError(expr, t.pos, "unexpected '('")
			}
			ops = append(ops, pending{kind: tokLParen, pos: t.pos})

		case tokComma, tokRParen:
			if !operand {
				return nil, syntaxError(expr, t.pos, "unexpected %q", t.text)
			}
			for len(ops) > 0 && ops[len(ops)-1].kind == tokOp {
				prog = emit(prog, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 || ops[len(ops)-1].kind != tokLParen {
				return nil, syntaxError(expr, t.pos, "unbalanced %q", t.text)
			}
			// the '(' sits above its function, if any
			fnAt := len(ops) - 2
			isCall := fnAt >= 0 && ops[fnAt].kind == tokIdent
			if t.kind == tokComma {
				if !isCall {
					return nil, syntaxError(expr, t.pos, "',' outside a function call")
				}
				ops[fnAt].args++
				operand = false
				continue
			}
			ops = ops[:len(ops)-1]
			if isCall {
				fn := ops[fnAt]
				if fn.args != 2 {
					return nil, syntaxError(expr, fn.pos, "%s takes 2 arguments, got %d", fn.text, fn.args)
				}
				prog = append(prog, instr{code: opBinary, op: fn.fn})
				ops = ops[:fnAt]
			}
		}
	}
	if !operand {
		return nil, syntaxError(expr, len(expr), "unexpected end of expression")
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.kind != tokOp {
			return nil, syntaxError(expr, top.pos, "unbalanced '('")
		}
		prog = emit(prog, top)
		ops = ops[:len(ops)-1]
	}
	return prog, nil
}

func functionOp(path []string) (Operator, bool) {
	if len(path) != 1 {
		return OpNoop, false
	}
	switch strings.ToLower(path[0]) {
	case "min":
		return OpMin, true
	case "max":
		return OpMax, true
	}
	return OpNoop, false
}

func run(prog []instr, ctx *Context, typ DimensionType) (float32, error) {
	stack := make([]float32, 0, len(prog))
	for _, in := range prog {
		switch in.code {
		case opPush:
			stack = append(stack, in.num)
		case opUnified:
			v, err := ctx.resolveAxis(in.unified, typ)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)
		case opOperand:
			v, err := operandValue(ctx, in.path, typ)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)
		case opNeg:
			stack[len(stack)-1] = -stack[len(stack)-1]
		case opBinary:
			n := len(stack)
			stack = append(stack[:n-2], in.op.Apply(stack[n-2], stack[n-1]))
		}
	}
	return stack[0], nil
}

func sizeField(field string, w, h float32) (float32, bool) {
	switch field {
	case "width":
		return w, true
	case "height":
		return h, true
	}
	return 0, false
}

func operandValue(ctx *Context, path []string, typ DimensionType) (float32, error) {
	name := strings.Join(path, ".")
	switch {
	case len(path) == 1:
		sz := ctx.Window.PixelSize()
		if v, ok := sizeField(path[0], sz.Width, sz.Height); ok {
			return v, nil
		}
	case len(path) == 2 && path[0] == "parent":
		sz := ctx.Window.ParentPixelSize()
		if v, ok := sizeField(path[1], sz.Width, sz.Height); ok {
			return v, nil
		}
	case len(path) == 2 && path[0] == "container":
		sz := ctx.base()
		if v, ok := sizeField(path[1], sz.Width, sz.Height); ok {
			return v, nil
		}
	case len(path) == 2 && path[0] == "prop":
		return propertyOperand(ctx, path[1], typ)
	case len(path) == 2 && path[0] == "font":
		f := ctx.Window.Font()
		switch path[1] {
		case "lineSpacing":
			if f == nil {
				return 0, nil
			}
			return f.LineSpacing(), nil
		case "baseline":
			if f == nil {
				return 0, nil
			}
			return f.Baseline(), nil
		}
	case len(path) == 3 && path[0] == "image":
		switch path[2] {
		case "width":
			return imageMetric(ctx.Window, path[1], DimWidth)
		case "height":
			return imageMetric(ctx.Window, path[1], DimHeight)
		}
	case len(path) == 2:
		r, err := ctx.namedArea(nil, path[0])
		if err != nil {
			return 0, err
		}
		switch path[1] {
		case "left":
			return r.Min.X, nil
		case "top":
			return r.Min.Y, nil
		case "right":
			return r.Max.X, nil
		case "bottom":
			return r.Max.Y, nil
		case "width":
			return r.Width(), nil
		case "height":
			return r.Height(), nil
		}
	}
	return 0, guierr.InvalidRequest("unknown operand %q", name)
}

// propertyOperand reads a float property, or a UDim property resolved
// against the window size on the axis of typ.
func propertyOperand(ctx *Context, name string, typ DimensionType) (float32, error) {
	s, err := ctx.Window.Property(name)
	if err != nil {
		return 0, err
	}
	if v, err := parseScalar(name, s); err == nil {
		return v, nil
	}
	d, err := udim.ParseUDim(s)
	if err != nil {
		return 0, guierr.InvalidRequest("property %q value %q is neither a number nor a unified dimension", name, s)
	}
	sz := ctx.Window.PixelSize()
	switch {
	case typ.Horizontal():
		return d.Resolve(sz.Width), nil
	case typ.Vertical():
		return d.Resolve(sz.Height), nil
	}
	return 0, guierr.InvalidRequest("property %q holds a unified dimension but %s has no axis", name, typ)
}
