package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akovalkov/m4-processor/macro"
)

// bEval implements eval(expr[,radix[,width]]) (spec §4.6): a
// recursive-descent evaluator over +,-,*,/,%,comparisons,&&,||,!, and
// parentheses, rendered in the requested radix (10 required by spec;
// 8/16/2 supported too, per the Open Question decision in DESIGN.md)
// and zero-padded to width.
func bEval(h macro.Host, args []macro.Value) (string, error) {
	radix := 10
	if len(args) > 2 {
		r, err := strconv.Atoi(args[2].Str())
		if err != nil {
			return "", fmt.Errorf("eval: invalid radix %q", args[2].Str())
		}
		radix = r
	}
	width := 0
	if len(args) > 3 {
		width, _ = strconv.Atoi(args[3].Str())
	}

	p := &evalParser{src: args[1].Str()}
	v, err := p.parseOr()
	if err != nil {
		return "", fmt.Errorf("eval: %w", err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return "", fmt.Errorf("eval: unexpected trailing input %q", p.src[p.pos:])
	}
	return formatRadix(v, radix, width), nil
}

func formatRadix(v int64, radix, width int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	var digits string
	switch radix {
	case 8:
		digits = strconv.FormatInt(v, 8)
	case 16:
		digits = strconv.FormatInt(v, 16)
	case 2:
		digits = strconv.FormatInt(v, 2)
	default:
		digits = strconv.FormatInt(v, 10)
	}
	for len(digits) < width {
		digits = "0" + digits
	}
	if neg {
		digits = "-" + digits
	}
	return digits
}

// evalParser is a straightforward recursive-descent parser over the
// grammar (lowest to highest precedence): || , && , comparisons,
// + -, * / %, unary - + !, parenthesized/literal atoms. Grounded on
// original_source/m4_builtin.py's m4_eval, which walks the same
// precedence ladder with Python's own operators.
type evalParser struct {
	src string
	pos int
}

func (p *evalParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *evalParser) peekOp(ops ...string) string {
	p.skipSpace()
	for _, op := range ops {
		if strings.HasPrefix(p.src[p.pos:], op) {
			return op
		}
	}
	return ""
}

func (p *evalParser) parseOr() (int64, error) {
	v, err := p.parseAnd()
	if err != nil {
		return 0, err
	}
	for {
		if op := p.peekOp("||"); op != "" {
			p.pos += len(op)
			rhs, err := p.parseAnd()
			if err != nil {
				return 0, err
			}
			v = boolToInt(v != 0 || rhs != 0)
			continue
		}
		return v, nil
	}
}

func (p *evalParser) parseAnd() (int64, error) {
	v, err := p.parseCompare()
	if err != nil {
		return 0, err
	}
	for {
		if op := p.peekOp("&&"); op != "" {
			p.pos += len(op)
			rhs, err := p.parseCompare()
			if err != nil {
				return 0, err
			}
			v = boolToInt(v != 0 && rhs != 0)
			continue
		}
		return v, nil
	}
}

func (p *evalParser) parseCompare() (int64, error) {
	v, err := p.parseAdd()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peekOp("==", "!=", "<=", ">=", "<", ">")
		if op == "" {
			return v, nil
		}
		p.pos += len(op)
		rhs, err := p.parseAdd()
		if err != nil {
			return 0, err
		}
		switch op {
		case "==":
			v = boolToInt(v == rhs)
		case "!=":
			v = boolToInt(v != rhs)
		case "<=":
			v = boolToInt(v <= rhs)
		case ">=":
			v = boolToInt(v >= rhs)
		case "<":
			v = boolToInt(v < rhs)
		case ">":
			v = boolToInt(v > rhs)
		}
	}
}

func (p *evalParser) parseAdd() (int64, error) {
	v, err := p.parseMul()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peekOp("+", "-")
		if op == "" {
			return v, nil
		}
		p.pos += len(op)
		rhs, err := p.parseMul()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *evalParser) parseMul() (int64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op := p.peekOp("*", "/", "%")
		if op == "" {
			return v, nil
		}
		p.pos += len(op)
		rhs, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "*":
			v *= rhs
		case "/":
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v /= rhs
		case "%":
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			v %= rhs
		}
	}
}

func (p *evalParser) parseUnary() (int64, error) {
	if op := p.peekOp("-", "+", "!"); op != "" {
		p.pos += len(op)
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "-":
			return -v, nil
		case "!":
			return boolToInt(v == 0), nil
		default:
			return v, nil
		}
	}
	return p.parseAtom()
}

func (p *evalParser) parseAtom() (int64, error) {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		p.pos++
		v, err := p.parseOr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return 0, fmt.Errorf("missing ')'")
		}
		p.pos++
		return v, nil
	}
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9') {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("expected number at %q", p.src[p.pos:])
	}
	return strconv.ParseInt(p.src[start:p.pos], 10, 64)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
