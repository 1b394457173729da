package macro

import (
	"strconv"
	"strings"
)

// ExpandText substitutes $-references in a text-macro body, per spec
// §4.5. The scanning loop (find the next sigil, copy the literal span
// before it, dispatch on what follows) is the same shape as the
// teacher's expand.go expandSigils, generalized from mk's ${name} variable
// syntax to m4's $0.."$9"/$#/$*/$@ positional-parameter syntax; semantics
// follow original_source/m4_processor.py's expand_user_macro.
func ExpandText(body string, args []Value, leftQuote, rightQuote string) string {
	var out strings.Builder
	offset := 0
	for {
		idx := strings.IndexByte(body[offset:], '$')
		if idx < 0 {
			out.WriteString(body[offset:])
			return out.String()
		}
		idx += offset
		out.WriteString(body[offset:idx])

		if idx+1 >= len(body) {
			out.WriteByte('$')
			return out.String()
		}

		next := body[idx+1]
		switch {
		case next >= '0' && next <= '9':
			j := idx + 1
			for j < len(body) && body[j] >= '0' && body[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(body[idx+1 : j])
			if n < len(args) {
				out.WriteString(args[n].Str())
			}
			offset = j

		case next == '#':
			out.WriteString(strconv.Itoa(len(args) - 1))
			offset = idx + 2

		case next == '*':
			out.WriteString(joinArgs(args[1:], ",", "", ""))
			offset = idx + 2

		case next == '@':
			out.WriteString(joinArgs(args[1:], ",", leftQuote, rightQuote))
			offset = idx + 2

		default:
			// "any other $x is kept literally as $ followed by x" (spec §4.5).
			out.WriteByte('$')
			offset = idx + 1
		}
	}
}

func joinArgs(args []Value, sep, lq, rq string) string {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(lq)
		b.WriteString(a.Str())
		b.WriteString(rq)
	}
	return b.String()
}
