package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akovalkov/m4-processor/macro"
)

// bFormat implements format(fmt, ...) (spec §4.6): a printf-style
// formatter where %d/%i/%o/%x/%X/%u/%c coerce their argument to an
// integer and %e/%E/%f/%g/%G/%a/%A coerce to a float; %s passes
// through unchanged. Flags, width and precision are forwarded to Go's
// fmt together with the verb, since they share printf's grammar; an
// unrecognized verb is copied to the output as written.
func bFormat(h macro.Host, args []macro.Value) (string, error) {
	spec := args[1].Str()
	rest := args[2:]
	argi := 0
	next := func() string {
		if argi >= len(rest) {
			return ""
		}
		v := rest[argi].Str()
		argi++
		return v
	}

	var out strings.Builder
	for i := 0; i < len(spec); i++ {
		if spec[i] != '%' {
			out.WriteByte(spec[i])
			continue
		}
		j := i + 1
		for j < len(spec) && strings.ContainsRune("-+ 0#123456789.", rune(spec[j])) {
			j++
		}
		if j >= len(spec) {
			out.WriteByte('%')
			break
		}
		verb := spec[j]
		verbSpec := "%" + spec[i+1:j+1]
		switch verb {
		case '%':
			out.WriteByte('%')
		case 'd', 'i', 'o', 'x', 'X', 'u', 'c':
			n, _ := strconv.Atoi(next())
			goVerb := verbSpec
			if verb == 'i' || verb == 'u' {
				goVerb = goVerb[:len(goVerb)-1] + "d"
			}
			fmt.Fprintf(&out, goVerb, n)
		case 'e', 'E', 'f', 'g', 'G', 'a', 'A':
			fVal, _ := strconv.ParseFloat(next(), 64)
			goVerb := verbSpec
			// Go spells printf's hexadecimal-float %a/%A as %x/%X.
			if verb == 'a' {
				goVerb = goVerb[:len(goVerb)-1] + "x"
			} else if verb == 'A' {
				goVerb = goVerb[:len(goVerb)-1] + "X"
			}
			fmt.Fprintf(&out, goVerb, fVal)
		case 's':
			fmt.Fprintf(&out, verbSpec, next())
		default:
			out.WriteString(verbSpec)
		}
		i = j
	}
	return out.String(), nil
}
