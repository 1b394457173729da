package builtin

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/akovalkov/m4-processor/macro"
)

// normalizeRegex translates m4's backslash-escaped metacharacter
// convention (\(, \), \{, \}) to Go/RE2's unescaped grouping syntax
// before compilation, per spec §4.6 ("the implementation normalizes
// \( -> ( etc. before compilation"). See DESIGN.md for why this project
// carries a stdlib regexp carve-out instead of a pack third-party
// engine.
func normalizeRegex(pat string) string {
	var out strings.Builder
	for i := 0; i < len(pat); i++ {
		if pat[i] == '\\' && i+1 < len(pat) {
			switch pat[i+1] {
			case '(', ')', '{', '}':
				out.WriteByte(pat[i+1])
				i++
				continue
			}
		}
		out.WriteByte(pat[i])
	}
	return out.String()
}

// translateReplacement turns m4's \0/&/\1.."\9" backreference syntax
// into Go's ReplaceAllString ${0}/${1}.."${9}" syntax. The braces keep a
// following letter, digit or underscore out of the group name.
func translateReplacement(repl string) string {
	var out strings.Builder
	for i := 0; i < len(repl); i++ {
		switch {
		case repl[i] == '&':
			out.WriteString("${0}")
		case repl[i] == '\\' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9':
			out.WriteString("${")
			out.WriteByte(repl[i+1])
			out.WriteByte('}')
			i++
		case repl[i] == '$':
			out.WriteString("$$")
		default:
			out.WriteByte(repl[i])
		}
	}
	return out.String()
}

// bPatsubst implements patsubst(s, regex, repl?) (spec §4.6): global
// regex substitution, empty repl deletes every match.
func bPatsubst(h macro.Host, args []macro.Value) (string, error) {
	re, err := regexp.Compile(normalizeRegex(args[2].Str()))
	if err != nil {
		return "", err
	}
	repl := ""
	if len(args) > 3 {
		repl = translateReplacement(args[3].Str())
	}
	return re.ReplaceAllString(args[1].Str(), repl), nil
}

// bRegexp implements regexp(s, regex[, repl]) (spec §4.6): without
// repl, returns the first match's byte offset or -1; with repl,
// returns the substituted replacement of the first match only, or
// empty if there is no match.
func bRegexp(h macro.Host, args []macro.Value) (string, error) {
	re, err := regexp.Compile(normalizeRegex(args[2].Str()))
	if err != nil {
		return "", err
	}
	s := args[1].Str()
	loc := re.FindStringSubmatchIndex(s)
	if len(args) <= 3 {
		if loc == nil {
			return "-1", nil
		}
		return strconv.Itoa(loc[0]), nil
	}
	if loc == nil {
		return "", nil
	}
	var out []byte
	out = re.ExpandString(out, translateReplacement(args[3].Str()), s, loc)
	return string(out), nil
}
