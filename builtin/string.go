package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akovalkov/m4-processor/macro"
)

// bLen implements len(s).
func bLen(h macro.Host, args []macro.Value) (string, error) {
	return strconv.Itoa(len(args[1].Str())), nil
}

// bIndex implements index(needle, haystack): the offset of needle
// (arg1) within haystack (arg2); absent returns -1.
func bIndex(h macro.Host, args []macro.Value) (string, error) {
	return strconv.Itoa(strings.Index(args[2].Str(), args[1].Str())), nil
}

// bSubstr implements substr(s, start[, len]) with Python-style
// negative-safe clamping, per original_source/m4_builtin.py's m4_substr
// (one of the two drafts leaves a dangling reference here; §9 says to
// follow §4 and not reproduce the buggy form).
func bSubstr(h macro.Host, args []macro.Value) (string, error) {
	s := args[1].Str()
	start, err := strconv.Atoi(args[2].Str())
	if err != nil {
		return "", nil
	}
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		return "", nil
	}
	end := len(s)
	if len(args) > 3 {
		n, err := strconv.Atoi(args[3].Str())
		if err != nil {
			return "", nil
		}
		if start+n < end {
			end = start + n
		}
	}
	if end < start {
		end = start
	}
	return s[start:end], nil
}

// bTranslit implements translit(s, from, to?) (spec §4.6): character-
// by-character translation, with "from"/"to" supporting a-z-style
// ranges expanded in ASCII order, forward or reverse.
func bTranslit(h macro.Host, args []macro.Value) (string, error) {
	from := expandRanges(args[2].Str())
	to := ""
	if len(args) > 3 {
		to = expandRanges(args[3].Str())
	}

	mapping := make(map[rune]rune, len(from))
	deleted := make(map[rune]bool)
	fr := []rune(from)
	tr := []rune(to)
	for i, c := range fr {
		if i < len(tr) {
			mapping[c] = tr[i]
		} else {
			deleted[c] = true
		}
	}

	var out strings.Builder
	for _, c := range args[1].Str() {
		if deleted[c] {
			continue
		}
		if r, ok := mapping[c]; ok {
			out.WriteRune(r)
			continue
		}
		out.WriteRune(c)
	}
	return out.String(), nil
}

// expandRanges expands "a-z"-style ranges in a translit from/to
// argument, forward or reverse per the endpoints' ordinal order.
func expandRanges(s string) string {
	r := []rune(s)
	var out strings.Builder
	for i := 0; i < len(r); i++ {
		if i+2 < len(r) && r[i+1] == '-' {
			lo, hi := r[i], r[i+2]
			if lo <= hi {
				for c := lo; c <= hi; c++ {
					out.WriteRune(c)
				}
			} else {
				for c := lo; c >= hi; c-- {
					out.WriteRune(c)
				}
			}
			i += 2
			continue
		}
		out.WriteRune(r[i])
	}
	return out.String()
}

// bShift implements shift: arguments 2.., each quoted with the live
// quote delimiters and joined by commas (spec §4.6, reusing the same
// $@ join convention as textmacro.ExpandText).
func bShift(h macro.Host, args []macro.Value) (string, error) {
	cfg := h.Config()
	var rest []macro.Value
	if len(args) > 2 {
		rest = args[2:]
	}
	parts := make([]string, len(rest))
	for i, a := range rest {
		parts[i] = cfg.LeftQuote + a.Str() + cfg.RightQuote
	}
	return strings.Join(parts, ","), nil
}

// bIncr/bDecr implement incr(n)/decr(n): integer +-1 as a string.
func bIncr(h macro.Host, args []macro.Value) (string, error) {
	n, err := strconv.Atoi(args[1].Str())
	if err != nil {
		return "", fmt.Errorf("incr: not a number: %q", args[1].Str())
	}
	return strconv.Itoa(n + 1), nil
}

func bDecr(h macro.Host, args []macro.Value) (string, error) {
	n, err := strconv.Atoi(args[1].Str())
	if err != nil {
		return "", fmt.Errorf("decr: not a number: %q", args[1].Str())
	}
	return strconv.Itoa(n - 1), nil
}
