package builtin

import (
	"strconv"

	"github.com/akovalkov/m4-processor/macro"
)

// bDivert implements divert(n?) (spec §4.6): switch current diversion
// to n, defaulting to 0; negative n discards subsequent shipped text.
func bDivert(h macro.Host, args []macro.Value) (string, error) {
	n := 0
	if len(args) > 1 {
		n, _ = strconv.Atoi(args[1].Str())
	}
	h.Divert(n)
	return "", nil
}

// bDivnum implements divnum: the current diversion id as a string.
func bDivnum(h macro.Host, args []macro.Value) (string, error) {
	return strconv.Itoa(h.DivNum()), nil
}

// bUndivert implements undivert(n+) / undivert() (spec §4.6 and §4.7):
// named diversions are flushed into the current one in id order; no
// arguments flushes every other diversion.
func bUndivert(h macro.Host, args []macro.Value) (string, error) {
	if len(args) == 1 {
		return "", h.UndivertAll()
	}
	ids := make([]int, 0, len(args)-1)
	for _, a := range args[1:] {
		n, err := strconv.Atoi(a.Str())
		if err != nil {
			continue // non-numeric undivert argument is silently skipped, per GNU m4
		}
		ids = append(ids, n)
	}
	return "", h.Undivert(ids)
}
