package builtin

import "github.com/akovalkov/m4-processor/macro"

// bChangequote implements changequote([l[,r]]) (spec §4.6): zero args
// restores the defaults, one arg sets the left delimiter only.
func bChangequote(h macro.Host, args []macro.Value) (string, error) {
	switch len(args) - 1 {
	case 0:
		h.SetQuotes("`", "'")
	case 1:
		h.SetQuotes(args[1].Str(), "'")
	default:
		h.SetQuotes(args[1].Str(), args[2].Str())
	}
	return "", nil
}

// bChangecom mirrors bChangequote's pattern for comment delimiters
// (spec §4.6): zero args restores the defaults.
func bChangecom(h macro.Host, args []macro.Value) (string, error) {
	switch len(args) - 1 {
	case 0:
		h.SetComments("#", "\n")
	case 1:
		h.SetComments(args[1].Str(), "\n")
	default:
		h.SetComments(args[1].Str(), args[2].Str())
	}
	return "", nil
}

// bDnl implements dnl: consume characters through and including the
// next newline (or EOF, with a warning), discarding them.
func bDnl(h macro.Host, args []macro.Value) (string, error) {
	if err := h.SkipLine(); err != nil {
		h.Errprint("dnl: warning: end of file treated as end of line\n")
	}
	return "", nil
}
