// Package trace implements the debug/trace sideband sink (spec §4.8): a
// bitmask of verbosity flags, "m4trace:"-prefixed pre/post records, and
// a destination that defaults to stderr but can be redirected by
// debugfile().
//
// Grounded on the teacher's mkMsgMutex-guarded print helpers in mk.go
// (mkPrintMessage et al., serializing writes to a shared sink), with
// colorization and structured dumps drawn from the pack's scripting-
// language manifests (deepnoodle-ai-risor's fatih/color + go-isatty
// pairing; the teacher lineage's own sanity-io/litter dependency).
package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sanity-io/litter"

	"github.com/akovalkov/m4-processor/macro"
)

// Flag is a bit in the trace verbosity mask (spec §4.8).
type Flag uint32

const (
	FlagArgs Flag = 1 << iota
	FlagExpansion
	FlagQuotes
	FlagAll // trace every macro call regardless of per-macro traced flag
	FlagLine
	FlagFile
	FlagPathSearch
	FlagCallMarker
	FlagInputChange
	FlagCallID
	FlagVerbose
)

// DefaultFlags matches GNU m4's default trace verbosity: call marker,
// arguments, and line numbers.
const DefaultFlags = FlagCallMarker | FlagArgs | FlagLine

// flagLetters is the GNU m4 debugmode()/traceon() letter vocabulary.
var flagLetters = map[byte]Flag{
	'a': FlagArgs,
	'e': FlagExpansion,
	'q': FlagQuotes,
	't': FlagAll,
	'l': FlagLine,
	'f': FlagFile,
	'p': FlagPathSearch,
	'c': FlagCallMarker,
	'i': FlagInputChange,
	'x': FlagCallID,
	'V': FlagVerbose,
}

// Sink is the processor's tracing and debug-output destination.
type Sink struct {
	w         io.Writer
	ownedFile *os.File
	flags     Flag
	color     bool

	globalTrace bool
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w, flags: DefaultFlags, color: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetOutput redirects the sink, closing a previously-owned debug file.
func (s *Sink) SetOutput(w io.Writer) {
	if s.ownedFile != nil {
		s.ownedFile.Close()
		s.ownedFile = nil
	}
	s.w = w
	s.color = isTerminal(w)
}

// SetOutputFile implements debugfile(path); path == "" restores stderr.
func (s *Sink) SetOutputFile(path string) error {
	if path == "" {
		s.SetOutput(os.Stderr)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	s.ownedFile = f
	s.SetOutput(f)
	return nil
}

// SetFlags parses a debugmode()-style letter string into the bitmask. A
// leading '+' or '-' adjusts the current mask instead of replacing it.
func (s *Sink) SetFlags(spec string) error {
	if spec == "" {
		s.flags = DefaultFlags
		return nil
	}
	mode := byte(0)
	i := 0
	if spec[0] == '+' || spec[0] == '-' {
		mode = spec[0]
		i = 1
	} else {
		s.flags = 0
	}
	for ; i < len(spec); i++ {
		bit, ok := flagLetters[spec[i]]
		if !ok {
			return fmt.Errorf("invalid debug flag: %q", spec[i])
		}
		if mode == '-' {
			s.flags &^= bit
		} else {
			s.flags |= bit
		}
	}
	return nil
}

func (s *Sink) SetGlobalTrace(on bool) { s.globalTrace = on }

func (s *Sink) ShouldTrace(macroTraced bool) bool {
	return s.globalTrace || s.flags&FlagAll != 0 || macroTraced
}

func (s *Sink) prefix(callID int, name string) string {
	p := "m4trace: "
	if s.flags&FlagCallID != 0 {
		p += fmt.Sprintf("-%d- ", callID)
	}
	p += name
	if s.color {
		return color.New(color.FgCyan).Sprint(p)
	}
	return p
}

// PrePre emits the prepre-expansion record (spec §4.4 step 3): the
// call is announced before arguments have even been collected.
func (s *Sink) PrePre(callID int, name string) {
	if s.flags&FlagCallMarker == 0 {
		return
	}
	fmt.Fprintln(s.w, s.prefix(callID, name))
}

// Pre emits the pre-expansion record (spec §4.8), e.g.
// "m4trace: -1- foo(`a', `b')".
func (s *Sink) Pre(callID int, name string, args []string) {
	line := s.prefix(callID, name)
	if s.flags&FlagArgs != 0 && len(args) > 0 {
		line += "(" + strings.Join(quoteAll(args), ", ") + ")"
	}
	fmt.Fprintln(s.w, line)
}

// Post emits the post-expansion record, appending " -> result" when
// FlagExpansion is set.
func (s *Sink) Post(callID int, name, result string) {
	if s.flags&FlagExpansion == 0 {
		return
	}
	line := s.prefix(callID, name)
	fmt.Fprintf(s.w, "%s -> %s\n", line, quote(result))
}

func quoteAll(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = quote(a)
	}
	return out
}

func quote(s string) string { return "`" + s + "'" }

// DumpDefinition writes a single macro's definition to the sink, per
// dumpdef(). Verbose mode (FlagVerbose) pretty-prints the full
// definition struct with litter instead of the usual one-liner.
func (s *Sink) DumpDefinition(name string, def *macro.Definition) {
	if def == nil {
		fmt.Fprintf(s.w, "%s: undefined\n", name)
		return
	}
	if s.flags&FlagVerbose != 0 {
		fmt.Fprintf(s.w, "%s:\n%s\n", name, litter.Sdump(def))
		return
	}
	if def.DocComment != "" {
		fmt.Fprint(s.w, def.DocComment)
	}
	switch def.Kind {
	case macro.KindBuiltin:
		fmt.Fprintf(s.w, "%s: <%s>\n", name, def.Name)
	default:
		fmt.Fprintf(s.w, "%s:\t`%s'\n", name, def.Body)
	}
}
