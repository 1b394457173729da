package expand

import (
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/akovalkov/m4-processor/input"
	"github.com/akovalkov/m4-processor/macro"
)

var errEOF = errors.New("unexpected end of file")

func writeRaw(w io.Writer, s string) { io.WriteString(w, s) }

// The methods in this file satisfy macro.Host, the narrow contract
// builtin handlers are invoked against (see macro/host.go for why this
// split exists).

func (p *Processor) Define(name string, def *macro.Definition)   { p.table.Insert(name, def) }
func (p *Processor) Pushdef(name string, def *macro.Definition)   { p.table.Pushdef(name, def) }
func (p *Processor) Popdef(name string)                           { p.table.Popdef(name) }
func (p *Processor) Undefine(name string)                         { p.table.Undefine(name) }
func (p *Processor) Lookup(name string) (*macro.Definition, bool) { return p.table.Lookup(name) }

// CanonicalBuiltin returns the pristine builtin registered under name
// at startup, bypassing any user redefinition; used by builtin().
func (p *Processor) CanonicalBuiltin(name string) (*macro.Definition, bool) {
	def, ok := p.canonical[name]
	return def, ok
}

// DumpDefinitions implements dumpdef's sink-writing half; with no
// names given, every currently-defined macro is dumped.
func (p *Processor) DumpDefinitions(names []string) {
	if len(names) == 0 {
		names = p.table.Names()
	}
	for _, name := range names {
		def, _ := p.table.Lookup(name)
		p.trace.DumpDefinition(name, def)
	}
}

// PendingDocComment returns the doc-comment buffer accumulated since the
// last newline (spec §4.4), for define/pushdef to attach to the
// definition they're about to register.
func (p *Processor) PendingDocComment() string { return p.docComment }

func (p *Processor) PushString(s string) { p.stack.PushString(s) }

// PushFile implements include()/sinclude()'s file-push half: resolve
// via the configured include path/resolver, then push it as a new
// source. silent suppresses the open error, per sinclude's contract.
func (p *Processor) PushFile(name string, silent bool) error {
	content, display, err := p.cfg.ResolveInclude(name)
	if err != nil {
		if silent {
			return nil
		}
		return err
	}
	p.stack.PushFile(display, content)
	return nil
}

func (p *Processor) PushMacroHandle(def *macro.Definition) { p.stack.PushMacro(def) }

func (p *Processor) CurrentFile() (string, int, bool) { return p.stack.CurrentFile() }

// SkipLine implements dnl's character-consuming half: read and
// discard through the next newline, or report EOF.
func (p *Processor) SkipLine() error {
	for {
		r, sentinel := p.stack.NextRune()
		if sentinel == input.EOF {
			return errEOF
		}
		if r == '\n' {
			return nil
		}
	}
}

func (p *Processor) Divert(n int)  { p.divert.SetCurrent(n) }
func (p *Processor) DivNum() int   { return p.divert.Current() }

func (p *Processor) Undivert(ids []int) error { return p.divert.Undivert(ids) }
func (p *Processor) UndivertAll() error       { return p.divert.UndivertAll() }

// SetTrace implements traceon/traceoff: empty name toggles the global
// flag, otherwise the named macro's per-definition Traced flag.
func (p *Processor) SetTrace(name string, on bool) {
	if name == "" {
		p.trace.SetGlobalTrace(on)
		return
	}
	if def, ok := p.table.Lookup(name); ok {
		def.Traced = on
	}
}

func (p *Processor) SetDebugLevel(flags string) error { return p.trace.SetFlags(flags) }
func (p *Processor) SetDebugFile(path string) error    { return p.trace.SetOutputFile(path) }

// SetVerbose raises the internal zerolog logger from its default warn
// level to debug, per SPEC_FULL.md §6's -v flag; not part of Host
// since it is a CLI-only concern, not something builtins trigger.
func (p *Processor) SetVerbose(on bool) {
	if on {
		p.log = p.log.Level(zerolog.DebugLevel)
	} else {
		p.log = p.log.Level(zerolog.WarnLevel)
	}
}

func (p *Processor) SetQuotes(left, right string) {
	p.delims.LeftQuote, p.delims.RightQuote = left, right
	p.cfg.LeftQuote, p.cfg.RightQuote = left, right
}

func (p *Processor) SetComments(begin, end string) {
	p.delims.BeginComment, p.delims.EndComment = begin, end
	p.cfg.BeginComment, p.cfg.EndComment = begin, end
}

func (p *Processor) Config() macro.ConfigView { return p.cfg.View() }

func (p *Processor) Errprint(s string) { p.log.Debug().Msg(s); writeRaw(p.errOut, s) }

func (p *Processor) SetReturnCode(code int) { p.returnCode = code }
func (p *Processor) ReturnCode() int        { return p.returnCode }

// Exit implements m4exit: record the exit code and stop the main loop
// before it reads the next top-level token; the CLI reads the code back
// through ExitCode once Processor.run returns.
func (p *Processor) Exit(code int) {
	p.exitCode = code
	p.exiting = true
}

// ExitCode reports the code Exit recorded, or 0 if m4exit was never called.
func (p *Processor) ExitCode() int { return p.exitCode }

func (p *Processor) QueueWrap(text string) { p.wrapQueue = append(p.wrapQueue, text) }
