// Package expand implements the expander (spec §4.4): the component
// that drives the token loop, collects macro arguments, invokes
// definitions, and pushes results back onto the input stack for
// rescanning. Processor is the concrete type that implements
// macro.Host, wiring together the input stack, tokenizer, macro
// table, builtin set, diversion manager, trace sink, and
// configuration into a single single-threaded cooperative engine
// (spec §5).
//
// Grounded on original_source/m4_processor.py's M4Parser
// (process_file/expand_token/expand_macro/collect_arguments/
// expand_argument/expand_user_macro), restructured with the teacher's
// recursive-descent call shape from parse.go before that file's
// deletion (see DESIGN.md).
package expand

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/akovalkov/m4-processor/builtin"
	"github.com/akovalkov/m4-processor/config"
	"github.com/akovalkov/m4-processor/divert"
	"github.com/akovalkov/m4-processor/input"
	"github.com/akovalkov/m4-processor/macro"
	"github.com/akovalkov/m4-processor/token"
	"github.com/akovalkov/m4-processor/trace"
)

// FatalError wraps a diagnostic with the file/line context it occurred
// in (spec §7's "reported with a prefix identifying the builtin and the
// current file/line"); the expander leaves CallID at zero. main is the
// sole recovery boundary that formats and reports these.
type FatalError struct {
	File   string
	Line   int
	CallID int
	Err    error
}

func (e *FatalError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error { return e.Err }

// Processor is the engine: it implements macro.Host and owns every
// piece of mutable state the spec's data model describes (§3).
type Processor struct {
	cfg     *config.Config
	stack   *input.Stack
	delims  *token.Delims
	tok     *token.Tokenizer
	table   *macro.Table
	divert  *divert.Manager
	trace   *trace.Sink
	log     zerolog.Logger
	errOut  io.Writer

	canonical map[string]*macro.Definition // pristine builtin defs, for builtin()

	nesting    int
	nextCallID int
	returnCode int
	exitCode   int
	exiting    bool

	wrapQueue []string

	// docComment buffers text of comment-delimited STRING tokens seen
	// since the last newline, per spec §4.4; define/pushdef read it via
	// PendingDocComment to attach documentation to the macro they
	// register.
	docComment string
}

// New builds a processor wired per cfg, writing normal output to out
// and error/diagnostic/trace sideband to errOut by default (debugfile
// may later redirect the trace sideband elsewhere).
func New(cfg *config.Config, out, errOut io.Writer) *Processor {
	p := &Processor{
		cfg:       cfg,
		stack:     input.New(),
		delims:    &token.Delims{LeftQuote: cfg.LeftQuote, RightQuote: cfg.RightQuote, BeginComment: cfg.BeginComment, EndComment: cfg.EndComment},
		table:     macro.NewTable(),
		divert:    divert.New(out, cfg.SyncOutput),
		trace:     trace.NewSink(errOut),
		errOut:    errOut,
		canonical: make(map[string]*macro.Definition),
	}
	p.tok = token.New(p.stack, p.delims)
	p.log = zerolog.New(zerolog.ConsoleWriter{Out: errOut, NoColor: true}).With().Timestamp().Logger().Level(zerolog.WarnLevel)

	builtin.Init(p.table, cfg.NoGNUExtensions, cfg.PrefixAllBuiltins)
	for _, name := range p.table.Names() {
		def, _ := p.table.Lookup(name)
		p.canonical[name] = def
	}
	definePredefinedSymbols(p.table, cfg)
	return p
}

// definePredefinedSymbols registers the GNU/non-GNU host-identity
// macros, per SPEC_FULL.md §9: __gnu__ unless no_gnu_extensions, and
// unix/__unix__ or windows/__windows__ chosen from the host platform.
func definePredefinedSymbols(t *macro.Table, cfg *config.Config) {
	short, long := config.OSSymbol()
	if cfg.NoGNUExtensions {
		t.Insert(short, macro.NewTextDefinition(short, ""))
	} else {
		t.Insert("__gnu__", macro.NewTextDefinition("__gnu__", ""))
		t.Insert(long, macro.NewTextDefinition(long, ""))
	}
}

// ProcessFile is the expander's main loop (spec §4.4): push a file
// source and repeatedly expand tokens until EOF, then replay any
// m4wrap-queued text.
func (p *Processor) ProcessFile(path string) error {
	content, display, err := p.cfg.ResolveInclude(path)
	if err != nil {
		return err
	}
	p.stack.PushFile(display, content)
	return p.run()
}

// ProcessString feeds text directly, as if it were the body of the
// top-level file (used by tests); the text is a string source, so no
// file name or line is attached to it.
func (p *Processor) ProcessString(text string) error {
	p.stack.PushString(text)
	return p.run()
}

func (p *Processor) run() error {
	for {
		if err := p.drain(); err != nil {
			return err
		}
		if p.exiting || len(p.wrapQueue) == 0 {
			break
		}
		queue := p.wrapQueue
		p.wrapQueue = nil
		for i := len(queue) - 1; i >= 0; i-- {
			p.stack.PushString(queue[i])
		}
	}
	return nil
}

func (p *Processor) drain() error {
	for {
		if p.exiting {
			return nil
		}
		tok, err := p.tok.Next()
		if err != nil {
			return p.wrapErr(err)
		}
		if tok.Kind == token.EOF {
			return nil
		}
		if _, err := p.expandToken(tok, nil); err != nil {
			return p.wrapErr(err)
		}
	}
}

func (p *Processor) wrapErr(err error) error {
	name, line, _ := p.stack.CurrentFile()
	return &FatalError{File: name, Line: line, Err: err}
}

// expandToken implements expand_token (spec §4.4). When acc is
// non-nil, shipped/expanded text is appended to it and returned
// instead of being emitted to the diversion manager (argument
// accumulation mode).
func (p *Processor) expandToken(tok token.Token, acc *string) (string, error) {
	switch tok.Kind {
	case token.EOF, token.MACDEF:
		return "", nil
	case token.WORD:
		def, ok := p.findForInvocation(tok.Text)
		if !ok {
			return p.ship(tok.Text, tok.Line, acc)
		}
		return "", p.expandMacro(tok.Text, def)
	case token.STRING:
		if p.delims.BeginComment != "" && strings.HasPrefix(tok.Text, p.delims.BeginComment) {
			p.docComment += tok.Text
		}
		return p.ship(tok.Text, tok.Line, acc)
	case token.SIMPLE:
		if tok.Text == "\n" {
			p.docComment = ""
		}
		return p.ship(tok.Text, tok.Line, acc)
	default:
		return p.ship(tok.Text, tok.Line, acc)
	}
}

func (p *Processor) ship(text string, line int, acc *string) (string, error) {
	if acc != nil {
		*acc += text
		return text, nil
	}
	file, _, _ := p.stack.CurrentFile()
	return text, errors.Wrap(p.divert.Ship(text, line, file), "shipout")
}

// findForInvocation is find_for_invocation (spec §4.3): a blind
// builtin's name is only an invocation if immediately followed by '('.
func (p *Processor) findForInvocation(name string) (*macro.Definition, bool) {
	def, ok := p.table.Lookup(name)
	if !ok {
		return nil, false
	}
	if def.Kind == macro.KindBuiltin && def.BlindNoArgs {
		next, err := p.tok.Peek()
		if err != nil || next.Kind != token.OPEN {
			return nil, false
		}
	}
	return def, true
}

// expandMacro implements expand_macro (spec §4.4). Its result is never
// returned to the caller directly: it is pushed back as a new string
// source (step 7) so the surrounding token loop — whether the
// top-level drain or an in-progress expandArgument accumulation —
// rescans it like any other input.
func (p *Processor) expandMacro(name string, def *macro.Definition) error {
	p.nesting++
	defer func() { p.nesting-- }()
	if p.nesting > p.cfg.NestingLimit {
		return fmt.Errorf("nesting limit of %d exceeded", p.cfg.NestingLimit)
	}

	callID := p.nextCallID
	p.nextCallID++

	traced := p.trace.ShouldTrace(def.Traced)
	if traced {
		p.trace.PrePre(callID, name)
	}

	args, err := p.collectArguments(name)
	if err != nil {
		return err
	}

	if traced {
		p.trace.Pre(callID, name, macro.Args(args[1:]))
	}

	result, err := p.CallMacro(def, args)
	if err != nil {
		return err
	}

	if result != "" {
		p.stack.PushString(result)
	}
	if traced {
		p.trace.Post(callID, name, result)
	}
	return nil
}

// CallMacro invokes def against args, dispatching on kind; part of
// macro.Host so builtin() and indir() can reuse it directly.
func (p *Processor) CallMacro(def *macro.Definition, args []macro.Value) (string, error) {
	switch def.Kind {
	case macro.KindBuiltin:
		callArgs := args
		if !def.GroksMacroArgs {
			callArgs = make([]macro.Value, len(args))
			for i, a := range args {
				if a.IsHandle {
					callArgs[i] = macro.TextValue("")
				} else {
					callArgs[i] = a
				}
			}
		}
		return def.Func(p, callArgs)
	default:
		return macro.ExpandText(def.Body, args, p.delims.LeftQuote, p.delims.RightQuote), nil
	}
}

// collectArguments implements collect_arguments (spec §4.4).
func (p *Processor) collectArguments(name string) ([]macro.Value, error) {
	args := []macro.Value{macro.TextValue(name)}

	next, err := p.tok.Peek()
	if err != nil {
		return nil, err
	}
	if next.Kind != token.OPEN {
		return args, nil
	}
	if _, err := p.tok.Next(); err != nil {
		return nil, err
	}

	for {
		val, end, err := p.expandArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, val)
		if end {
			return args, nil
		}
	}
}

// expandArgument implements expand_argument (spec §4.4): accumulates
// one comma-delimited argument, tracking parenthesis nesting, and
// recursively expanding WORD tokens as they're collected.
func (p *Processor) expandArgument() (macro.Value, bool, error) {
	var acc string
	var handle *macro.Definition
	isHandle := false
	depth := 0
	skippingLeadingSpace := true

	value := func() macro.Value {
		if isHandle {
			return macro.HandleValue(handle)
		}
		return macro.TextValue(acc)
	}

	for {
		tok, err := p.tok.Next()
		if err != nil {
			return macro.Value{}, false, err
		}

		if skippingLeadingSpace && tok.Kind == token.SIMPLE && isBlank(tok.Text) {
			continue
		}
		skippingLeadingSpace = false

		switch tok.Kind {
		case token.EOF:
			return macro.Value{}, false, errors.New("end of file in argument list")
		case token.MACDEF:
			// Replaces the accumulator; the argument becomes a
			// non-string value (spec §4.4).
			isHandle = true
			handle = tok.Handle
		case token.COMMA:
			if depth == 0 {
				return value(), false, nil
			}
			acc += tok.Text
		case token.CLOSE:
			if depth == 0 {
				return value(), true, nil
			}
			depth--
			acc += tok.Text
		case token.OPEN:
			depth++
			acc += tok.Text
		case token.WORD:
			if _, err := p.expandToken(tok, &acc); err != nil {
				return macro.Value{}, false, err
			}
		default:
			acc += tok.Text
		}
	}
}

func isBlank(s string) bool {
	return s == " " || s == "\t" || s == "\n" || s == "\r"
}
