// Package input implements the layered input stack (spec §4.1): file,
// string, and macro-handle sources exposed as a single character stream
// with line tracking and one pushback primitive (Match).
//
// Grounded on original_source/m4_processor.py's Block/M4Parser stack
// handling (push_file/push_string/push_macro, match_input,
// peek_symbol/next_symbol transparently popping exhausted blocks), cast
// into the teacher's lexer idiom from lex.go (peek/next/accept as small
// composable primitives over a position cursor).
package input

import (
	"unicode/utf8"

	"github.com/akovalkov/m4-processor/macro"
)

// Sentinel reports why PeekRune/NextRune did not return an ordinary rune.
type Sentinel int

const (
	// None means the returned rune is a real character.
	None Sentinel = iota
	// EOF means the whole stack is exhausted.
	EOF
	// Macro means the top of stack is a one-shot builtin-handle source;
	// call NextMacroHandle to consume it.
	Macro
)

type kind int

const (
	kindFile kind = iota
	kindString
	kindMacro
)

type source struct {
	kind kind

	// file/string sources
	name           string
	content        string
	offset         int
	line           int
	pendingNewline bool

	// macro-handle source
	handle *macro.Definition
}

// Stack is an ordered sequence of character sources; the top is consumed
// first. Popping a source may immediately reveal a new top; reads skip
// exhausted sources transparently (spec §3 invariant).
type Stack struct {
	frames []*source
}

func New() *Stack {
	return &Stack{}
}

// PushFile pushes a named source whose line counter starts at 1, per
// spec §4.1 ("the first line of a file reads as line 1").
func (s *Stack) PushFile(name, content string) {
	s.frames = append(s.frames, &source{kind: kindFile, name: name, content: content, line: 1})
}

// PushString pushes an unnamed source; its logical line/name (for
// __file__/__line__ purposes) is inherited from the enclosing file, per
// spec §3.
func (s *Stack) PushString(content string) {
	if content == "" {
		return
	}
	s.frames = append(s.frames, &source{kind: kindString, content: content})
}

// PushMacro pushes a one-shot marker carrying a builtin handle; peeking
// it yields the Macro sentinel and NextMacroHandle pops it.
func (s *Stack) PushMacro(handle *macro.Definition) {
	s.frames = append(s.frames, &source{kind: kindMacro, handle: handle})
}

func (s *Stack) top() *source {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// PeekRune returns the next rune without consuming it, or a sentinel.
// Exhausted non-macro sources are popped as a side effect of peeking,
// per the "transparently skip" invariant.
func (s *Stack) PeekRune() (rune, Sentinel) {
	for {
		top := s.top()
		if top == nil {
			return 0, EOF
		}
		if top.kind == kindMacro {
			return 0, Macro
		}
		if top.offset >= len(top.content) {
			s.frames = s.frames[:len(s.frames)-1]
			continue
		}
		r, _ := utf8.DecodeRuneInString(top.content[top.offset:])
		return r, None
	}
}

// NextRune consumes and returns the next rune, or a sentinel. Only file
// sources advance a line counter, incrementing it when the previously
// yielded character was a newline (spec §4.1).
func (s *Stack) NextRune() (rune, Sentinel) {
	for {
		top := s.top()
		if top == nil {
			return 0, EOF
		}
		if top.kind == kindMacro {
			return 0, Macro
		}
		if top.offset >= len(top.content) {
			s.frames = s.frames[:len(s.frames)-1]
			continue
		}
		r, w := utf8.DecodeRuneInString(top.content[top.offset:])
		top.offset += w
		if top.kind == kindFile {
			if top.pendingNewline {
				top.line++
				top.pendingNewline = false
			}
			if r == '\n' {
				top.pendingNewline = true
			}
		}
		return r, None
	}
}

// NextMacroHandle pops a macro-handle source and returns its payload.
// Callers must only call this immediately after PeekRune/NextRune
// reported the Macro sentinel.
func (s *Stack) NextMacroHandle() *macro.Definition {
	top := s.top()
	if top == nil || top.kind != kindMacro {
		return nil
	}
	h := top.handle
	s.frames = s.frames[:len(s.frames)-1]
	return h
}

// PeekMacroHandle returns the pending macro-handle source's payload
// without popping it, for the tokenizer's non-destructive Peek.
func (s *Stack) PeekMacroHandle() *macro.Definition {
	top := s.top()
	if top == nil || top.kind != kindMacro {
		return nil
	}
	return top.handle
}

// CurrentFile returns the nearest file source on the stack (used for
// __file__/__line__ and diagnostics), per spec §4.1.
func (s *Stack) CurrentFile() (name string, line int, ok bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == kindFile {
			return s.frames[i].name, s.frames[i].line, true
		}
	}
	return "", 0, false
}

// Match attempts to match pattern against the upcoming characters. If it
// matches and consume is false, the matched characters are re-pushed as
// a new string source so subsequent peeks see them again. If it doesn't
// match and characters were consumed during the attempt, the partial
// read is re-pushed. This is the tokenizer's only lookahead primitive
// (spec §4.1).
//
// An empty pattern never matches (mirrors GNU m4's convention that an
// empty quote/comment delimiter disables that feature).
func (s *Stack) Match(pattern string, consume bool) bool {
	if pattern == "" {
		return false
	}
	var read []rune
	for _, want := range pattern {
		r, sentinel := s.PeekRune()
		if sentinel != None || r != want {
			if len(read) > 0 {
				s.PushString(string(read))
			}
			return false
		}
		r2, _ := s.NextRune()
		read = append(read, r2)
	}
	if !consume {
		s.PushString(string(read))
	}
	return true
}

// Empty reports whether the stack holds no more sources.
func (s *Stack) Empty() bool {
	return len(s.frames) == 0
}
