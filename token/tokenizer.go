// Package token implements the context-sensitive tokenizer (spec §4.2):
// it segments the input stack's character stream into WORD, STRING,
// OPEN, COMMA, CLOSE, SIMPLE and MACDEF tokens, honoring mutable quote
// and comment delimiters that changequote/changecom may reassign at any
// time.
//
// Grounded on the teacher's lex.go lexTopLevel/lexBareWord state-machine
// ordering (try comment, then word, then quote, then single-char
// classification) and on original_source/m4_processor.py's
// next_token/peek_token, which this mirrors token-for-token.
package token

import (
	"github.com/pkg/errors"

	"github.com/akovalkov/m4-processor/input"
)

// Delims holds the live quote/comment delimiters. changequote/changecom
// mutate a shared *Delims so every future token sees the new values
// immediately, per spec §4.2.
type Delims struct {
	LeftQuote    string
	RightQuote   string
	BeginComment string
	EndComment   string
}

func DefaultDelims() *Delims {
	return &Delims{LeftQuote: "`", RightQuote: "'", BeginComment: "#", EndComment: "\n"}
}

// Tokenizer produces one token per call. Peek is implemented exactly
// per spec §4.2 ("performing the recognition without consuming the
// head characters, using match(..., consume=false)"): it scans a
// token normally, then re-pushes the exact raw span it consumed as a
// new string source, so the input stack is left precisely as it was
// found. This is what lets a macro's pushed-back expansion result
// interleave correctly with a zero-argument lookahead (find_for_invocation,
// collect_arguments' initial OPEN check) that decided not to consume it.
type Tokenizer struct {
	stack  *input.Stack
	delims *Delims
}

func New(stack *input.Stack, delims *Delims) *Tokenizer {
	return &Tokenizer{stack: stack, delims: delims}
}

// Next consumes and returns the next token.
func (t *Tokenizer) Next() (Token, error) {
	tok, _, err := t.read()
	if err == nil && tok.Kind == MACDEF {
		t.stack.NextMacroHandle()
	}
	return tok, err
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek() (Token, error) {
	tok, raw, err := t.read()
	if err != nil {
		return Token{}, err
	}
	if raw != "" {
		t.stack.PushString(raw)
	}
	return tok, nil
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func (t *Tokenizer) line() int {
	if _, line, ok := t.stack.CurrentFile(); ok {
		return line
	}
	return 0
}

// read consumes and classifies the next token, also returning the
// exact raw span of characters it consumed so Peek can push it back
// verbatim. raw is empty (and meaningless) for EOF and MACDEF, neither
// of which can be re-expressed as a string source.
func (t *Tokenizer) read() (Token, string, error) {
	_, sentinel := t.stack.PeekRune()

	switch sentinel {
	case input.EOF:
		return Token{Kind: EOF, Line: t.line()}, "", nil
	case input.Macro:
		// Peek must not pop the one-shot handle source; only a
		// committing Next() consumes it via NextMacroHandle.
		return Token{Kind: MACDEF, Handle: t.stack.PeekMacroHandle(), Line: t.line()}, "", nil
	}

	line := t.line()

	if t.stack.Match(t.delims.BeginComment, true) {
		text := t.delims.BeginComment
		for {
			if t.stack.Match(t.delims.EndComment, true) {
				text += t.delims.EndComment
				break
			}
			c, s := t.stack.NextRune()
			if s == input.EOF {
				return Token{}, "", errors.New("end of file encountered while parsing a comment")
			}
			text += string(c)
		}
		// The comment token's payload already is its raw span verbatim.
		return Token{Kind: STRING, Text: text, Line: line}, text, nil
	}

	r, _ := t.stack.PeekRune()
	if isIdentStart(r) {
		var text []rune
		for {
			c, _ := t.stack.NextRune()
			text = append(text, c)
			next, s := t.stack.PeekRune()
			if s != input.None || !isIdentCont(next) {
				break
			}
		}
		return Token{Kind: WORD, Text: string(text), Line: line}, string(text), nil
	}

	if t.stack.Match(t.delims.LeftQuote, true) {
		var inner []rune
		raw := t.delims.LeftQuote
		depth := 1
		for {
			if t.stack.Match(t.delims.RightQuote, true) {
				depth--
				raw += t.delims.RightQuote
				if depth == 0 {
					break
				}
				inner = append(inner, []rune(t.delims.RightQuote)...)
				continue
			}
			if t.stack.Match(t.delims.LeftQuote, true) {
				depth++
				raw += t.delims.LeftQuote
				inner = append(inner, []rune(t.delims.LeftQuote)...)
				continue
			}
			c, s := t.stack.NextRune()
			if s == input.EOF {
				return Token{}, "", errors.New("end of file encountered while parsing a quoted string")
			}
			inner = append(inner, c)
			raw += string(c)
		}
		return Token{Kind: STRING, Text: string(inner), Line: line}, raw, nil
	}

	c, _ := t.stack.NextRune()
	switch c {
	case '(':
		return Token{Kind: OPEN, Text: "(", Line: line}, "(", nil
	case ',':
		return Token{Kind: COMMA, Text: ",", Line: line}, ",", nil
	case ')':
		return Token{Kind: CLOSE, Text: ")", Line: line}, ")", nil
	default:
		return Token{Kind: SIMPLE, Text: string(c), Line: line}, string(c), nil
	}
}
