package token

import "github.com/akovalkov/m4-processor/macro"

// Kind is a token's tag, per spec §3.
type Kind int

const (
	EOF Kind = iota
	STRING
	WORD
	OPEN
	COMMA
	CLOSE
	SIMPLE
	MACDEF
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case STRING:
		return "STRING"
	case WORD:
		return "WORD"
	case OPEN:
		return "OPEN"
	case COMMA:
		return "COMMA"
	case CLOSE:
		return "CLOSE"
	case SIMPLE:
		return "SIMPLE"
	case MACDEF:
		return "MACDEF"
	default:
		return "UNKNOWN"
	}
}

// Token is a tagged variant with an optional text payload; MACDEF
// additionally carries an opaque handle to a builtin definition, per
// spec §3.
type Token struct {
	Kind   Kind
	Text   string
	Handle *macro.Definition
	Line   int
}
