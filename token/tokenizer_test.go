package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/input"
	"github.com/akovalkov/m4-processor/token"
)

func newTokenizer(src string) *token.Tokenizer {
	s := input.New()
	s.PushString(src)
	return token.New(s, token.DefaultDelims())
}

func TestWordToken(t *testing.T) {
	tok := newTokenizer("foo_1(")
	got, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.WORD, got.Kind)
	require.Equal(t, "foo_1", got.Text)

	got, err = tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.OPEN, got.Kind)
}

func TestQuotedStringStripsDelimiters(t *testing.T) {
	tok := newTokenizer("`hello'")
	got, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.STRING, got.Kind)
	require.Equal(t, "hello", got.Text)
}

func TestNestedQuotesKeptVerbatim(t *testing.T) {
	tok := newTokenizer("`a `b' c'")
	got, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.STRING, got.Kind)
	require.Equal(t, "a `b' c", got.Text)
}

func TestUnterminatedQuoteIsFatal(t *testing.T) {
	tok := newTokenizer("`unterminated")
	_, err := tok.Next()
	require.Error(t, err)
}

func TestCommentSpanIncludesDelimiters(t *testing.T) {
	tok := newTokenizer("# a comment\nrest")
	got, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.STRING, got.Kind)
	require.Equal(t, "# a comment\n", got.Text)

	got, err = tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.WORD, got.Kind)
	require.Equal(t, "rest", got.Text)
}

func TestPeekDoesNotConsume(t *testing.T) {
	tok := newTokenizer("foo")
	peeked, err := tok.Peek()
	require.NoError(t, err)
	require.Equal(t, token.WORD, peeked.Kind)

	next, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, peeked, next)

	eof, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.EOF, eof.Kind)
}

func TestSimpleCharacterClassification(t *testing.T) {
	tok := newTokenizer(",)!")
	got, _ := tok.Next()
	require.Equal(t, token.COMMA, got.Kind)
	got, _ = tok.Next()
	require.Equal(t, token.CLOSE, got.Kind)
	got, _ = tok.Next()
	require.Equal(t, token.SIMPLE, got.Kind)
	require.Equal(t, "!", got.Text)
}

func TestMutableDelimitersTakeEffectImmediately(t *testing.T) {
	s := input.New()
	s.PushString("[foo]bar")
	delims := token.DefaultDelims()
	tok := token.New(s, delims)

	delims.LeftQuote, delims.RightQuote = "[", "]"
	got, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.STRING, got.Kind)
	require.Equal(t, "foo", got.Text)

	got, err = tok.Next()
	require.NoError(t, err)
	require.Equal(t, token.WORD, got.Kind)
	require.Equal(t, "bar", got.Text)
}
