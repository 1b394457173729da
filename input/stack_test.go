package input_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/input"
)

func TestPushStringAndNextRune(t *testing.T) {
	s := input.New()
	s.PushString("ab")

	r, sentinel := s.NextRune()
	require.Equal(t, input.None, sentinel)
	require.Equal(t, 'a', r)

	r, sentinel = s.NextRune()
	require.Equal(t, input.None, sentinel)
	require.Equal(t, 'b', r)

	_, sentinel = s.NextRune()
	require.Equal(t, input.EOF, sentinel)
}

func TestPopRevealsNewTop(t *testing.T) {
	s := input.New()
	s.PushString("a")
	s.PushString("b")

	r, _ := s.NextRune()
	require.Equal(t, 'b', r)
	r, _ = s.NextRune()
	require.Equal(t, 'a', r)
}

func TestFileLineTracksFromOne(t *testing.T) {
	s := input.New()
	s.PushFile("f.m4", "ab\ncd")

	_, line, ok := s.CurrentFile()
	require.True(t, ok)
	require.Equal(t, 1, line)

	s.NextRune() // a
	s.NextRune() // b
	s.NextRune() // \n
	_, line, _ = s.CurrentFile()
	require.Equal(t, 1, line, "line increments only after the newline is yielded, not on it")

	s.NextRune() // c
	_, line, _ = s.CurrentFile()
	require.Equal(t, 2, line)
}

func TestMatchConsume(t *testing.T) {
	s := input.New()
	s.PushString("hello world")

	require.True(t, s.Match("hello", true))
	r, _ := s.PeekRune()
	require.Equal(t, ' ', r)
}

func TestMatchNoConsumePushesBack(t *testing.T) {
	s := input.New()
	s.PushString("hello")

	require.True(t, s.Match("hello", false))
	r, _ := s.NextRune()
	require.Equal(t, 'h', r, "non-consuming match must re-push the matched text")
}

func TestMatchFailurePushesBackPartialRead(t *testing.T) {
	s := input.New()
	s.PushString("help")

	require.False(t, s.Match("hello", true))
	r, _ := s.NextRune()
	require.Equal(t, 'h', r)
}

func TestMatchEmptyPatternNeverMatches(t *testing.T) {
	s := input.New()
	s.PushString("anything")
	require.False(t, s.Match("", true))
}

func TestPushMacroYieldsSentinel(t *testing.T) {
	s := input.New()
	s.PushMacro(nil)
	_, sentinel := s.PeekRune()
	require.Equal(t, input.Macro, sentinel)
	require.Nil(t, s.NextMacroHandle())
	require.True(t, s.Empty())
}
