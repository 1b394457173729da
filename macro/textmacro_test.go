package macro_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/macro"
)

func TestExpandTextPositionalArgs(t *testing.T) {
	args := []macro.Value{
		macro.TextValue("greet"),
		macro.TextValue("world"),
	}
	got := macro.ExpandText("hello $1!", args, "`", "'")
	require.Equal(t, "hello world!", got)
}

func TestExpandTextArgCountAndLists(t *testing.T) {
	args := []macro.Value{
		macro.TextValue("f"),
		macro.TextValue("a"),
		macro.TextValue("b"),
	}
	require.Equal(t, "2", macro.ExpandText("$#", args, "`", "'"))
	require.Equal(t, "a,b", macro.ExpandText("$*", args, "`", "'"))
	require.Equal(t, "`a',`b'", macro.ExpandText("$@", args, "`", "'"))
}

func TestExpandTextMissingArgIsEmpty(t *testing.T) {
	args := []macro.Value{macro.TextValue("f")}
	require.Equal(t, "[]", macro.ExpandText("[$1]", args, "`", "'"))
}

func TestExpandTextMultiDigitReference(t *testing.T) {
	args := make([]macro.Value, 12)
	for i := range args {
		args[i] = macro.TextValue("x")
	}
	args[10] = macro.TextValue("TEN")
	require.Equal(t, "TEN", macro.ExpandText("$10", args, "`", "'"))
}

func TestExpandTextUnknownSigilKeptLiteral(t *testing.T) {
	args := []macro.Value{macro.TextValue("f")}
	require.Equal(t, "$x", macro.ExpandText("$x", args, "`", "'"))
}
