package builtin_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/config"
	"github.com/akovalkov/m4-processor/expand"
)

// run exercises the builtin table through the real expansion engine
// rather than hand-rolling a fake macro.Host, mirroring the scenario
// style already used for the processor's own tests.
func run(t *testing.T, src string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	cfg := config.Default("m4")
	cfg.SyncOutput = false
	p := expand.New(cfg, &out, &errOut)
	require.NoError(t, p.ProcessString(src))
	return out.String()
}

func TestLenIndexSubstr(t *testing.T) {
	require.Equal(t, "5", run(t, "len(`hello')"))
	require.Equal(t, "2", run(t, "index(`l',`hello')"))
	require.Equal(t, "-1", run(t, "index(`z',`hello')"))
	require.Equal(t, "ell", run(t, "substr(`hello',1,3)"))
	require.Equal(t, "llo", run(t, "substr(`hello',2)"))
}

func TestTranslitDeletesAndMapsRanges(t *testing.T) {
	require.Equal(t, "bcd", run(t, "translit(`abcd',`a')"))
	require.Equal(t, "1234", run(t, "translit(`abcd',`a-d',`1-4')"))
}

func TestIncrDecr(t *testing.T) {
	require.Equal(t, "6", run(t, "incr(5)"))
	require.Equal(t, "4", run(t, "decr(5)"))
}

func TestShiftDropsFirstArgAndQuotesRest(t *testing.T) {
	// shift yields `b',`c'; the expander rescans it, so the quotes are
	// stripped on the way to the output.
	require.Equal(t, "b,c", run(t, "shift(a,b,c)"))
	require.Equal(t, "", run(t, "shift(a)"))
}

func TestFormatCoercesNumericVerbs(t *testing.T) {
	require.Equal(t, "007", run(t, "format(`%03d', 7)"))
	require.Equal(t, "ff", run(t, "format(`%x', 255)"))
	require.Equal(t, "abc", run(t, "format(`%s', `abc')"))
}

func TestPatsubstGlobalReplace(t *testing.T) {
	require.Equal(t, "xbxbx", run(t, "patsubst(`xaxax', `a', `b')"))
	require.Equal(t, "xx", run(t, "patsubst(`xax', `a')"))
}

func TestRegexpOffsetAndSubstitution(t *testing.T) {
	require.Equal(t, "1", run(t, "regexp(`xax', `a')"))
	require.Equal(t, "-1", run(t, "regexp(`xxx', `a')"))
	require.Equal(t, "[a]", run(t, "regexp(`xax', `a', `[&]')"))
}

func TestChangequoteAndChangecom(t *testing.T) {
	require.Equal(t, "foo", run(t, "changequote([,])[foo]"))

	// With the comment delimiter moved to {}, a leading '#' is plain
	// text and X is expanded; a bare changecom call (zero arguments)
	// then restores the default #..\n delimiter, under which X is
	// shielded from expansion again.
	require.Equal(t, "#EXP\n#X\n",
		run(t, "changecom(`{',`}')define(`X',`EXP')#X\nchangecom#X\n"))
}

func TestDivertAndUndivertRoundtrip(t *testing.T) {
	require.Equal(t, "before after", run(t, "divert(1)after`'divert(0)before `'undivert(1)"))
}

func TestDefnOnBuiltinThenBuiltinCall(t *testing.T) {
	require.Equal(t, "3", run(t, "define(`plus', defn(`incr'))plus(2)"))
}

func TestIfdefReflectsDefineUndefine(t *testing.T) {
	require.Equal(t, "Y", run(t, "define(`n',`v')ifdef(`n',`Y',`N')"))
	require.Equal(t, "N", run(t, "ifdef(`missing',`Y',`N')"))
}

func TestIfelseChainAndSingleArg(t *testing.T) {
	require.Equal(t, "two", run(t, "ifelse(`b',`a',`one',`b',`b',`two',`none')"))
	require.Equal(t, "none", run(t, "ifelse(`c',`a',`one',`c',`b',`two',`none')"))
	require.Equal(t, "", run(t, "ifelse(`x')"))
}

func TestDnlConsumesRestOfLine(t *testing.T) {
	require.Equal(t, "keep\n", run(t, "dnl drop this\nkeep\n"))
}

func TestDumpdefShowsPendingDocComment(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := config.Default("m4")
	cfg.SyncOutput = false
	p := expand.New(cfg, &out, &errOut)
	require.NoError(t, p.ProcessString(
		"# doubles its argument\ndefine(`double',`eval(2*$1)')dumpdef(`double')"))
	require.Contains(t, errOut.String(), "# doubles its argument\n")
	require.Contains(t, errOut.String(), "double")

	// A blank line between the comment and the define clears the
	// pending buffer, so the next definition picks up nothing.
	errOut.Reset()
	p2 := expand.New(cfg, &out, &errOut)
	require.NoError(t, p2.ProcessString(
		"# stale comment\n\ndefine(`triple',`eval(3*$1)')dumpdef(`triple')"))
	require.NotContains(t, errOut.String(), "stale comment")
}
