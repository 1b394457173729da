package expand_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/config"
	"github.com/akovalkov/m4-processor/expand"
)

func run(t *testing.T, src string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	cfg := config.Default("m4")
	cfg.SyncOutput = false
	p := expand.New(cfg, &out, &errOut)
	require.NoError(t, p.ProcessString(src))
	return out.String()
}

func TestIdentityOnMacroFreeText(t *testing.T) {
	require.Equal(t, "plain text, no macros here\n", run(t, "plain text, no macros here\n"))
}

func TestUndefinedWordEmittedLiterally(t *testing.T) {
	require.Equal(t, "foo bar", run(t, "foo bar"))
}

func TestDefineAndInvoke(t *testing.T) {
	require.Equal(t, "bar", run(t, "define(`foo', `bar')foo"))
}

func TestDefineWithPositionalArgs(t *testing.T) {
	require.Equal(t, "hello world!", run(t, "define(`greet', `hello $1!')greet(`world')"))
}

func TestPushdefPopdefScenario(t *testing.T) {
	require.Equal(t, "2 1", run(t, "pushdef(`x',`1')pushdef(`x',`2')x popdef(`x')x"))
}

func TestIfelseScenario(t *testing.T) {
	require.Equal(t, "yes-no", run(t, "ifelse(a,a,yes,no)-ifelse(a,b,yes,no)"))
}

func TestEvalScenario(t *testing.T) {
	require.Equal(t, "14", run(t, "eval(2+3*4)"))
}

func TestTranslitScenario(t *testing.T) {
	require.Equal(t, "hello", run(t, "translit(`HELLO',`A-Z',`a-z')"))
}

func TestChangequoteRestoresDefaults(t *testing.T) {
	require.Equal(t, "foobar", run(t, "changequote([,])[foo]changequote`'bar"))
}

func TestUndefineThenIfdef(t *testing.T) {
	require.Equal(t, "N", run(t, "define(`n', `body')undefine(`n')ifdef(`n',`Y',`N')"))
}

func TestEvalParenthesesIdentity(t *testing.T) {
	require.Equal(t, run(t, "eval(2+3*4)"), run(t, "eval((2+3*4))"))
}

func TestPatsubstIdempotence(t *testing.T) {
	once := run(t, "patsubst(`xax', `a', `&')")
	twice := run(t, "patsubst(patsubst(`xax', `a', `&'), `a', `&')")
	require.Equal(t, once, twice)
}
