package divert_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/divert"
)

func TestDivertAndUndivertOrdering(t *testing.T) {
	var out bytes.Buffer
	m := divert.New(&out, false)

	m.SetCurrent(1)
	require.NoError(t, m.Ship("one ", 1, "f"))
	m.SetCurrent(0)
	require.NoError(t, m.Ship("zero ", 1, "f"))
	require.NoError(t, m.Undivert([]int{1}))

	require.Equal(t, "zero one ", out.String())
}

func TestNegativeDiversionDiscards(t *testing.T) {
	var out bytes.Buffer
	m := divert.New(&out, false)

	m.SetCurrent(-1)
	require.NoError(t, m.Ship("gone", 1, "f"))
	require.Equal(t, "", out.String())
}

func TestUndivertAllAscendingOrder(t *testing.T) {
	var out bytes.Buffer
	m := divert.New(&out, false)

	m.SetCurrent(2)
	m.Ship("two ", 1, "f")
	m.SetCurrent(1)
	m.Ship("one ", 1, "f")
	m.SetCurrent(0)

	require.NoError(t, m.UndivertAll())
	require.Equal(t, "one two ", out.String())
}

func TestSyncOutputEmitsLineDirectiveOnJump(t *testing.T) {
	var out bytes.Buffer
	m := divert.New(&out, true)

	require.NoError(t, m.Ship("a\n", 1, "f.m4"))
	require.NoError(t, m.Ship("b\n", 5, "f.m4"))

	require.Equal(t, "#line 1 \"f.m4\"\na\n#line 5\nb\n", out.String())
}
