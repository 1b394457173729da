package macro_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/macro"
)

func TestPushdefPopdefOrdering(t *testing.T) {
	tbl := macro.NewTable()
	tbl.Pushdef("x", macro.NewTextDefinition("x", "1"))
	tbl.Pushdef("x", macro.NewTextDefinition("x", "2"))

	def, ok := tbl.Lookup("x")
	require.True(t, ok)
	require.Equal(t, "2", def.Body)

	tbl.Popdef("x")
	def, ok = tbl.Lookup("x")
	require.True(t, ok)
	require.Equal(t, "1", def.Body, "popdef(n) after pushdef(n,a); pushdef(n,b) leaves lookup(n)=a")

	tbl.Popdef("x")
	_, ok = tbl.Lookup("x")
	require.False(t, ok, "a second popdef leaves n undefined")
}

func TestDefineUndefineIfdef(t *testing.T) {
	tbl := macro.NewTable()
	tbl.Insert("n", macro.NewTextDefinition("n", "body"))
	_, ok := tbl.Lookup("n")
	require.True(t, ok)

	tbl.Undefine("n")
	_, ok = tbl.Lookup("n")
	require.False(t, ok)
}

func TestInsertReplacesEntireStack(t *testing.T) {
	tbl := macro.NewTable()
	tbl.Pushdef("x", macro.NewTextDefinition("x", "1"))
	tbl.Pushdef("x", macro.NewTextDefinition("x", "2"))
	tbl.Insert("x", macro.NewTextDefinition("x", "3"))

	tbl.Popdef("x")
	_, ok := tbl.Lookup("x")
	require.False(t, ok, "insert replaces the whole stack, not just the head")
}

func TestNamesReflectsCurrentlyDefinedSet(t *testing.T) {
	tbl := macro.NewTable()
	tbl.Insert("a", macro.NewTextDefinition("a", "1"))
	tbl.Insert("b", macro.NewTextDefinition("b", "2"))
	tbl.Pushdef("c", macro.NewTextDefinition("c", "3"))
	tbl.Undefine("b")

	got := tbl.Names()
	sort.Strings(got)
	want := []string{"a", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
