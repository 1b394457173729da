package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akovalkov/m4-processor/config"
)

func TestLocalResolverSearchesIncludePathInOrder(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "frag.m4"), []byte("from-b"), 0o644))

	r := config.LocalResolver{IncludePath: []string{dirA, dirB}}
	content, name, err := r.Resolve("frag.m4")
	require.NoError(t, err)
	require.Equal(t, "from-b", content)
	require.Equal(t, filepath.Join(dirB, "frag.m4"), name)
}

func TestLocalResolverAbsolutePathBypassesIncludePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abs.m4")
	require.NoError(t, os.WriteFile(path, []byte("abs-content"), 0o644))

	r := config.LocalResolver{}
	content, name, err := r.Resolve(path)
	require.NoError(t, err)
	require.Equal(t, "abs-content", content)
	require.Equal(t, path, name)
}

func TestLocalResolverMissingFileErrors(t *testing.T) {
	r := config.LocalResolver{IncludePath: []string{t.TempDir()}}
	_, _, err := r.Resolve("nonexistent-m4-fragment-xyz.m4")
	require.Error(t, err)
}

func TestResolveIncludeDispatchesToLocalWhenNoResolverConfigured(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inc.m4"), []byte("hi"), 0o644))

	cfg := config.Default("m4")
	cfg.IncludePath = []string{dir}

	content, _, err := cfg.ResolveInclude("inc.m4")
	require.NoError(t, err)
	require.Equal(t, "hi", content)
}

type stubResolver struct{ resolved string }

func (stubResolver) Scheme() string { return "stub://" }
func (s stubResolver) Resolve(name string) (string, string, error) {
	return "stub-content:" + name, "stub-display:" + name, nil
}

func TestResolveIncludeDispatchesToSchemeMatchedResolver(t *testing.T) {
	cfg := config.Default("m4")
	cfg.Resolver = stubResolver{}

	content, display, err := cfg.ResolveInclude("stub://thing")
	require.NoError(t, err)
	require.Equal(t, "stub-content:stub://thing", content)
	require.Equal(t, "stub-display:stub://thing", display)
}

func TestResolveIncludeFallsBackToLocalForUnmatchedScheme(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.m4"), []byte("plain"), 0o644))

	cfg := config.Default("m4")
	cfg.IncludePath = []string{dir}
	cfg.Resolver = stubResolver{}

	content, _, err := cfg.ResolveInclude("plain.m4")
	require.NoError(t, err)
	require.Equal(t, "plain", content)
}
