// Package config holds the processor's mutable configuration (spec
// §4.9 / §6) and the include-path resolvers that satisfy include()/
// sinclude() file lookups.
//
// Grounded on original_source/m4_processor.py's M4Parser config dict
// (left_quote/right_quote/begin_comment/end_comment/sync_output/
// nesting_limit/no_gnu_extensions) and its search_file os.walk lookup,
// restructured per the REDESIGN FLAGS note into an explicit ordered
// IncludePath plus a fallback bounded walk of the working directory.
package config

import (
	"runtime"

	"github.com/akovalkov/m4-processor/macro"
)

// Config is the live, mutable set of knobs the CLI seeds and
// changequote/changecom adjust at runtime.
type Config struct {
	LeftQuote    string
	RightQuote   string
	BeginComment string
	EndComment   string

	SyncOutput        bool
	NestingLimit      int
	NoGNUExtensions   bool
	PrefixAllBuiltins bool

	// IncludePath is searched, in order, before the bounded working-
	// directory walk, for every relative name passed to include()/
	// sinclude() (spec §6).
	IncludePath []string

	// Resolver handles include-path entries or bare names carrying a
	// URI scheme (currently only "s3://"); nil means local-only.
	Resolver Resolver

	ProgramName string
}

// Default matches GNU m4's out-of-the-box delimiters and limits.
func Default(programName string) *Config {
	return &Config{
		LeftQuote:    "`",
		RightQuote:   "'",
		BeginComment: "#",
		EndComment:   "\n",
		NestingLimit: 300,
		ProgramName:  programName,
	}
}

// View snapshots the fields builtins are allowed to read, per
// macro.Host.Config (spec §4.9; keeps package macro independent of
// package config to avoid an import cycle through Host).
func (c *Config) View() macro.ConfigView {
	return macro.ConfigView{
		LeftQuote:         c.LeftQuote,
		RightQuote:        c.RightQuote,
		BeginComment:      c.BeginComment,
		EndComment:        c.EndComment,
		NoGNUExtensions:   c.NoGNUExtensions,
		PrefixAllBuiltins: c.PrefixAllBuiltins,
		NestingLimit:      c.NestingLimit,
		ProgramName:       c.ProgramName,
	}
}

// OSSymbol returns the predefined __os__-family macro name for the
// host platform, per SPEC_FULL.md §9 (unix/__unix__ vs
// windows/__windows__, chosen from runtime.GOOS).
func OSSymbol() (short, long string) {
	if runtime.GOOS == "windows" {
		return "windows", "__windows__"
	}
	return "unix", "__unix__"
}
