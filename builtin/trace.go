package builtin

import (
	"fmt"

	"github.com/akovalkov/m4-processor/macro"
)

// bDumpdef implements dumpdef([name+]): print definition(s) to the
// debug sink; with no arguments, every currently-defined name.
func bDumpdef(h macro.Host, args []macro.Value) (string, error) {
	names := make([]string, len(args)-1)
	for i, a := range args[1:] {
		names[i] = a.Str()
	}
	h.DumpDefinitions(names)
	return "", nil
}

// bTraceon/bTraceoff implement traceon/traceoff: with no arguments,
// toggle the global trace flag; with arguments, toggle the named
// macros' per-definition traced flag.
func bTraceon(h macro.Host, args []macro.Value) (string, error) {
	return "", setTrace(h, args, true)
}

func bTraceoff(h macro.Host, args []macro.Value) (string, error) {
	return "", setTrace(h, args, false)
}

func setTrace(h macro.Host, args []macro.Value, on bool) error {
	if len(args) == 1 {
		h.SetTrace("", on)
		return nil
	}
	for _, a := range args[1:] {
		h.SetTrace(a.Str(), on)
	}
	return nil
}

// bDebugmode implements debugmode([flags]): reconfigure trace
// verbosity from a letter string (spec §4.8).
func bDebugmode(h macro.Host, args []macro.Value) (string, error) {
	flags := ""
	if len(args) > 1 {
		flags = args[1].Str()
	}
	return "", h.SetDebugLevel(flags)
}

// bDebugfile implements debugfile([path]): redirect the trace/debug
// sideband; no argument restores stderr.
func bDebugfile(h macro.Host, args []macro.Value) (string, error) {
	path := ""
	if len(args) > 1 {
		path = args[1].Str()
	}
	return "", h.SetDebugFile(path)
}

// bBuiltin implements builtin(name,...): invoke the original builtin
// even if name has been shadowed by a user (re)definition.
func bBuiltin(h macro.Host, args []macro.Value) (string, error) {
	def, ok := h.CanonicalBuiltin(args[1].Str())
	if !ok {
		return "", fmt.Errorf("builtin: undefined builtin %q", args[1].Str())
	}
	callArgs := append([]macro.Value{macro.TextValue(args[1].Str())}, args[2:]...)
	return h.CallMacro(def, callArgs)
}

// bIndir implements indir(name,...): invoke a macro looked up by its
// runtime name, whatever that name currently resolves to.
func bIndir(h macro.Host, args []macro.Value) (string, error) {
	def, ok := h.Lookup(args[1].Str())
	if !ok {
		return "", fmt.Errorf("indir: undefined macro %q", args[1].Str())
	}
	callArgs := append([]macro.Value{macro.TextValue(args[1].Str())}, args[2:]...)
	return h.CallMacro(def, callArgs)
}
