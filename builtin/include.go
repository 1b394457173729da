package builtin

import "github.com/akovalkov/m4-processor/macro"

// bInclude implements include(f): push a file source for f, aborting
// with the underlying open error if it cannot be found.
func bInclude(h macro.Host, args []macro.Value) (string, error) {
	return "", h.PushFile(args[1].Str(), false)
}

// bSinclude is include's silent variant: open failures are swallowed.
func bSinclude(h macro.Host, args []macro.Value) (string, error) {
	_ = h.PushFile(args[1].Str(), true)
	return "", nil
}
