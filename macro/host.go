package macro

// ConfigView is the read-only slice of processor configuration a builtin
// ever needs to inspect (e.g. __file__ quoting the current quote
// delimiters). Kept separate from package config so that package macro,
// a leaf package shared by input/token/builtin, never imports config or
// expand (which would create an import cycle through Host).
type ConfigView struct {
	LeftQuote         string
	RightQuote        string
	BeginComment      string
	EndComment        string
	NoGNUExtensions   bool
	PrefixAllBuiltins bool
	NestingLimit      int
	ProgramName       string
}

// Host is the narrow contract a running processor exposes to builtins.
// It lets package builtin be implemented without importing package
// expand (which owns the concrete Processor and in turn imports
// builtin to register the builtin table) — the same decoupling
// text/template uses between its exec and parse halves.
//
// Grounded on the "processor" object every function in
// original_source/m4_builtin.py is handed as its first argument.
type Host interface {
	// Macro table.
	Define(name string, def *Definition)
	Pushdef(name string, def *Definition)
	Popdef(name string)
	Undefine(name string)
	Lookup(name string) (*Definition, bool)
	CanonicalBuiltin(name string) (*Definition, bool)
	CallMacro(def *Definition, args []Value) (string, error)
	DumpDefinitions(names []string)
	PendingDocComment() string

	// Input stack.
	PushString(s string)
	PushFile(name string, silent bool) error
	PushMacroHandle(def *Definition)
	CurrentFile() (name string, line int, ok bool)
	SkipLine() error

	// Diversion manager.
	Divert(n int)
	DivNum() int
	Undivert(ids []int) error
	UndivertAll() error

	// Trace/debug sink.
	SetTrace(name string, on bool)
	SetDebugLevel(flags string) error
	SetDebugFile(path string) error

	// Configuration.
	SetQuotes(left, right string)
	SetComments(begin, end string)
	Config() ConfigView

	// Process control.
	Errprint(s string)
	SetReturnCode(code int)
	ReturnCode() int
	Exit(code int)
	QueueWrap(text string)
}
