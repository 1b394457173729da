package macro

// Kind distinguishes a text-template definition from a builtin binding.
type Kind int

const (
	KindText Kind = iota
	KindBuiltin
)

// BuiltinFunc is the shape every builtin handler has. It receives the
// host processor (through the narrow Host contract, to avoid an import
// cycle with package expand) and the full argument vector, arguments[0]
// being the invoking name per spec §4.6.
//
// The return value is text to be pushed back onto the input as a new
// string source (spec §4.4 expand_macro step 7); an empty return pushes
// nothing.
type BuiltinFunc func(h Host, args []Value) (string, error)

// Definition is either a text template or a builtin binding, per spec §3.
type Definition struct {
	Kind Kind

	// Name under which this definition currently lives; used for trace
	// and dumpdef display. Table.Insert and Table.Pushdef set it to the
	// name they register the definition under.
	Name string

	// Text template body (Kind == KindText). See textmacro.go for $-substitution.
	Body string

	// Builtin binding (Kind == KindBuiltin).
	Func           BuiltinFunc
	GroksMacroArgs bool // receive builtin-valued arguments transparently vs coerce to ""
	BlindNoArgs    bool // require an immediately following '(' to be treated as invocation

	Traced bool

	// DocComment holds whatever doc-comment text (spec §4.4) was
	// pending at the moment this definition was registered by
	// define/pushdef; dumpdef prints it ahead of the definition body.
	DocComment string
}

func NewTextDefinition(name, body string) *Definition {
	return &Definition{Kind: KindText, Name: name, Body: body}
}

func NewBuiltinDefinition(name string, fn BuiltinFunc, groksMacroArgs, blindNoArgs bool) *Definition {
	return &Definition{
		Kind:           KindBuiltin,
		Name:           name,
		Func:           fn,
		GroksMacroArgs: groksMacroArgs,
		BlindNoArgs:    blindNoArgs,
	}
}

// WithName returns a shallow copy of d renamed, used when define/pushdef
// re-registers a builtin obtained from defn() under a new name (spec
// §4.6 define contract: "If body is a builtin handle ... re-register the
// builtin under name").
func (d *Definition) WithName(name string) *Definition {
	cp := *d
	cp.Name = name
	return &cp
}
