package builtin

import "github.com/akovalkov/m4-processor/macro"

// bDefine implements define(name, body?) (spec §4.6): replace the top
// definition of name. A missing body is the empty string; a handle
// body (from defn on a builtin) re-registers that builtin under name.
func bDefine(h macro.Host, args []macro.Value) (string, error) {
	name := args[1].Str()
	def := bodyToDefinition(name, args)
	def.DocComment = h.PendingDocComment()
	h.Define(name, def)
	return "", nil
}

// bPushdef is bDefine's pushdef sibling: prepend instead of replace.
func bPushdef(h macro.Host, args []macro.Value) (string, error) {
	name := args[1].Str()
	def := bodyToDefinition(name, args)
	def.DocComment = h.PendingDocComment()
	h.Pushdef(name, def)
	return "", nil
}

func bodyToDefinition(name string, args []macro.Value) *macro.Definition {
	if len(args) < 3 {
		return macro.NewTextDefinition(name, "")
	}
	if args[2].IsHandle && args[2].Handle != nil {
		return args[2].Handle.WithName(name)
	}
	return macro.NewTextDefinition(name, args[2].Str())
}

// bPopdef implements popdef(name+): pop each listed name's stack head.
func bPopdef(h macro.Host, args []macro.Value) (string, error) {
	for _, a := range args[1:] {
		h.Popdef(a.Str())
	}
	return "", nil
}

// bUndefine implements undefine(name+): remove each name entirely.
func bUndefine(h macro.Host, args []macro.Value) (string, error) {
	for _, a := range args[1:] {
		h.Undefine(a.Str())
	}
	return "", nil
}

// bDefn implements defn(name+) (spec §4.6): a text macro's body is
// returned quoted (so it won't be rescanned); a builtin is pushed as a
// one-shot MACDEF source so it reappears as an opaque handle token.
func bDefn(h macro.Host, args []macro.Value) (string, error) {
	cfg := h.Config()
	var out string
	for _, a := range args[1:] {
		def, ok := h.Lookup(a.Str())
		if !ok {
			continue
		}
		switch def.Kind {
		case macro.KindBuiltin:
			h.PushMacroHandle(def)
		default:
			out += cfg.LeftQuote + def.Body + cfg.RightQuote
		}
	}
	return out, nil
}

// bIfdef implements ifdef(name, t, f?): return t if name is defined,
// else f (or empty).
func bIfdef(h macro.Host, args []macro.Value) (string, error) {
	_, ok := h.Lookup(args[1].Str())
	if ok {
		return arg(args, 2, ""), nil
	}
	return arg(args, 3, ""), nil
}

// bIfelse implements ifelse(a,b,t,...,else?) (spec §4.6): compares in
// triples, returning the first matching triple's third element; a
// lone leftover argument is the default else; ifelse(x) is empty.
func bIfelse(h macro.Host, args []macro.Value) (string, error) {
	rest := args[1:]
	if len(rest) == 1 {
		return "", nil
	}
	for len(rest) >= 3 {
		if rest[0].Str() == rest[1].Str() {
			return rest[2].Str(), nil
		}
		if len(rest) == 4 {
			return rest[3].Str(), nil
		}
		if len(rest) == 3 {
			return "", nil
		}
		rest = rest[3:]
	}
	return "", nil
}
