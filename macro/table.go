package macro

// Table maps a macro name to a non-empty, most-recent-first stack of
// definitions. Grounded on the teacher's rules.go ruleSet, which keeps a
// map[string][]int of rule indices per target name; here the stack holds
// the definitions themselves, since (unlike mk's rules) m4 macro
// definitions shadow rather than accumulate.
type Table struct {
	defs map[string][]*Definition
}

func NewTable() *Table {
	return &Table{defs: make(map[string][]*Definition)}
}

// Insert replaces the entire stack with [def] (spec §4.3 "insert").
func (t *Table) Insert(name string, def *Definition) {
	def.Name = name
	t.defs[name] = []*Definition{def}
}

// Pushdef prepends def to the existing stack, creating it if absent.
func (t *Table) Pushdef(name string, def *Definition) {
	def.Name = name
	t.defs[name] = append([]*Definition{def}, t.defs[name]...)
}

// Popdef removes the head of the stack; the key is removed entirely once
// the stack is empty.
func (t *Table) Popdef(name string) {
	stack := t.defs[name]
	if len(stack) == 0 {
		return
	}
	if len(stack) == 1 {
		delete(t.defs, name)
		return
	}
	t.defs[name] = stack[1:]
}

// Undefine removes name's entire stack.
func (t *Table) Undefine(name string) {
	delete(t.defs, name)
}

// Lookup returns the head definition, if any.
func (t *Table) Lookup(name string) (*Definition, bool) {
	stack := t.defs[name]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[0], true
}

// Names returns every currently-defined macro name, for dumpdef().
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.defs))
	for name := range t.defs {
		names = append(names, name)
	}
	return names
}
