// Package defines holds the macro-name -> definition table the
// preprocessor reads and mutates during a run.
package defines

import (
	"sync"

	"github.com/cwbudde/go-armaconfig/pkg/token"
)

// Arg is one formal/actual macro argument: a sequence of TokenPairs,
// typically a single Word but allowed to be any token run.
type Arg []*token.TokenPair

// Define is one macro definition: a parameterless Word macro (Args is nil)
// or a parameterized Function macro (Args holds one entry per parameter).
type Define struct {
	Args      []Arg
	Statement []*token.TokenPair
}

// NewWordDefine builds a parameterless macro.
func NewWordDefine(statement []*token.TokenPair) Define {
	return Define{Statement: statement}
}

// NewFunctionDefine builds a parameterized macro.
func NewFunctionDefine(args []Arg, statement []*token.TokenPair) Define {
	return Define{Args: args, Statement: statement}
}

// IsFunction reports whether d takes parameters.
func (d Define) IsFunction() bool {
	return d.Args != nil
}

// Clone returns a copy of the Statement slice so a caller can accumulate
// into it without aliasing the table's backing array.
func (d Define) Clone() Define {
	stmt := make([]*token.TokenPair, len(d.Statement))
	for i, tp := range d.Statement {
		stmt[i] = tp.Clone()
	}
	return Define{Args: d.Args, Statement: stmt}
}

// Table is a thread-safe macro-name -> Define mapping. The preprocessor
// creates one per run (or receives one pre-seeded by a caller) and mutates
// it as #define/#undef directives are processed.
type Table struct {
	mu      sync.RWMutex
	entries map[string]Define
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: make(map[string]Define)}
}

// NewWord installs a parameterless macro, replacing any prior definition.
func (t *Table) NewWord(name string, statement []*token.TokenPair) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = NewWordDefine(statement)
}

// NewFunction installs a parameterized macro, replacing any prior definition.
func (t *Table) NewFunction(name string, args []Arg, statement []*token.TokenPair) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = NewFunctionDefine(args, statement)
}

// Get returns the Define bound to name, if any.
func (t *Table) Get(name string) (Define, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.entries[name]
	return d, ok
}

// Defined reports whether name is currently bound.
func (t *Table) Defined(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[name]
	return ok
}

// Remove unbinds name. Removing an unbound name is a no-op.
func (t *Table) Remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, name)
}

// Snapshot returns a new Table holding a shallow copy of every current
// binding: the scope a function-macro expansion extends with its
// parameter bindings without mutating the caller's table.
func (t *Table) Snapshot() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	clone := New()
	for name, d := range t.entries {
		clone.entries[name] = d
	}
	return clone
}

// All returns every current binding, for callers that need to enumerate
// the table (e.g. config seeding diagnostics). Returned as a map rather
// than an ordered name/Define list: nothing in this package depends on
// enumeration order.
func (t *Table) All() map[string]Define {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]Define, len(t.entries))
	for name, d := range t.entries {
		out[name] = d
	}
	return out
}
