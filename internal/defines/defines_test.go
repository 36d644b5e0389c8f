package defines

import (
	"testing"

	"github.com/cwbudde/go-armaconfig/pkg/token"
)

func word(lit string) []*token.TokenPair {
	return []*token.TokenPair{token.Anon(token.New(token.Word, lit))}
}

func TestWordLifecycle(t *testing.T) {
	tbl := New()
	if tbl.Defined("A") {
		t.Fatal("A should not be defined yet")
	}
	tbl.NewWord("A", word("true"))
	if !tbl.Defined("A") {
		t.Fatal("A should be defined after NewWord")
	}
	d, ok := tbl.Get("A")
	if !ok || d.IsFunction() {
		t.Fatal("A should be a word macro")
	}
	tbl.Remove("A")
	if tbl.Defined("A") {
		t.Fatal("A should not be defined after Remove")
	}
}

func TestFunctionDefine(t *testing.T) {
	tbl := New()
	tbl.NewFunction("SAY_HI", []Arg{word("N")}, word("Hi N"))
	d, ok := tbl.Get("SAY_HI")
	if !ok || !d.IsFunction() {
		t.Fatal("SAY_HI should be a function macro")
	}
	if len(d.Args) != 1 {
		t.Fatalf("expected 1 param, got %d", len(d.Args))
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	tbl := New()
	tbl.NewWord("A", word("1"))
	snap := tbl.Snapshot()
	snap.NewWord("B", word("2"))
	if tbl.Defined("B") {
		t.Fatal("mutating a snapshot must not affect the source table")
	}
	if !snap.Defined("A") {
		t.Fatal("snapshot should carry over existing bindings")
	}
}
