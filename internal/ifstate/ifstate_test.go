package ifstate

import "testing"

func TestBasicIf(t *testing.T) {
	s := New()
	if !s.Reading() {
		t.Fatal("empty stack should read")
	}
	s.Push(ReadingIf)
	if !s.Reading() {
		t.Fatal("ReadingIf should read")
	}
	s.Flip()
	if s.Reading() {
		t.Fatal("flipped ReadingIf (PassingElse) should not read")
	}
}

func TestBasicNegativeIf(t *testing.T) {
	s := New()
	s.Push(PassingIf)
	if s.Reading() {
		t.Fatal("PassingIf should not read")
	}
	s.Flip()
	if !s.Reading() {
		t.Fatal("flipped PassingIf (ReadingElse) should read")
	}
}

func TestNestedIf(t *testing.T) {
	s := New()
	s.Push(ReadingIf)
	if !s.Reading() {
		t.Fatal("outer ReadingIf should read")
	}

	s.Push(PassingIf)
	if s.Reading() {
		t.Fatal("nested PassingIf should not read")
	}
	s.Flip()
	if !s.Reading() {
		t.Fatal("nested flipped PassingIf should read")
	}
	s.Pop()

	s.Flip()
	if s.Reading() {
		t.Fatal("outer flipped ReadingIf should not read")
	}
}

func TestNestedNegativeIf(t *testing.T) {
	s := New()
	s.Push(PassingIf)
	if s.Reading() {
		t.Fatal("outer PassingIf should not read")
	}

	s.Push(ReadingIf)
	if s.Reading() {
		t.Fatal("nested ReadingIf under a dead parent should not read")
	}
	s.Flip()
	if s.Reading() {
		t.Fatal("flip inside a dead parent must stay dead")
	}
	s.Pop()

	s.Flip()
	if !s.Reading() {
		t.Fatal("outer flipped PassingIf should read")
	}
}

func TestFlipOnEmptyStackIsNoop(t *testing.T) {
	s := New()
	s.Flip()
	if !s.Reading() || s.Len() != 0 {
		t.Fatal("flip on an empty stack must be a no-op")
	}
}

func TestFlipDoubleElsePopsWithoutReplacement(t *testing.T) {
	s := New()
	s.Push(ReadingIf)
	s.Flip() // -> PassingElse
	s.Flip() // double else: pop, no replacement
	if s.Len() != 0 {
		t.Fatalf("double else should leave an empty stack, got depth %d", s.Len())
	}
}

func TestFlipPassingChildStaysPassingChild(t *testing.T) {
	s := New()
	s.Push(PassingChild)
	s.Flip()
	if s.Len() != 1 {
		t.Fatalf("expected 1 frame, got %d", s.Len())
	}
	if top, ok := s.Pop(); !ok || top != PassingChild {
		t.Fatalf("expected PassingChild to survive flip, got %v", top)
	}
}
