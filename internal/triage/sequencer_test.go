package triage

import "testing"

func TestSequencer_InBounds(t *testing.T) {
	seq := NewSequencer(DefaultQuestions())
	for i := 0; i < seq.Len(); i++ {
		question, ok := seq.Next(i)
		if !ok {
			t.Fatalf("index %d should be in bounds", i)
		}
		if question != DefaultQuestions()[i] {
			t.Errorf("index %d: expected %q, got %q", i, DefaultQuestions()[i], question)
		}
	}
}

func TestSequencer_OutOfBounds(t *testing.T) {
	seq := NewSequencer(DefaultQuestions())
	if _, ok := seq.Next(seq.Len()); ok {
		t.Error("index past the list should signal scripted phase complete")
	}
	if _, ok := seq.Next(-1); ok {
		t.Error("negative index should signal scripted phase complete")
	}
}

func TestSequencer_OrderStable(t *testing.T) {
	seq := NewSequencer(DefaultQuestions())
	first, _ := seq.Next(3)
	for i := 0; i < 5; i++ {
		again, _ := seq.Next(3)
		if again != first {
			t.Fatalf("same index must always yield the same question: %q vs %q", first, again)
		}
	}
}

func TestSequencer_CopiesInput(t *testing.T) {
	questions := []string{"one", "two"}
	seq := NewSequencer(questions)
	questions[0] = "mutated"
	if got, _ := seq.Next(0); got != "one" {
		t.Errorf("sequencer must not alias caller slice, got %q", got)
	}
}

func TestDefaultQuestions_Count(t *testing.T) {
	if len(DefaultQuestions()) != 10 {
		t.Errorf("expected 10 scripted questions, got %d", len(DefaultQuestions()))
	}
}
