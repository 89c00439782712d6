package landmarks

import (
	"errors"
	"testing"
)

func TestBoardApplyOverwrites(t *testing.T) {
	var seen []string
	b := NewBoard(func(text string) { seen = append(seen, text) })

	msg := []byte(`{"landmarks":[{"x":1,"y":2}]}`)
	want := "[\n  {\n    \"x\": 1,\n    \"y\": 2\n  }\n]"

	for i := 0; i < 2; i++ {
		if err := b.Apply(msg); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if got := b.Text(); got != want {
			t.Errorf("Text() after apply %d = %q, want %q", i+1, got, want)
		}
	}

	if b.Updates() != 2 {
		t.Errorf("Updates() = %d, want 2", b.Updates())
	}
	if len(seen) != 2 || seen[0] != seen[1] {
		t.Errorf("onChange saw %q", seen)
	}

	if err := b.Apply([]byte(`{"landmarks":[]}`)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := b.Text(); got != "[]" {
		t.Errorf("Text() = %q, want []", got)
	}
}

func TestBoardMalformedLeavesText(t *testing.T) {
	b := NewBoard(nil)
	b.Set("previous")

	if err := b.Apply([]byte(`{oops`)); !errors.Is(err, ErrMalformed) {
		t.Fatalf("Apply() error = %v, want ErrMalformed", err)
	}
	if b.Text() != "previous" {
		t.Errorf("Text() = %q, want previous", b.Text())
	}
	if b.Updates() != 1 {
		t.Errorf("Updates() = %d, want 1", b.Updates())
	}
}
