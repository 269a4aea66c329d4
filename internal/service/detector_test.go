package service

import "testing"

func TestDetector_IsThank(t *testing.T) {
	d := NewDetector([]string{"thanks", "thank", "ty", "merci", "спасибо", "danke"})

	positive := []string{
		"thanks <@123>",
		"Thank you so much!",
		"ty!!!",
		"merci beaucoup",
		"огромное спасибо",
		"DANKE schön",
		"ok...thanks",
	}
	for _, msg := range positive {
		if !d.IsThank(msg) {
			t.Fatalf("expected thank: %q", msg)
		}
	}

	negative := []string{
		"",
		"hello there",
		"thankful for everything",
		"nothanks",
		"tyrant",
		"that's great",
	}
	for _, msg := range negative {
		if d.IsThank(msg) {
			t.Fatalf("expected not a thank: %q", msg)
		}
	}
}

func TestDetector_ExactTokenOnly(t *testing.T) {
	d := NewDetector([]string{"thx"})
	if d.IsThank("thxx") {
		t.Fatalf("substring must not match")
	}
	if !d.IsThank("ok, thx.") {
		t.Fatalf("punctuation-separated token must match")
	}
}
