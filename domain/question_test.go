package domain

import "testing"

func TestQuestionIsCorrect(t *testing.T) {
	q := Question{CorrectAnswer: "b"}

	tests := []struct {
		answer string
		want   bool
	}{
		{"b", true},
		{"B", false},
		{" b ", false},
		{"a", false},
		{"", false},
		{"bb", false},
	}
	for _, tt := range tests {
		if got := q.IsCorrect(tt.answer); got != tt.want {
			t.Errorf("IsCorrect(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestQuestionOptions(t *testing.T) {
	q := Question{OptionA: "Chicken", OptionB: "Cow", OptionC: "Cat", OptionD: "Fish"}
	opts := q.Options()
	if len(opts) != 4 || opts[OptionB] != "Cow" || opts[OptionD] != "Fish" {
		t.Fatalf("Options = %v", opts)
	}
}

func TestValidTag(t *testing.T) {
	for _, tag := range []string{"a", "b", "c", "d"} {
		if !ValidTag(tag) {
			t.Errorf("ValidTag(%q) = false", tag)
		}
	}
	for _, tag := range []string{"", "e", "ab", "A", " a"} {
		if ValidTag(tag) {
			t.Errorf("ValidTag(%q) = true", tag)
		}
	}
}
