package domain

// Option tags of a multiple choice question.
const (
	OptionA = "a"
	OptionB = "b"
	OptionC = "c"
	OptionD = "d"
)

type Question struct {
	ID            int64  `json:"id"`
	Category      string `json:"category"`
	Text          string `json:"question_text"`
	ImagePath     string `json:"image_path,omitempty"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
}

// Options returns the option texts keyed by tag.
func (q Question) Options() map[string]string {
	return map[string]string{
		OptionA: q.OptionA,
		OptionB: q.OptionB,
		OptionC: q.OptionC,
		OptionD: q.OptionD,
	}
}

// IsCorrect compares tags exactly. Tags are stored lower case.
func (q Question) IsCorrect(answer string) bool {
	return answer != "" && answer == q.CorrectAnswer
}

// ValidTag reports whether tag names one of the four options.
func ValidTag(tag string) bool {
	switch tag {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}
