package game

import "time"

const (
	DefaultSettleDelay  = 2 * time.Second
	DefaultAnswerPoints = 100
	DefaultCodeLength   = 5
)

// Settings controls pacing and scoring of every room of a manager.
type Settings struct {
	SettleDelay  time.Duration
	AnswerPoints int
	CodeLength   int
	// QuestionTimeout forces a wrong answer when a player stays silent this long.
	// Zero disables it.
	QuestionTimeout time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		SettleDelay:  DefaultSettleDelay,
		AnswerPoints: DefaultAnswerPoints,
		CodeLength:   DefaultCodeLength,
	}
}

func (s Settings) withDefaults() Settings {
	if s.SettleDelay < 0 {
		s.SettleDelay = 0
	}
	if s.AnswerPoints <= 0 {
		s.AnswerPoints = DefaultAnswerPoints
	}
	if s.CodeLength <= 0 {
		s.CodeLength = DefaultCodeLength
	}
	if s.QuestionTimeout < 0 {
		s.QuestionTimeout = 0
	}
	return s
}
