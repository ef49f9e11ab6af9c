package game

// Outbound payloads. Field names follow what the browser client reads.

type RoomCreatedContent struct {
	RoomCode   string `json:"roomCode"`
	OwnerToken string `json:"ownerToken"`
	Category   string `json:"category"`
	Total      int    `json:"total"`
}

type JoinSuccessContent struct {
	RoomCode string `json:"roomCode"`
	Category string `json:"category"`
}

type PlayerListContent struct {
	Players []Player `json:"players"`
}

type GameStartedContent struct {
	RoomCode string `json:"roomCode"`
	Total    int    `json:"total"`
	Players  int    `json:"players"`
}

type QuestionContent struct {
	Index   int               `json:"index"`
	Total   int               `json:"total"`
	Prompt  string            `json:"prompt"`
	Image   string            `json:"image,omitempty"`
	Options map[string]string `json:"options"`
}

type AnswerResultContent struct {
	IsCorrect  bool   `json:"isCorrect"`
	YourAnswer string `json:"yourAnswer"`
	TimedOut   bool   `json:"timedOut,omitempty"`
}

type GameFinishedContent struct {
	Score   int `json:"score"`
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
	Rank    int `json:"rank"`
}

type PlayerFinishedEvent struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}
