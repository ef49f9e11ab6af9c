package domain

// Inbound event types.
const (
	EventCreateRoom   = "create_room"
	EventJoinRoom     = "join_room"
	EventStartGame    = "start_game"
	EventSubmitAnswer = "submit_answer"
)

// Outbound event types.
const (
	EventRoomCreated        = "room_created"
	EventJoinSuccess        = "join_success"
	EventUpdatePlayerList   = "update_player_list"
	EventGameStartedTeacher = "game_started_teacher"
	EventNewQuestion        = "new_question"
	EventAnswerResult       = "answer_result"
	EventGameFinished       = "game_finished"
	EventLiveUpdate         = "live_update"
	EventLeaderboardUpdate  = "leaderboard_update"
	EventError              = "error"
)

// Lifecycle events published to the external event sink.
const (
	EventGameStarted    = "game_started"
	EventPlayerFinished = "player_finished"
	EventRoomFinished   = "room_finished"
	EventRoomClosed     = "room_closed"
)
