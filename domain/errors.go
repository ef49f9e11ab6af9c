package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// Quiz errors wrap the generic kinds above so callers can branch with errors.Is
// on either the precise error or its kind.
var (
	ErrNoQuestions        = fmt.Errorf("%w: no questions for category", ErrNotFound)
	ErrRoomNotFound       = fmt.Errorf("%w: room not found", ErrNotFound)
	ErrPlayerNotFound     = fmt.Errorf("%w: player not in room", ErrNotFound)
	ErrRoomNotJoinable    = fmt.Errorf("%w: room is not accepting players", ErrConflict)
	ErrAlreadyJoined      = fmt.Errorf("%w: already joined this room", ErrConflict)
	ErrAlreadyInRoom      = fmt.Errorf("%w: already in another room", ErrConflict)
	ErrAlreadyStarted     = fmt.Errorf("%w: game already started", ErrConflict)
	ErrGameNotStarted     = fmt.Errorf("%w: game has not started", ErrConflict)
	ErrPlayerFinished     = fmt.Errorf("%w: no questions left", ErrConflict)
	ErrAnswerPending      = fmt.Errorf("%w: answer already submitted", ErrConflict)
	ErrInvalidOwnerToken  = fmt.Errorf("%w: invalid owner token", ErrForbidden)
	ErrCodeSpaceExhausted = fmt.Errorf("%w: could not allocate a room code", ErrInternal)
)
