package room

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomNotEmpty   = errors.New("room is not empty")
	ErrPlayerNotFound = errors.New("player not found")
)
