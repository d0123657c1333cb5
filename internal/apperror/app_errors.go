package apperror

import "errors"

var (
	ErrInvalidName   = errors.New("room name is required")
	ErrAlreadyExists = errors.New("room already exists")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
)
