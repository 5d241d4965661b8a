package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server: address is required")
	ErrInvalidPort          = errors.New("server: invalid port")
	ErrServerAlreadyRunning = errors.New("server: already running")
	ErrListen               = errors.New("server: listen failed")
	ErrShutdown             = errors.New("server: shutdown failed")
)
