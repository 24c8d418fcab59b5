package chatting

import "errors"

// Erros específicos do chat de análise
var (
	ErrNoData          = errors.New("no dataset loaded")
	ErrEmptyQuestion   = errors.New("question must not be empty")
	ErrRateLimited     = errors.New("too many chat requests")
	ErrChatUnavailable = errors.New("chat assistant is not configured")
)
