package editor

import "errors"

var (
	ErrGenerationInProgress = errors.New("a generation is already in progress")
	ErrRateLimited          = errors.New("too many generation requests, slow down")
)
