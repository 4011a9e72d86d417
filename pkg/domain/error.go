package domain

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidStep   = goerr.New("invalid step")
	ErrChainRunning  = goerr.New("chain is already running")
	ErrTimeline      = goerr.New("timeline error")
	ErrConfiguration = goerr.New("configuration error")
)
