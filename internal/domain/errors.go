package domain

import "errors"

var (
	ErrEmptyAction      = errors.New("action is empty")
	ErrEmptyUsername    = errors.New("username is empty")
	ErrUsernameRequired = errors.New("please set a username first")
	ErrUsernameLocked   = errors.New("username is locked until reset")
	ErrTurnInFlight     = errors.New("a turn is already in flight")
	ErrGameOver         = errors.New("game is over")

	ErrNarratorUnavailable = errors.New("could not reach the narrator")
)
