package domain

import "time"

// GameRecord summarises one finished game for the local history.
type GameRecord struct {
	ID         string
	Username   string
	FinalScore int
	Turns      int
	Efficacy   float64
	Result     Result
	PlayedAt   time.Time
}
