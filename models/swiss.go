package models

import "time"

// SwissStatus соответствует ENUM в БД.
type SwissStatus string

const (
	SwissActive     SwissStatus = "active"
	SwissQualified  SwissStatus = "qualified"
	SwissEliminated SwissStatus = "eliminated"
)

// SwissStanding — текущая запись команды в швейцарском этапе.
// Статус выводится из пары (wins, losses) и порогов этапа.
type SwissStanding struct {
	ID         int         `json:"id" db:"id"`
	Stage      string      `json:"stage" db:"stage"`
	TeamName   string      `json:"team_name" db:"team_name"`
	Wins       int         `json:"wins" db:"wins"`
	Losses     int         `json:"losses" db:"losses"`
	RoundsWon  int         `json:"rounds_won" db:"rounds_won"`
	RoundsLost int         `json:"rounds_lost" db:"rounds_lost"`
	Status     SwissStatus `json:"status" db:"status"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// SwissOutcome — исход, применяемый к записи команды.
type SwissOutcome string

const (
	SwissWin  SwissOutcome = "win"
	SwissLoss SwissOutcome = "loss"
)
