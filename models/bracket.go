package models

import "time"

// BracketMatch — узел сетки плей-офф. Участники могут быть nil, пока не
// сыграны фидерные матчи; победитель прописывается в слот следующего
// раунда по статической топологии сетки.
type BracketMatch struct {
	ID              int     `json:"id" db:"id"`
	Stage           string  `json:"stage" db:"stage"`
	BracketPosition string  `json:"bracket_position" db:"bracket_position"`
	Team1Name       *string `json:"team1_name,omitempty" db:"team1_name"`
	Team2Name       *string `json:"team2_name,omitempty" db:"team2_name"`
	Team1Score      *int    `json:"team1_score,omitempty" db:"team1_score"`
	Team2Score      *int    `json:"team2_score,omitempty" db:"team2_score"`
	WinnerName      *string `json:"winner_name,omitempty" db:"winner_name"`
	IsPlayed        bool    `json:"is_played" db:"is_played"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
