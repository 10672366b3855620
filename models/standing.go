package models

import "time"

// GroupStanding — строка таблицы группы. Полностью производная от
// MatchResult + GroupConfiguration, хранится только как кеш и всегда
// перезаписывается целиком при пересчёте.
type GroupStanding struct {
	ID              int       `json:"id" db:"id"`
	GroupName       string    `json:"group_name" db:"group_name"`
	TeamName        string    `json:"team_name" db:"team_name"`
	MatchesPlayed   int       `json:"matches_played" db:"matches_played"`
	Wins            int       `json:"wins" db:"wins"`
	Draws           int       `json:"draws" db:"draws"`
	Losses          int       `json:"losses" db:"losses"`
	RoundsWon       int       `json:"rounds_won" db:"rounds_won"`
	RoundsLost      int       `json:"rounds_lost" db:"rounds_lost"`
	RoundDifference int       `json:"round_difference" db:"round_difference"`
	Points          int       `json:"points" db:"points"`
	Position        int       `json:"position" db:"position"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

// QualificationTier — куда команда проходит по итогам общего зачёта.
type QualificationTier string

const (
	TierDirect     QualificationTier = "direct"
	TierSecondary  QualificationTier = "secondary"
	TierEliminated QualificationTier = "eliminated"
)

// OverallStanding — общий зачёт лиги поверх всех групп этапа,
// с тиром квалификации по отсечкам рейтинга.
type OverallStanding struct {
	ID              int               `json:"id" db:"id"`
	TeamName        string            `json:"team_name" db:"team_name"`
	MatchesPlayed   int               `json:"matches_played" db:"matches_played"`
	Wins            int               `json:"wins" db:"wins"`
	Draws           int               `json:"draws" db:"draws"`
	Losses          int               `json:"losses" db:"losses"`
	RoundsWon       int               `json:"rounds_won" db:"rounds_won"`
	RoundsLost      int               `json:"rounds_lost" db:"rounds_lost"`
	RoundDifference int               `json:"round_difference" db:"round_difference"`
	Points          int               `json:"points" db:"points"`
	Position        int               `json:"position" db:"position"`
	Tier            QualificationTier `json:"tier" db:"tier"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}
