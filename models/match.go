package models

import "time"

// MatchResult — завершённый матч группового этапа.
// TechnicalWinner переопределяет победителя по счёту (технические поражения, неявки).
type MatchResult struct {
	ID              int       `json:"id" db:"id"`
	GroupName       string    `json:"group_name" db:"group_name"`
	Team1Name       string    `json:"team1_name" db:"team1_name"`
	Team2Name       string    `json:"team2_name" db:"team2_name"`
	Team1Score      int       `json:"team1_score" db:"team1_score"`
	Team2Score      int       `json:"team2_score" db:"team2_score"`
	TechnicalWin    bool      `json:"technical_win" db:"technical_win"`
	TechnicalWinner *string   `json:"technical_winner,omitempty" db:"technical_winner"`
	MatchDate       time.Time `json:"match_date" db:"match_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Winner возвращает имя победителя и false для ничьей.
func (m *MatchResult) Winner() (string, bool) {
	if m.TechnicalWin && m.TechnicalWinner != nil {
		return *m.TechnicalWinner, true
	}
	switch {
	case m.Team1Score > m.Team2Score:
		return m.Team1Name, true
	case m.Team2Score > m.Team1Score:
		return m.Team2Name, true
	default:
		return "", false
	}
}
