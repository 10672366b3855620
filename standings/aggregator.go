package standings

import (
	"fmt"
	"sort"
	"time"

	"github.com/qaztech-league/esports-league/models"
)

// ComputeGroupStandings сворачивает результаты матчей в таблицу группы.
// Каждая команда из конфигурации получает строку, даже без сыгранных
// матчей. Матчи с командами вне состава не учитываются и возвращаются
// как skipped — вызывающий логирует их, подсчёт остальных не страдает.
// Функция чистая и идемпотентна: одинаковый вход даёт побайтово
// одинаковый порядок на выходе.
func ComputeGroupStandings(matches []*models.MatchResult, group *models.GroupConfiguration, rules PointRules) ([]*models.GroupStanding, []*models.MatchResult, error) {
	if group == nil {
		return nil, nil, ErrGroupConfigRequired
	}

	now := time.Now()
	table := make(map[string]*models.GroupStanding, len(group.Teams))
	rows := make([]*models.GroupStanding, 0, len(group.Teams))
	for _, team := range group.Teams {
		row := &models.GroupStanding{
			GroupName: group.GroupName,
			TeamName:  team.Name,
			UpdatedAt: now,
		}
		table[team.Name] = row
		rows = append(rows, row)
	}

	var skipped []*models.MatchResult
	for _, m := range matches {
		if err := validateScores(m); err != nil {
			return nil, nil, err
		}

		row1, ok1 := table[m.Team1Name]
		row2, ok2 := table[m.Team2Name]
		if !ok1 || !ok2 {
			skipped = append(skipped, m)
			continue
		}

		winner, decisive := m.Winner()
		if decisive && winner != m.Team1Name && winner != m.Team2Name {
			// Технический победитель не из пары — бракуем матч, не таблицу.
			skipped = append(skipped, m)
			continue
		}
		if !decisive && !rules.AllowDraws {
			return nil, nil, fmt.Errorf("%w: %s %d:%d %s", ErrDrawNotAllowed, m.Team1Name, m.Team1Score, m.Team2Score, m.Team2Name)
		}

		row1.MatchesPlayed++
		row2.MatchesPlayed++
		row1.RoundsWon += m.Team1Score
		row1.RoundsLost += m.Team2Score
		row2.RoundsWon += m.Team2Score
		row2.RoundsLost += m.Team1Score

		switch {
		case !decisive:
			row1.Draws++
			row2.Draws++
			row1.Points += rules.DrawPoints
			row2.Points += rules.DrawPoints
		case winner == m.Team1Name:
			row1.Wins++
			row1.Points += rules.WinPoints
			row2.Losses++
		default:
			row2.Wins++
			row2.Points += rules.WinPoints
			row1.Losses++
		}
	}

	for _, row := range rows {
		row.RoundDifference = row.RoundsWon - row.RoundsLost
	}

	sortTable(rows)
	for i, row := range rows {
		row.Position = i + 1
	}

	return rows, skipped, nil
}

// sortTable — единый порядок таблиц: очки, разница раундов, выигранные
// раунды, затем имя команды. Последний ключ строгий, чтобы две разные
// команды никогда не сравнивались как равные.
func sortTable(rows []*models.GroupStanding) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].RoundDifference != rows[j].RoundDifference {
			return rows[i].RoundDifference > rows[j].RoundDifference
		}
		if rows[i].RoundsWon != rows[j].RoundsWon {
			return rows[i].RoundsWon > rows[j].RoundsWon
		}
		return rows[i].TeamName < rows[j].TeamName
	})
}

type RoundRobinClassifier struct{}

func NewRoundRobinClassifier() StageClassifier {
	return &RoundRobinClassifier{}
}

func (c *RoundRobinClassifier) GetName() string {
	return "RoundRobin"
}

func (c *RoundRobinClassifier) Classify(params ClassifyParams) (*Classification, error) {
	rows, skipped, err := ComputeGroupStandings(params.Matches, params.Group, params.Rules)
	if err != nil {
		return nil, err
	}
	return &Classification{Standings: rows, Skipped: skipped}, nil
}
