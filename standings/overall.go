package standings

import (
	"errors"
	"time"

	"github.com/qaztech-league/esports-league/models"
)

var ErrNoGroupsConfigured = errors.New("no groups configured for overall ranking")

// ComputeOverallStandings строит общий зачёт лиги: та же свёртка, что и
// в группе, но аккумулятор один на команду по всем группам этапа.
// После ранжирования каждой строке назначается тир по отсечкам.
func ComputeOverallStandings(matches []*models.MatchResult, groups []*models.GroupConfiguration, rules PointRules, cutlines []TierCutline) ([]*models.OverallStanding, []*models.MatchResult, error) {
	if len(groups) == 0 {
		return nil, nil, ErrNoGroupsConfigured
	}

	// Объединённый состав всех групп — одна «виртуальная группа» лиги.
	merged := &models.GroupConfiguration{GroupName: "overall"}
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, team := range g.Teams {
			if seen[team.Name] {
				continue
			}
			seen[team.Name] = true
			merged.Teams = append(merged.Teams, team)
		}
	}

	rows, skipped, err := ComputeGroupStandings(matches, merged, rules)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	overall := make([]*models.OverallStanding, 0, len(rows))
	for _, row := range rows {
		overall = append(overall, &models.OverallStanding{
			TeamName:        row.TeamName,
			MatchesPlayed:   row.MatchesPlayed,
			Wins:            row.Wins,
			Draws:           row.Draws,
			Losses:          row.Losses,
			RoundsWon:       row.RoundsWon,
			RoundsLost:      row.RoundsLost,
			RoundDifference: row.RoundDifference,
			Points:          row.Points,
			Position:        row.Position,
			Tier:            TierForRank(cutlines, row.Position),
			UpdatedAt:       now,
		})
	}

	return overall, skipped, nil
}

type OverallClassifier struct {
	Groups   []*models.GroupConfiguration
	Cutlines []TierCutline
}

func NewOverallClassifier(groups []*models.GroupConfiguration, cutlines []TierCutline) *OverallClassifier {
	return &OverallClassifier{Groups: groups, Cutlines: cutlines}
}

func (c *OverallClassifier) GetName() string {
	return "Overall"
}

// Classify реализует StageClassifier поверх объединённого состава;
// тиры добираются через ComputeOverallStandings.
func (c *OverallClassifier) Classify(params ClassifyParams) (*Classification, error) {
	overall, skipped, err := ComputeOverallStandings(params.Matches, c.Groups, params.Rules, c.Cutlines)
	if err != nil {
		return nil, err
	}
	rows := make([]*models.GroupStanding, 0, len(overall))
	for _, o := range overall {
		rows = append(rows, &models.GroupStanding{
			GroupName:       "overall",
			TeamName:        o.TeamName,
			MatchesPlayed:   o.MatchesPlayed,
			Wins:            o.Wins,
			Draws:           o.Draws,
			Losses:          o.Losses,
			RoundsWon:       o.RoundsWon,
			RoundsLost:      o.RoundsLost,
			RoundDifference: o.RoundDifference,
			Points:          o.Points,
			Position:        o.Position,
			UpdatedAt:       o.UpdatedAt,
		})
	}
	return &Classification{Standings: rows, Skipped: skipped}, nil
}
