package standings

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaztech-league/esports-league/models"
)

func TestTierForRank_Cutlines(t *testing.T) {
	cutlines := DefaultCutlines()

	tests := []struct {
		rank int
		want models.QualificationTier
	}{
		{1, models.TierDirect},
		{11, models.TierDirect},
		{12, models.TierSecondary},
		{21, models.TierSecondary},
		{22, models.TierEliminated},
		{40, models.TierEliminated},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForRank(cutlines, tt.rank), "rank %d", tt.rank)
	}
}

func TestTierForRank_UnorderedCutlinesNormalized(t *testing.T) {
	cutlines := []TierCutline{
		{MaxRank: 21, Tier: models.TierSecondary},
		{MaxRank: 11, Tier: models.TierDirect},
	}
	assert.Equal(t, models.TierDirect, TierForRank(cutlines, 5))
	assert.Equal(t, models.TierSecondary, TierForRank(cutlines, 15))
}

func TestComputeOverallStandings_MergesGroups(t *testing.T) {
	groups := []*models.GroupConfiguration{
		groupOf("A", "A1", "A2"),
		groupOf("B", "B1", "B2"),
	}
	matches := []*models.MatchResult{
		result("A", "A1", "A2", 16, 10),
		result("B", "B1", "B2", 16, 2),
	}

	rows, skipped, err := ComputeOverallStandings(matches, groups, DefaultCS2Rules(), DefaultCutlines())
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, rows, 4)

	// B1 выше A1: очки равны, разница раундов решает.
	assert.Equal(t, "B1", rows[0].TeamName)
	assert.Equal(t, "A1", rows[1].TeamName)
	for i, r := range rows {
		assert.Equal(t, i+1, r.Position)
		assert.Equal(t, models.TierDirect, r.Tier)
	}
}

func TestComputeOverallStandings_TierBoundaries(t *testing.T) {
	// 24 команды в одной виртуальной группе; первые n команд получают
	// по n побед через синтетическое расписание — строгий порядок рангов.
	var teams []string
	for i := 1; i <= 24; i++ {
		teams = append(teams, fmt.Sprintf("Team%02d", i))
	}
	group := groupOf("A", teams...)

	var matches []*models.MatchResult
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			// Команда с меньшим индексом побеждает: Team01 сильнее всех.
			matches = append(matches, result("A", teams[i], teams[j], 16, 10))
		}
	}

	rows, _, err := ComputeOverallStandings(matches, []*models.GroupConfiguration{group}, DefaultCS2Rules(), DefaultCutlines())
	require.NoError(t, err)
	require.Len(t, rows, 24)

	assert.Equal(t, models.TierDirect, rows[10].Tier, "rank 11 qualifies directly")
	assert.Equal(t, models.TierSecondary, rows[11].Tier, "rank 12 goes to the secondary stage")
	assert.Equal(t, models.TierSecondary, rows[20].Tier)
	assert.Equal(t, models.TierEliminated, rows[21].Tier)
}

func TestComputeOverallStandings_NoGroups(t *testing.T) {
	_, _, err := ComputeOverallStandings(nil, nil, DefaultCS2Rules(), DefaultCutlines())
	require.ErrorIs(t, err, ErrNoGroupsConfigured)
}

func TestStageClassifiers(t *testing.T) {
	group := groupOf("A", "One", "Two")
	matches := []*models.MatchResult{result("A", "One", "Two", 16, 6)}

	rr := NewRoundRobinClassifier()
	assert.Equal(t, "RoundRobin", rr.GetName())
	got, err := rr.Classify(ClassifyParams{Matches: matches, Group: group, Rules: DefaultCS2Rules()})
	require.NoError(t, err)
	require.Len(t, got.Standings, 2)
	assert.Equal(t, "One", got.Standings[0].TeamName)

	overall := NewOverallClassifier([]*models.GroupConfiguration{group}, DefaultCutlines())
	assert.Equal(t, "Overall", overall.GetName())
	got, err = overall.Classify(ClassifyParams{Matches: matches, Rules: DefaultCS2Rules()})
	require.NoError(t, err)
	require.Len(t, got.Standings, 2)
}
