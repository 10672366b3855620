package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaztech-league/esports-league/models"
)

func groupOf(name string, teams ...string) *models.GroupConfiguration {
	g := &models.GroupConfiguration{GroupName: name, DisplayName: name}
	for i, t := range teams {
		g.Teams = append(g.Teams, models.Team{ID: i + 1, Name: t})
	}
	return g
}

func result(group, t1, t2 string, s1, s2 int) *models.MatchResult {
	return &models.MatchResult{GroupName: group, Team1Name: t1, Team2Name: t2, Team1Score: s1, Team2Score: s2}
}

func TestComputeGroupStandings_GroupScenario(t *testing.T) {
	group := groupOf("A", "Team1", "Team2", "Team3", "Team4")
	matches := []*models.MatchResult{
		result("A", "Team1", "Team2", 16, 10),
		result("A", "Team1", "Team3", 16, 5),
		result("A", "Team2", "Team4", 16, 14),
	}

	rows, skipped, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, rows, 4)

	byName := make(map[string]*models.GroupStanding)
	for _, r := range rows {
		byName[r.TeamName] = r
	}

	team1 := byName["Team1"]
	assert.Equal(t, 2, team1.Wins)
	assert.Equal(t, 0, team1.Losses)
	assert.Equal(t, 6, team1.Points)
	assert.Equal(t, 17, team1.RoundDifference)
	assert.Equal(t, 1, team1.Position)

	// Team4 выше Team3: обе 0-1 и 0 очков, но разница раундов -2 против -11.
	assert.Equal(t, -2, byName["Team4"].RoundDifference)
	assert.Equal(t, -11, byName["Team3"].RoundDifference)
	assert.Equal(t, 3, byName["Team4"].Position)
	assert.Equal(t, 4, byName["Team3"].Position)
}

func TestComputeGroupStandings_ZeroMatchTeamsAppear(t *testing.T) {
	group := groupOf("B", "Alpha", "Beta", "Gamma")

	rows, skipped, err := ComputeGroupStandings(nil, group, DefaultCS2Rules())
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Zero(t, r.MatchesPlayed)
		assert.Zero(t, r.Points)
		assert.NotZero(t, r.Position)
	}
}

func TestComputeGroupStandings_Deterministic(t *testing.T) {
	group := groupOf("A", "Zen", "Yak", "Xol", "Wex")
	matches := []*models.MatchResult{
		result("A", "Zen", "Yak", 16, 12),
		result("A", "Xol", "Wex", 16, 12),
		result("A", "Zen", "Xol", 16, 14),
	}

	first, _, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.NoError(t, err)
	second, _, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].TeamName, second[i].TeamName)
		assert.Equal(t, first[i].Position, second[i].Position)
		assert.Equal(t, first[i].Points, second[i].Points)
	}
}

func TestComputeGroupStandings_Conservation(t *testing.T) {
	group := groupOf("A", "A1", "A2", "A3", "A4")
	matches := []*models.MatchResult{
		result("A", "A1", "A2", 16, 9),
		result("A", "A3", "A4", 16, 13),
		result("A", "A1", "A3", 16, 10),
		result("A", "A2", "A4", 16, 7),
	}

	rows, _, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.NoError(t, err)

	var wins, roundsWon, roundsLost int
	for _, r := range rows {
		wins += r.Wins
		roundsWon += r.RoundsWon
		roundsLost += r.RoundsLost
	}
	assert.Equal(t, len(matches), wins, "one win per decisive match")
	assert.Equal(t, roundsWon, roundsLost, "rounds are conserved")
}

func TestComputeGroupStandings_TieBreakTotality(t *testing.T) {
	group := groupOf("A", "Bravo", "Alpha")
	// Идентичные показатели у обеих команд: ничья по очкам, разнице и
	// выигранным раундам. Порядок обязан остаться строгим — по имени.
	matches := []*models.MatchResult{
		result("A", "Alpha", "Bravo", 16, 14),
		result("A", "Bravo", "Alpha", 16, 14),
	}

	rows, _, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].TeamName)
	assert.Equal(t, "Bravo", rows[1].TeamName)
	assert.NotEqual(t, rows[0].Position, rows[1].Position)
}

func TestComputeGroupStandings_UnknownTeamSkipped(t *testing.T) {
	group := groupOf("A", "Known1", "Known2")
	matches := []*models.MatchResult{
		result("A", "Known1", "Known2", 16, 3),
		result("A", "Known1", "Ghost", 16, 0),
	}

	rows, skipped, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.Equal(t, "Ghost", skipped[0].Team2Name)

	byName := make(map[string]*models.GroupStanding)
	for _, r := range rows {
		byName[r.TeamName] = r
	}
	// Пропущенный матч не должен просочиться в подсчёт Known1.
	assert.Equal(t, 1, byName["Known1"].MatchesPlayed)
	assert.Equal(t, 16, byName["Known1"].RoundsWon)
}

func TestComputeGroupStandings_TechnicalWin(t *testing.T) {
	group := groupOf("A", "Faded", "Forfeit")
	winner := "Faded"
	matches := []*models.MatchResult{
		{GroupName: "A", Team1Name: "Forfeit", Team2Name: "Faded", Team1Score: 16, Team2Score: 2, TechnicalWin: true, TechnicalWinner: &winner},
	}

	rows, _, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.NoError(t, err)

	byName := make(map[string]*models.GroupStanding)
	for _, r := range rows {
		byName[r.TeamName] = r
	}
	// Техническая победа перебивает счёт на сервере.
	assert.Equal(t, 1, byName["Faded"].Wins)
	assert.Equal(t, 3, byName["Faded"].Points)
	assert.Equal(t, 1, byName["Forfeit"].Losses)
}

func TestComputeGroupStandings_DrawHandling(t *testing.T) {
	group := groupOf("A", "One", "Two")
	matches := []*models.MatchResult{result("A", "One", "Two", 15, 15)}

	_, _, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.ErrorIs(t, err, ErrDrawNotAllowed)

	rules := PointRules{WinPoints: 3, DrawPoints: 1, AllowDraws: true}
	rows, _, err := ComputeGroupStandings(matches, group, rules)
	require.NoError(t, err)
	for _, r := range rows {
		assert.Equal(t, 1, r.Draws)
		assert.Equal(t, 1, r.Points)
	}
}

func TestComputeGroupStandings_NegativeScoreRejected(t *testing.T) {
	group := groupOf("A", "One", "Two")
	matches := []*models.MatchResult{result("A", "One", "Two", -1, 5)}

	_, _, err := ComputeGroupStandings(matches, group, DefaultCS2Rules())
	require.ErrorIs(t, err, ErrNegativeScore)
}

func TestComputeGroupStandings_NilGroup(t *testing.T) {
	_, _, err := ComputeGroupStandings(nil, nil, DefaultCS2Rules())
	require.ErrorIs(t, err, ErrGroupConfigRequired)
}
