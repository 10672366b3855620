package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaztech-league/esports-league/models"
)

func swissTeam(stage, name string, wins, losses int) *models.SwissStanding {
	rules := DefaultSwissRules()
	return &models.SwissStanding{
		Stage:    stage,
		TeamName: name,
		Wins:     wins,
		Losses:   losses,
		Status:   rules.StatusFor(wins, losses),
	}
}

func TestApplyResult_Transitions(t *testing.T) {
	rules := DefaultSwissRules()

	tests := []struct {
		name       string
		start      *models.SwissStanding
		outcome    models.SwissOutcome
		wantStatus models.SwissStatus
		wantErr    error
	}{
		{
			name:       "win from zero",
			start:      swissTeam("s2", "Navi", 0, 0),
			outcome:    models.SwissWin,
			wantStatus: models.SwissActive,
		},
		{
			name:       "third win qualifies",
			start:      swissTeam("s2", "Navi", 2, 1),
			outcome:    models.SwissWin,
			wantStatus: models.SwissQualified,
		},
		{
			name:       "third loss eliminates",
			start:      swissTeam("s2", "Astra", 1, 2),
			outcome:    models.SwissLoss,
			wantStatus: models.SwissEliminated,
		},
		{
			name:    "qualified is absorbing",
			start:   swissTeam("s2", "Navi", 3, 1),
			outcome: models.SwissWin,
			wantErr: ErrSwissTeamFinalized,
		},
		{
			name:    "eliminated is absorbing",
			start:   swissTeam("s2", "Astra", 0, 3),
			outcome: models.SwissLoss,
			wantErr: ErrSwissTeamFinalized,
		},
		{
			name:    "unknown outcome",
			start:   swissTeam("s2", "Navi", 1, 1),
			outcome: models.SwissOutcome("retire"),
			wantErr: ErrSwissUnknownOutcome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.start
			err := ApplyResult(tt.start, tt.outcome, 16, 10, rules)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// Отклонённый переход не должен трогать запись.
				assert.Equal(t, before.Wins, tt.start.Wins)
				assert.Equal(t, before.Losses, tt.start.Losses)
				assert.Equal(t, before.RoundsWon, tt.start.RoundsWon)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, tt.start.Status)
			assert.LessOrEqual(t, tt.start.Wins, rules.WinThreshold)
			assert.LessOrEqual(t, tt.start.Losses, rules.LossThreshold)
		})
	}
}

func TestApplyResult_ThreeStraightWins(t *testing.T) {
	rules := DefaultSwissRules()
	st := swissTeam("s2", "Aurora", 0, 0)

	for i := 0; i < 3; i++ {
		require.NoError(t, ApplyResult(st, models.SwissWin, 13, 7, rules))
	}
	assert.Equal(t, models.SwissQualified, st.Status)

	// Четвёртый результат для квалифицированной команды отклоняется.
	err := ApplyResult(st, models.SwissWin, 13, 7, rules)
	require.ErrorIs(t, err, ErrSwissTeamFinalized)
	assert.Equal(t, 3, st.Wins)
}

func TestBuckets_Partition(t *testing.T) {
	rules := DefaultSwissRules()
	list := []*models.SwissStanding{
		swissTeam("s2", "A", 3, 0),
		swissTeam("s2", "B", 3, 1),
		swissTeam("s2", "C", 2, 1),
		swissTeam("s2", "D", 2, 1),
		swissTeam("s2", "E", 1, 2),
		swissTeam("s2", "F", 0, 3),
	}

	buckets := Buckets(list, rules)

	total := 0
	seen := make(map[string]int)
	for _, b := range buckets {
		total += len(b.Teams)
		for _, team := range b.Teams {
			seen[team.TeamName]++
			assert.Equal(t, b.Record.Wins, team.Wins)
			assert.Equal(t, b.Record.Losses, team.Losses)
		}
	}
	assert.Equal(t, len(list), total)
	for name, count := range seen {
		assert.Equal(t, 1, count, "team %s must be in exactly one bucket", name)
	}

	// Квалифицированные корзины сверху, выбывшие снизу.
	assert.Equal(t, models.SwissQualified, buckets[0].Status)
	assert.Equal(t, models.SwissEliminated, buckets[len(buckets)-1].Status)
}

func TestBuckets_RecordLabel(t *testing.T) {
	assert.Equal(t, "2-1", SwissRecord{Wins: 2, Losses: 1}.String())
}
