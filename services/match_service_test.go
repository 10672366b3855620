package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qaztech-league/esports-league/models"
	"github.com/qaztech-league/esports-league/standings"
)

func testGroup() *models.GroupConfiguration {
	return &models.GroupConfiguration{
		GroupName:   "A",
		DisplayName: "Group A",
		Teams: []models.Team{
			{ID: 1, Name: "Aurora"},
			{ID: 2, Name: "Breeze"},
			{ID: 3, Name: "Cinder"},
		},
	}
}

func TestValidateMatchInput(t *testing.T) {
	rules := standings.DefaultCS2Rules()
	winner := "Aurora"
	outsider := "Nomad"

	tests := []struct {
		name    string
		input   MatchResultInput
		wantErr error
	}{
		{
			name:  "valid result",
			input: MatchResultInput{GroupName: "A", Team1Name: "Aurora", Team2Name: "Breeze", Team1Score: 16, Team2Score: 9},
		},
		{
			name:    "missing team name",
			input:   MatchResultInput{GroupName: "A", Team1Name: "Aurora"},
			wantErr: ErrMatchTeamRequired,
		},
		{
			name:    "team plays itself",
			input:   MatchResultInput{GroupName: "A", Team1Name: "Aurora", Team2Name: "Aurora", Team1Score: 16},
			wantErr: ErrMatchTeamsIdentical,
		},
		{
			name:    "negative score",
			input:   MatchResultInput{GroupName: "A", Team1Name: "Aurora", Team2Name: "Breeze", Team1Score: -2, Team2Score: 16},
			wantErr: ErrMatchScoreNegative,
		},
		{
			name:    "draw forbidden by stage rules",
			input:   MatchResultInput{GroupName: "A", Team1Name: "Aurora", Team2Name: "Breeze", Team1Score: 15, Team2Score: 15},
			wantErr: ErrMatchDrawNotAllowed,
		},
		{
			name:    "team outside roster",
			input:   MatchResultInput{GroupName: "A", Team1Name: "Aurora", Team2Name: "Nomad", Team1Score: 16, Team2Score: 4},
			wantErr: ErrMatchTeamNotInGroup,
		},
		{
			name:    "technical win without winner",
			input:   MatchResultInput{GroupName: "A", Team1Name: "Aurora", Team2Name: "Breeze", TechnicalWin: true},
			wantErr: ErrTechnicalWinnerRequired,
		},
		{
			name:    "technical winner outside pair",
			input:   MatchResultInput{GroupName: "A", Team1Name: "Aurora", Team2Name: "Breeze", TechnicalWin: true, TechnicalWinner: &outsider},
			wantErr: ErrTechnicalWinnerNotInPair,
		},
		{
			name: "technical win allows any score",
			input: MatchResultInput{
				GroupName: "A", Team1Name: "Aurora", Team2Name: "Breeze",
				Team1Score: 0, Team2Score: 0, TechnicalWin: true, TechnicalWinner: &winner,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMatchInput(tt.input, testGroup(), rules)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateMatchInput_DrawAllowedByRules(t *testing.T) {
	rules := standings.PointRules{WinPoints: 3, DrawPoints: 1, AllowDraws: true}
	input := MatchResultInput{GroupName: "A", Team1Name: "Aurora", Team2Name: "Breeze", Team1Score: 12, Team2Score: 12}
	require.NoError(t, validateMatchInput(input, testGroup(), rules))
}
