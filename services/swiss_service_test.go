package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaztech-league/esports-league/models"
	"github.com/qaztech-league/esports-league/repositories"
	"github.com/qaztech-league/esports-league/standings"
)

type fakeSwissRepo struct {
	byKey  map[string]*models.SwissStanding
	nextID int
}

func newFakeSwissRepo() *fakeSwissRepo {
	return &fakeSwissRepo{byKey: make(map[string]*models.SwissStanding)}
}

func swissKey(stage, team string) string { return stage + "/" + team }

func (r *fakeSwissRepo) Create(_ context.Context, standing *models.SwissStanding) error {
	key := swissKey(standing.Stage, standing.TeamName)
	if _, ok := r.byKey[key]; ok {
		return repositories.ErrSwissStandingConflict
	}
	r.nextID++
	standing.ID = r.nextID
	copied := *standing
	r.byKey[key] = &copied
	return nil
}

func (r *fakeSwissRepo) GetByStageAndTeam(_ context.Context, _ repositories.SQLExecutor, stage, teamName string) (*models.SwissStanding, error) {
	standing, ok := r.byKey[swissKey(stage, teamName)]
	if !ok {
		return nil, repositories.ErrSwissStandingNotFound
	}
	copied := *standing
	return &copied, nil
}

func (r *fakeSwissRepo) Update(_ context.Context, _ repositories.SQLExecutor, standing *models.SwissStanding) error {
	key := swissKey(standing.Stage, standing.TeamName)
	if _, ok := r.byKey[key]; !ok {
		return repositories.ErrSwissStandingNotFound
	}
	copied := *standing
	r.byKey[key] = &copied
	return nil
}

func (r *fakeSwissRepo) ListByStage(_ context.Context, stage string) ([]*models.SwissStanding, error) {
	out := make([]*models.SwissStanding, 0)
	for _, s := range r.byKey {
		if s.Stage == stage {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func TestSwissService_ApplyResult(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSwissRepo()
	svc := NewSwissService(repo, nil, standings.DefaultSwissRules())

	_, err := svc.RegisterTeam(ctx, "stage2", "Aurora")
	require.NoError(t, err)

	// Три победы подряд — квалификация.
	for i := 0; i < 3; i++ {
		st, err := svc.ApplyResult(ctx, "stage2", SwissResultInput{
			TeamName: "Aurora", Outcome: models.SwissWin, RoundsWon: 13, RoundsLost: 9,
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, st.Wins)
	}

	stored, err := repo.GetByStageAndTeam(ctx, nil, "stage2", "Aurora")
	require.NoError(t, err)
	assert.Equal(t, models.SwissQualified, stored.Status)

	// Четвёртый результат отклоняется, запись в репозитории не меняется.
	_, err = svc.ApplyResult(ctx, "stage2", SwissResultInput{TeamName: "Aurora", Outcome: models.SwissWin})
	require.ErrorIs(t, err, ErrSwissTeamFinalized)

	after, err := repo.GetByStageAndTeam(ctx, nil, "stage2", "Aurora")
	require.NoError(t, err)
	assert.Equal(t, 3, after.Wins)
	assert.Equal(t, 39, after.RoundsWon)
}

func TestSwissService_ApplyResultValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewSwissService(newFakeSwissRepo(), nil, standings.DefaultSwissRules())

	_, err := svc.ApplyResult(ctx, "stage2", SwissResultInput{TeamName: "", Outcome: models.SwissWin})
	require.ErrorIs(t, err, ErrTeamNameRequired)

	_, err = svc.ApplyResult(ctx, "stage2", SwissResultInput{TeamName: "Ghost", Outcome: "surrender"})
	require.ErrorIs(t, err, ErrSwissOutcomeInvalid)

	_, err = svc.ApplyResult(ctx, "stage2", SwissResultInput{TeamName: "Ghost", Outcome: models.SwissLoss})
	require.ErrorIs(t, err, ErrSwissStandingNotFound)
}

func TestSwissService_BucketsPartition(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSwissRepo()
	svc := NewSwissService(repo, nil, standings.DefaultSwissRules())

	for i := 0; i < 8; i++ {
		_, err := svc.RegisterTeam(ctx, "stage2", fmt.Sprintf("Team%d", i))
		require.NoError(t, err)
	}
	for i := 0; i < 4; i++ {
		_, err := svc.ApplyResult(ctx, "stage2", SwissResultInput{
			TeamName: fmt.Sprintf("Team%d", i), Outcome: models.SwissWin,
		})
		require.NoError(t, err)
	}

	buckets, err := svc.BucketsByStage(ctx, "stage2")
	require.NoError(t, err)

	total := 0
	for _, b := range buckets {
		total += len(b.Teams)
	}
	assert.Equal(t, 8, total)
	require.Len(t, buckets, 2)
	assert.Equal(t, standings.SwissRecord{Wins: 1, Losses: 0}, buckets[0].Record)
	assert.Equal(t, standings.SwissRecord{Wins: 0, Losses: 0}, buckets[1].Record)
}
