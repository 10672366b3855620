package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaztech-league/esports-league/models"
)

func strPtr(s string) *string { return &s }

func seededQuarterfinals() []*models.BracketMatch {
	return []*models.BracketMatch{
		{Stage: "playoffs", BracketPosition: "QF1", Team1Name: strPtr("Alpha"), Team2Name: strPtr("Hexa")},
		{Stage: "playoffs", BracketPosition: "QF2", Team1Name: strPtr("Delta"), Team2Name: strPtr("Echo")},
		{Stage: "playoffs", BracketPosition: "QF3", Team1Name: strPtr("Gamma"), Team2Name: strPtr("Fox")},
		{Stage: "playoffs", BracketPosition: "QF4", Team1Name: strPtr("Bravo"), Team2Name: strPtr("Omega")},
	}
}

func TestRecordResult_UnresolvedFeederRejected(t *testing.T) {
	tracker := NewTracker(DefaultPlayoffTopology(), seededQuarterfinals())

	// QF1/QF2 не сыграны — у SF1 нет участников.
	_, _, err := tracker.RecordResult("SF1", 16, 10, nil)
	require.ErrorIs(t, err, ErrBracketSlotUnresolved)

	for _, m := range tracker.Matches() {
		assert.False(t, m.IsPlayed, "no state may change on a rejected result")
	}
}

func TestRecordResult_WinnerPropagates(t *testing.T) {
	tracker := NewTracker(DefaultPlayoffTopology(), seededQuarterfinals())

	changed, winner, err := tracker.RecordResult("QF1", 16, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", winner)
	require.Len(t, changed, 2)
	assert.Equal(t, "QF1", changed[0].BracketPosition)
	assert.Equal(t, "SF1", changed[1].BracketPosition)
	require.NotNil(t, changed[1].Team1Name)
	assert.Equal(t, "Alpha", *changed[1].Team1Name)

	_, winner, err = tracker.RecordResult("QF2", 11, 16, nil)
	require.NoError(t, err)
	assert.Equal(t, "Echo", winner)

	// Оба фидера SF1 определены — полуфинал можно фиксировать.
	_, winner, err = tracker.RecordResult("SF1", 16, 13, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", winner)
}

func TestRecordResult_FullBracketToChampion(t *testing.T) {
	tracker := NewTracker(DefaultPlayoffTopology(), seededQuarterfinals())

	for _, pos := range []string{"QF1", "QF2", "QF3", "QF4"} {
		_, _, err := tracker.RecordResult(pos, 16, 10, nil)
		require.NoError(t, err)
	}
	_, _, err := tracker.RecordResult("SF1", 16, 8, nil)
	require.NoError(t, err)
	_, _, err = tracker.RecordResult("SF2", 16, 9, nil)
	require.NoError(t, err)

	_, winner, err := tracker.RecordResult("FINAL", 16, 12, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", winner)

	champ, ok := tracker.Champion()
	require.True(t, ok)
	assert.Equal(t, "Alpha", champ)
}

func TestRecordResult_TechnicalWinner(t *testing.T) {
	tracker := NewTracker(DefaultPlayoffTopology(), seededQuarterfinals())

	_, winner, err := tracker.RecordResult("QF1", 3, 16, strPtr("Alpha"))
	require.NoError(t, err)
	assert.Equal(t, "Alpha", winner, "technical winner overrides the score")

	_, _, err = tracker.RecordResult("QF2", 16, 2, strPtr("Nobody"))
	require.ErrorIs(t, err, ErrBracketInvalidWinner)
}

func TestRecordResult_DownstreamLock(t *testing.T) {
	tracker := NewTracker(DefaultPlayoffTopology(), seededQuarterfinals())

	_, _, err := tracker.RecordResult("QF1", 16, 5, nil)
	require.NoError(t, err)
	_, _, err = tracker.RecordResult("QF2", 16, 5, nil)
	require.NoError(t, err)

	// Пока SF1 не сыгран, результат QF1 можно поправить.
	_, winner, err := tracker.RecordResult("QF1", 10, 16, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hexa", winner)

	_, _, err = tracker.RecordResult("SF1", 16, 3, nil)
	require.NoError(t, err)

	// SF1 сыгран — перезапись QF1 заблокирована.
	_, _, err = tracker.RecordResult("QF1", 16, 0, nil)
	require.ErrorIs(t, err, ErrBracketSlotLocked)
}

func TestRecordResult_DrawRejected(t *testing.T) {
	tracker := NewTracker(DefaultPlayoffTopology(), seededQuarterfinals())

	_, _, err := tracker.RecordResult("QF1", 15, 15, nil)
	require.ErrorIs(t, err, ErrBracketDrawNotAllowed)
}

func TestRecordResult_UnknownPosition(t *testing.T) {
	tracker := NewTracker(DefaultPlayoffTopology(), seededQuarterfinals())

	_, _, err := tracker.RecordResult("GF2", 16, 2, nil)
	require.ErrorIs(t, err, ErrBracketPositionUnknown)
}

func TestNewTopology_Validation(t *testing.T) {
	_, err := NewTopology([]PositionSpec{
		{Position: "A", DestPosition: "MISSING", DestSlot: 1},
	})
	require.ErrorIs(t, err, ErrBracketBadTopology)

	_, err = NewTopology([]PositionSpec{
		{Position: "A", DestPosition: "B", DestSlot: 3},
		{Position: "B"},
	})
	require.ErrorIs(t, err, ErrBracketBadTopology)
}
