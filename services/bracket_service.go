package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qaztech-league/esports-league/live"
	"github.com/qaztech-league/esports-league/models"
	"github.com/qaztech-league/esports-league/repositories"
	"github.com/qaztech-league/esports-league/standings"
)

// BracketResultInput — результат матча сетки от админки.
type BracketResultInput struct {
	Position        string  `json:"position"`
	Team1Score      int     `json:"team1_score"`
	Team2Score      int     `json:"team2_score"`
	TechnicalWinner *string `json:"technical_winner,omitempty"`
}

type BracketService interface {
	RecordResult(ctx context.Context, stage string, input BracketResultInput) (string, error)
	ListByStage(ctx context.Context, stage string) ([]*models.BracketMatch, error)
	SeedBracket(ctx context.Context, stage string, quarterfinalTeams []string) ([]*models.BracketMatch, error)
}

type bracketService struct {
	db          *sql.DB
	bracketRepo repositories.BracketMatchRepository
	hub         *live.Hub
	topology    *standings.Topology
}

func NewBracketService(db *sql.DB, bracketRepo repositories.BracketMatchRepository, hub *live.Hub, topology *standings.Topology) BracketService {
	return &bracketService{db: db, bracketRepo: bracketRepo, hub: hub, topology: topology}
}

// RecordResult фиксирует результат позиции и продвигает победителя по
// топологии. Вся запись — позиция плюс слот следующего раунда — уходит
// одной транзакцией; при отказе трекера состояние в БД не меняется.
func (s *bracketService) RecordResult(ctx context.Context, stage string, input BracketResultInput) (string, error) {
	var winner string
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		existing, err := s.bracketRepo.ListByStage(ctx, tx, stage)
		if err != nil {
			return fmt.Errorf("failed to load bracket for stage %s: %w", stage, err)
		}
		if len(existing) == 0 {
			return ErrBracketStageNotFound
		}

		tracker := standings.NewTracker(s.topology, existing)
		changed, w, err := tracker.RecordResult(input.Position, input.Team1Score, input.Team2Score, input.TechnicalWinner)
		if err != nil {
			return mapBracketError(err)
		}
		winner = w

		for _, match := range changed {
			if match.ID == 0 {
				match.Stage = stage
				if err := s.bracketRepo.Create(ctx, tx, match); err != nil {
					return fmt.Errorf("failed to create bracket match %s: %w", match.BracketPosition, err)
				}
				continue
			}
			if err := s.bracketRepo.Update(ctx, tx, match); err != nil {
				return fmt.Errorf("failed to update bracket match %s: %w", match.BracketPosition, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom("bracket_"+stage, live.Message{
			Type:    live.MessageBracketUpdated,
			Payload: map[string]string{"position": input.Position, "winner": winner},
			RoomID:  "bracket_" + stage,
		})
	}
	return winner, nil
}

func (s *bracketService) ListByStage(ctx context.Context, stage string) ([]*models.BracketMatch, error) {
	existing, err := s.bracketRepo.ListByStage(ctx, nil, stage)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, ErrBracketStageNotFound
	}
	// Трекер дополняет отсутствующие позиции и отдаёт порядок топологии.
	return standings.NewTracker(s.topology, existing).Matches(), nil
}

// SeedBracket создаёт сетку этапа и рассаживает команды по
// четвертьфиналам в порядке посева: 1–2 в QF1 и так далее.
func (s *bracketService) SeedBracket(ctx context.Context, stage string, quarterfinalTeams []string) ([]*models.BracketMatch, error) {
	if len(quarterfinalTeams) != 8 {
		return nil, fmt.Errorf("%w: expected 8 teams, got %d", ErrValidationFailed, len(quarterfinalTeams))
	}
	seen := make(map[string]bool, len(quarterfinalTeams))
	for _, name := range quarterfinalTeams {
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate team %s", ErrValidationFailed, name)
		}
		seen[name] = true
	}

	var created []*models.BracketMatch
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		tracker := standings.NewTracker(s.topology, nil)
		quarterfinals := []string{"QF1", "QF2", "QF3", "QF4"}
		byPosition := make(map[string]*models.BracketMatch)
		for _, m := range tracker.Matches() {
			byPosition[m.BracketPosition] = m
		}
		for i, pos := range quarterfinals {
			match := byPosition[pos]
			t1 := quarterfinalTeams[i*2]
			t2 := quarterfinalTeams[i*2+1]
			match.Team1Name = &t1
			match.Team2Name = &t2
		}
		for _, match := range tracker.Matches() {
			match.Stage = stage
			if err := s.bracketRepo.Create(ctx, tx, match); err != nil {
				return fmt.Errorf("failed to seed bracket position %s: %w", match.BracketPosition, err)
			}
			created = append(created, match)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func mapBracketError(err error) error {
	switch {
	case errors.Is(err, standings.ErrBracketSlotUnresolved):
		return fmt.Errorf("%w: %v", ErrBracketSlotUnresolved, err)
	case errors.Is(err, standings.ErrBracketSlotLocked):
		return fmt.Errorf("%w: %v", ErrBracketSlotLocked, err)
	case errors.Is(err, standings.ErrBracketPositionUnknown),
		errors.Is(err, standings.ErrBracketDrawNotAllowed),
		errors.Is(err, standings.ErrBracketInvalidWinner),
		errors.Is(err, standings.ErrNegativeScore):
		return fmt.Errorf("%w: %v", ErrBracketResultInvalid, err)
	default:
		return err
	}
}
