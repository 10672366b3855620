package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/qaztech-league/esports-league/live"
	"github.com/qaztech-league/esports-league/models"
	"github.com/qaztech-league/esports-league/repositories"
	"github.com/qaztech-league/esports-league/standings"
)

// SwissResultInput — команда перехода: исход матча плюс счёт по раундам.
type SwissResultInput struct {
	TeamName   string              `json:"team_name"`
	Outcome    models.SwissOutcome `json:"outcome"`
	RoundsWon  int                 `json:"rounds_won"`
	RoundsLost int                 `json:"rounds_lost"`
}

type SwissService interface {
	ApplyResult(ctx context.Context, stage string, input SwissResultInput) (*models.SwissStanding, error)
	ListByStage(ctx context.Context, stage string) ([]*models.SwissStanding, error)
	BucketsByStage(ctx context.Context, stage string) ([]standings.SwissBucket, error)
	RegisterTeam(ctx context.Context, stage, teamName string) (*models.SwissStanding, error)
}

type swissService struct {
	swissRepo repositories.SwissStandingRepository
	hub       *live.Hub
	rules     standings.SwissRules
}

func NewSwissService(swissRepo repositories.SwissStandingRepository, hub *live.Hub, rules standings.SwissRules) SwissService {
	return &swissService{swissRepo: swissRepo, hub: hub, rules: rules}
}

// ApplyResult применяет исход к записи команды через машину состояний
// швейцарки. Перевод записи — явная команда, а не свободная правка
// полей: недопустимые переходы отклоняются, запись не меняется.
func (s *swissService) ApplyResult(ctx context.Context, stage string, input SwissResultInput) (*models.SwissStanding, error) {
	if input.TeamName == "" {
		return nil, ErrTeamNameRequired
	}
	if input.Outcome != models.SwissWin && input.Outcome != models.SwissLoss {
		return nil, fmt.Errorf("%w: %q", ErrSwissOutcomeInvalid, input.Outcome)
	}

	standing, err := s.swissRepo.GetByStageAndTeam(ctx, nil, stage, input.TeamName)
	if err != nil {
		if errors.Is(err, repositories.ErrSwissStandingNotFound) {
			return nil, ErrSwissStandingNotFound
		}
		return nil, err
	}

	if err := standings.ApplyResult(standing, input.Outcome, input.RoundsWon, input.RoundsLost, s.rules); err != nil {
		if errors.Is(err, standings.ErrSwissTeamFinalized) {
			return nil, fmt.Errorf("%w: %s", ErrSwissTeamFinalized, input.TeamName)
		}
		return nil, err
	}

	if err := s.swissRepo.Update(ctx, nil, standing); err != nil {
		return nil, fmt.Errorf("failed to store swiss standing for %s: %w", input.TeamName, err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom("swiss_"+stage, live.Message{
			Type:    live.MessageSwissStandings,
			Payload: standing,
			RoomID:  "swiss_" + stage,
		})
	}
	return standing, nil
}

func (s *swissService) ListByStage(ctx context.Context, stage string) ([]*models.SwissStanding, error) {
	return s.swissRepo.ListByStage(ctx, stage)
}

func (s *swissService) BucketsByStage(ctx context.Context, stage string) ([]standings.SwissBucket, error) {
	list, err := s.swissRepo.ListByStage(ctx, stage)
	if err != nil {
		return nil, err
	}
	return standings.Buckets(list, s.rules), nil
}

// RegisterTeam заводит команду в этап со счётом 0-0.
func (s *swissService) RegisterTeam(ctx context.Context, stage, teamName string) (*models.SwissStanding, error) {
	if teamName == "" {
		return nil, ErrTeamNameRequired
	}
	standing := &models.SwissStanding{
		Stage:    stage,
		TeamName: teamName,
		Status:   models.SwissActive,
	}
	if err := s.swissRepo.Create(ctx, standing); err != nil {
		return nil, fmt.Errorf("failed to register %s in swiss stage %s: %w", teamName, stage, err)
	}
	return standing, nil
}
