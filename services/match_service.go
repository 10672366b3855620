package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qaztech-league/esports-league/models"
	"github.com/qaztech-league/esports-league/repositories"
	"github.com/qaztech-league/esports-league/standings"
)

// MatchResultInput — ввод админки для создания/правки результата.
type MatchResultInput struct {
	GroupName       string     `json:"group_name"`
	Team1Name       string     `json:"team1_name"`
	Team2Name       string     `json:"team2_name"`
	Team1Score      int        `json:"team1_score"`
	Team2Score      int        `json:"team2_score"`
	TechnicalWin    bool       `json:"technical_win"`
	TechnicalWinner *string    `json:"technical_winner,omitempty"`
	MatchDate       *time.Time `json:"match_date,omitempty"`
}

type MatchService interface {
	CreateResult(ctx context.Context, input MatchResultInput) (*models.MatchResult, error)
	UpdateResult(ctx context.Context, id int, input MatchResultInput) (*models.MatchResult, error)
	DeleteResult(ctx context.Context, id int) error
	GetResult(ctx context.Context, id int) (*models.MatchResult, error)
	ListByGroup(ctx context.Context, groupName string) ([]*models.MatchResult, error)
}

type matchService struct {
	matchRepo        repositories.MatchResultRepository
	groupRepo        repositories.GroupConfigurationRepository
	standingsService StandingsService
	rules            standings.PointRules
}

func NewMatchService(
	matchRepo repositories.MatchResultRepository,
	groupRepo repositories.GroupConfigurationRepository,
	standingsService StandingsService,
	rules standings.PointRules,
) MatchService {
	return &matchService{
		matchRepo:        matchRepo,
		groupRepo:        groupRepo,
		standingsService: standingsService,
		rules:            rules,
	}
}

// validateMatchInput отбрасывает некорректный ввод до того, как он
// коснётся агрегатора: пустые и совпадающие имена, отрицательный счёт,
// ничья в этапе без ничьих, технический победитель не из пары, команды
// вне состава группы.
func validateMatchInput(input MatchResultInput, group *models.GroupConfiguration, rules standings.PointRules) error {
	if input.Team1Name == "" || input.Team2Name == "" {
		return ErrMatchTeamRequired
	}
	if input.Team1Name == input.Team2Name {
		return fmt.Errorf("%w: %s", ErrMatchTeamsIdentical, input.Team1Name)
	}
	if input.Team1Score < 0 || input.Team2Score < 0 {
		return fmt.Errorf("%w: %d:%d", ErrMatchScoreNegative, input.Team1Score, input.Team2Score)
	}

	if input.TechnicalWin {
		if input.TechnicalWinner == nil || *input.TechnicalWinner == "" {
			return ErrTechnicalWinnerRequired
		}
		if *input.TechnicalWinner != input.Team1Name && *input.TechnicalWinner != input.Team2Name {
			return fmt.Errorf("%w: %q", ErrTechnicalWinnerNotInPair, *input.TechnicalWinner)
		}
	} else if input.Team1Score == input.Team2Score && !rules.AllowDraws {
		return fmt.Errorf("%w: %d:%d", ErrMatchDrawNotAllowed, input.Team1Score, input.Team2Score)
	}

	roster := make(map[string]bool, len(group.Teams))
	for _, t := range group.Teams {
		roster[t.Name] = true
	}
	if !roster[input.Team1Name] {
		return fmt.Errorf("%w: %s in group %s", ErrMatchTeamNotInGroup, input.Team1Name, group.GroupName)
	}
	if !roster[input.Team2Name] {
		return fmt.Errorf("%w: %s in group %s", ErrMatchTeamNotInGroup, input.Team2Name, group.GroupName)
	}
	return nil
}

func (s *matchService) loadGroup(ctx context.Context, groupName string) (*models.GroupConfiguration, error) {
	if groupName == "" {
		return nil, ErrGroupNameRequired
	}
	group, err := s.groupRepo.GetByName(ctx, groupName)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func inputToMatch(input MatchResultInput) *models.MatchResult {
	match := &models.MatchResult{
		GroupName:       input.GroupName,
		Team1Name:       input.Team1Name,
		Team2Name:       input.Team2Name,
		Team1Score:      input.Team1Score,
		Team2Score:      input.Team2Score,
		TechnicalWin:    input.TechnicalWin,
		TechnicalWinner: input.TechnicalWinner,
		MatchDate:       time.Now(),
	}
	if input.MatchDate != nil {
		match.MatchDate = *input.MatchDate
	}
	return match
}

// CreateResult сохраняет результат и синхронно пересчитывает таблицу
// группы и общий зачёт — читатели не видят устаревших таблиц после
// успешного ответа админке.
func (s *matchService) CreateResult(ctx context.Context, input MatchResultInput) (*models.MatchResult, error) {
	group, err := s.loadGroup(ctx, input.GroupName)
	if err != nil {
		return nil, err
	}
	if err := validateMatchInput(input, group, s.rules); err != nil {
		return nil, err
	}

	match := inputToMatch(input)
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, fmt.Errorf("failed to create match result: %w", err)
	}

	if err := s.recompute(ctx, input.GroupName); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) UpdateResult(ctx context.Context, id int, input MatchResultInput) (*models.MatchResult, error) {
	existing, err := s.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}

	group, err := s.loadGroup(ctx, input.GroupName)
	if err != nil {
		return nil, err
	}
	if err := validateMatchInput(input, group, s.rules); err != nil {
		return nil, err
	}

	match := inputToMatch(input)
	match.ID = id
	if input.MatchDate == nil {
		match.MatchDate = existing.MatchDate
	}
	if err := s.matchRepo.Update(ctx, nil, match); err != nil {
		if errors.Is(err, repositories.ErrMatchResultNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update match result %d: %w", id, err)
	}

	// Перенос матча между группами задевает обе таблицы.
	if existing.GroupName != input.GroupName {
		if err := s.recompute(ctx, existing.GroupName); err != nil {
			return nil, err
		}
	}
	if err := s.recompute(ctx, input.GroupName); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) DeleteResult(ctx context.Context, id int) error {
	existing, err := s.GetResult(ctx, id)
	if err != nil {
		return err
	}

	if err := s.matchRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrMatchResultNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete match result %d: %w", id, err)
	}
	return s.recompute(ctx, existing.GroupName)
}

func (s *matchService) GetResult(ctx context.Context, id int) (*models.MatchResult, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchResultNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListByGroup(ctx context.Context, groupName string) ([]*models.MatchResult, error) {
	if _, err := s.loadGroup(ctx, groupName); err != nil {
		return nil, err
	}
	return s.matchRepo.ListByGroup(ctx, nil, groupName)
}

func (s *matchService) recompute(ctx context.Context, groupName string) error {
	if err := s.standingsService.RecomputeGroup(ctx, groupName); err != nil {
		return fmt.Errorf("failed to recompute group %s: %w", groupName, err)
	}
	if err := s.standingsService.RecomputeOverall(ctx); err != nil {
		return fmt.Errorf("failed to recompute overall standings: %w", err)
	}
	return nil
}
