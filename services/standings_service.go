package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/qaztech-league/esports-league/live"
	"github.com/qaztech-league/esports-league/models"
	"github.com/qaztech-league/esports-league/repositories"
	"github.com/qaztech-league/esports-league/standings"
)

// Сколько групп пересчитывается параллельно при полном синке. Каждая
// группа перезаписывается в своей транзакции, поэтому параллельный
// пересчёт безопасен.
const syncConcurrency = 4

type StandingsService interface {
	GetGroupStandings(ctx context.Context, groupName *string) ([]*models.GroupStanding, error)
	GetOverallStandings(ctx context.Context) ([]*models.OverallStanding, error)
	RecomputeGroup(ctx context.Context, groupName string) error
	RecomputeOverall(ctx context.Context) error
	SyncAll(ctx context.Context) (int, error)
}

type standingsService struct {
	db                *sql.DB
	matchRepo         repositories.MatchResultRepository
	groupRepo         repositories.GroupConfigurationRepository
	groupStandingRepo repositories.GroupStandingRepository
	overallRepo       repositories.OverallStandingRepository
	hub               *live.Hub
	rules             standings.PointRules
	cutlines          []standings.TierCutline
	logger            *slog.Logger
}

func NewStandingsService(
	db *sql.DB,
	matchRepo repositories.MatchResultRepository,
	groupRepo repositories.GroupConfigurationRepository,
	groupStandingRepo repositories.GroupStandingRepository,
	overallRepo repositories.OverallStandingRepository,
	hub *live.Hub,
	rules standings.PointRules,
	cutlines []standings.TierCutline,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		db:                db,
		matchRepo:         matchRepo,
		groupRepo:         groupRepo,
		groupStandingRepo: groupStandingRepo,
		overallRepo:       overallRepo,
		hub:               hub,
		rules:             rules,
		cutlines:          cutlines,
		logger:            logger,
	}
}

func (s *standingsService) GetGroupStandings(ctx context.Context, groupName *string) ([]*models.GroupStanding, error) {
	if groupName == nil {
		return s.groupStandingRepo.ListAll(ctx)
	}
	if _, err := s.groupRepo.GetByName(ctx, *groupName); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return s.groupStandingRepo.ListByGroup(ctx, *groupName)
}

func (s *standingsService) GetOverallStandings(ctx context.Context) ([]*models.OverallStanding, error) {
	return s.overallRepo.List(ctx)
}

// RecomputeGroup пересчитывает таблицу группы с нуля по сохранённым
// матчам и атомарно заменяет кеш. Кеш никогда не патчится по месту —
// повторный вызов на тех же данных даёт тот же результат.
func (s *standingsService) RecomputeGroup(ctx context.Context, groupName string) error {
	group, err := s.groupRepo.GetByName(ctx, groupName)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to load group %s: %w", groupName, err)
	}

	matches, err := s.matchRepo.ListByGroup(ctx, nil, groupName)
	if err != nil {
		return fmt.Errorf("failed to load matches for group %s: %w", groupName, err)
	}

	rows, skipped, err := standings.ComputeGroupStandings(matches, group, s.rules)
	if err != nil {
		return fmt.Errorf("failed to compute standings for group %s: %w", groupName, err)
	}
	for _, m := range skipped {
		s.logger.WarnContext(ctx, "match excluded from standings: team not in group roster",
			slog.Int("match_id", m.ID),
			slog.String("group", groupName),
			slog.String("team1", m.Team1Name),
			slog.String("team2", m.Team2Name),
		)
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.groupStandingRepo.ReplaceForGroup(ctx, tx, groupName, rows)
	})
	if err != nil {
		return fmt.Errorf("failed to store standings for group %s: %w", groupName, err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom("group_"+groupName, live.Message{
			Type:    live.MessageGroupStandings,
			Payload: rows,
			RoomID:  "group_" + groupName,
		})
	}
	return nil
}

// RecomputeOverall перестраивает общий зачёт по всем группам и матчам.
func (s *standingsService) RecomputeOverall(ctx context.Context) error {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	if len(groups) == 0 {
		return nil
	}

	matches, err := s.matchRepo.ListAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list matches: %w", err)
	}

	rows, skipped, err := standings.ComputeOverallStandings(matches, groups, s.rules, s.cutlines)
	if err != nil {
		return fmt.Errorf("failed to compute overall standings: %w", err)
	}
	if len(skipped) > 0 {
		s.logger.WarnContext(ctx, "matches excluded from overall standings", slog.Int("count", len(skipped)))
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.overallRepo.ReplaceAll(ctx, tx, rows)
	})
	if err != nil {
		return fmt.Errorf("failed to store overall standings: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom("overall", live.Message{
			Type:    live.MessageOverallStandings,
			Payload: rows,
			RoomID:  "overall",
		})
	}
	return nil
}

// SyncAll — полный пересчёт лиги: каждая группа, затем общий зачёт.
// Идемпотентен, безопасен при повторных и пересекающихся вызовах.
func (s *standingsService) SyncAll(ctx context.Context) (int, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list groups for sync: %w", err)
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)
	for _, group := range groups {
		groupName := group.GroupName
		g.Go(func() error {
			return s.RecomputeGroup(groupCtx, groupName)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := s.RecomputeOverall(ctx); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "league standings synced", slog.Int("groups", len(groups)))
	return len(groups), nil
}
