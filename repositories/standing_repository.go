package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/qaztech-league/esports-league/models"
)

var ErrStandingNotFound = errors.New("standing not found")

// GroupStandingRepository хранит кеш таблиц групп. Кеш перезаписывается
// целиком (ReplaceForGroup в транзакции), инкрементальных апдейтов нет —
// пересчёт всегда авторитетен.
type GroupStandingRepository interface {
	ReplaceForGroup(ctx context.Context, exec SQLExecutor, groupName string, rows []*models.GroupStanding) error
	ListByGroup(ctx context.Context, groupName string) ([]*models.GroupStanding, error)
	ListAll(ctx context.Context) ([]*models.GroupStanding, error)
}

type postgresGroupStandingRepository struct {
	db *sql.DB
}

func NewPostgresGroupStandingRepository(db *sql.DB) GroupStandingRepository {
	return &postgresGroupStandingRepository{db: db}
}

func (r *postgresGroupStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGroupStandingRepository) ReplaceForGroup(ctx context.Context, exec SQLExecutor, groupName string, rows []*models.GroupStanding) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM group_standings WHERE group_name = $1`, groupName); err != nil {
		return fmt.Errorf("failed to clear standings for group %s: %w", groupName, err)
	}

	query := `
		INSERT INTO group_standings
			(group_name, team_name, matches_played, wins, draws, losses,
			 rounds_won, rounds_lost, round_difference, points, position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	for _, row := range rows {
		if row.UpdatedAt.IsZero() {
			row.UpdatedAt = time.Now()
		}
		err := executor.QueryRowContext(ctx, query,
			row.GroupName, row.TeamName, row.MatchesPlayed, row.Wins, row.Draws, row.Losses,
			row.RoundsWon, row.RoundsLost, row.RoundDifference, row.Points, row.Position, row.UpdatedAt,
		).Scan(&row.ID)
		if err != nil {
			return fmt.Errorf("failed to insert standing for team %s: %w", row.TeamName, err)
		}
	}
	return nil
}

func (r *postgresGroupStandingRepository) scanRow(row interface{ Scan(...interface{}) error }) (*models.GroupStanding, error) {
	s := &models.GroupStanding{}
	err := row.Scan(
		&s.ID, &s.GroupName, &s.TeamName, &s.MatchesPlayed, &s.Wins, &s.Draws, &s.Losses,
		&s.RoundsWon, &s.RoundsLost, &s.RoundDifference, &s.Points, &s.Position, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return s, nil
}

const groupStandingColumns = `id, group_name, team_name, matches_played, wins, draws, losses, rounds_won, rounds_lost, round_difference, points, position, updated_at`

func (r *postgresGroupStandingRepository) ListByGroup(ctx context.Context, groupName string) ([]*models.GroupStanding, error) {
	query := `SELECT ` + groupStandingColumns + ` FROM group_standings WHERE group_name = $1 ORDER BY position ASC`
	return r.queryRows(ctx, query, groupName)
}

func (r *postgresGroupStandingRepository) ListAll(ctx context.Context) ([]*models.GroupStanding, error) {
	query := `SELECT ` + groupStandingColumns + ` FROM group_standings ORDER BY group_name ASC, position ASC`
	return r.queryRows(ctx, query)
}

func (r *postgresGroupStandingRepository) queryRows(ctx context.Context, query string, args ...interface{}) ([]*models.GroupStanding, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.GroupStanding, 0)
	for rows.Next() {
		s, errScan := r.scanRow(rows)
		if errScan != nil {
			return nil, errScan
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

// OverallStandingRepository — кеш общего зачёта, те же правила
// перезаписи, что и у таблиц групп.
type OverallStandingRepository interface {
	ReplaceAll(ctx context.Context, exec SQLExecutor, rows []*models.OverallStanding) error
	List(ctx context.Context) ([]*models.OverallStanding, error)
}

type postgresOverallStandingRepository struct {
	db *sql.DB
}

func NewPostgresOverallStandingRepository(db *sql.DB) OverallStandingRepository {
	return &postgresOverallStandingRepository{db: db}
}

func (r *postgresOverallStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresOverallStandingRepository) ReplaceAll(ctx context.Context, exec SQLExecutor, rows []*models.OverallStanding) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM overall_standings`); err != nil {
		return fmt.Errorf("failed to clear overall standings: %w", err)
	}

	query := `
		INSERT INTO overall_standings
			(team_name, matches_played, wins, draws, losses,
			 rounds_won, rounds_lost, round_difference, points, position, tier, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	for _, row := range rows {
		if row.UpdatedAt.IsZero() {
			row.UpdatedAt = time.Now()
		}
		err := executor.QueryRowContext(ctx, query,
			row.TeamName, row.MatchesPlayed, row.Wins, row.Draws, row.Losses,
			row.RoundsWon, row.RoundsLost, row.RoundDifference, row.Points, row.Position, row.Tier, row.UpdatedAt,
		).Scan(&row.ID)
		if err != nil {
			return fmt.Errorf("failed to insert overall standing for team %s: %w", row.TeamName, err)
		}
	}
	return nil
}

func (r *postgresOverallStandingRepository) List(ctx context.Context) ([]*models.OverallStanding, error) {
	query := `
		SELECT id, team_name, matches_played, wins, draws, losses,
		       rounds_won, rounds_lost, round_difference, points, position, tier, updated_at
		FROM overall_standings
		ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.OverallStanding, 0)
	for rows.Next() {
		s := &models.OverallStanding{}
		err := rows.Scan(
			&s.ID, &s.TeamName, &s.MatchesPlayed, &s.Wins, &s.Draws, &s.Losses,
			&s.RoundsWon, &s.RoundsLost, &s.RoundDifference, &s.Points, &s.Position, &s.Tier, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
