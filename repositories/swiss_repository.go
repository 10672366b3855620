package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/qaztech-league/esports-league/models"
)

var (
	ErrSwissStandingNotFound = errors.New("swiss standing not found")
	ErrSwissStandingConflict = errors.New("swiss standing already exists for this team and stage")
)

type SwissStandingRepository interface {
	Create(ctx context.Context, standing *models.SwissStanding) error
	GetByStageAndTeam(ctx context.Context, exec SQLExecutor, stage, teamName string) (*models.SwissStanding, error)
	Update(ctx context.Context, exec SQLExecutor, standing *models.SwissStanding) error
	ListByStage(ctx context.Context, stage string) ([]*models.SwissStanding, error)
}

type postgresSwissStandingRepository struct {
	db *sql.DB
}

func NewPostgresSwissStandingRepository(db *sql.DB) SwissStandingRepository {
	return &postgresSwissStandingRepository{db: db}
}

func (r *postgresSwissStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSwissStandingRepository) Create(ctx context.Context, standing *models.SwissStanding) error {
	if standing.Status == "" {
		standing.Status = models.SwissActive
	}
	if standing.UpdatedAt.IsZero() {
		standing.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO swiss_standings
			(stage, team_name, wins, losses, rounds_won, rounds_lost, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		standing.Stage, standing.TeamName, standing.Wins, standing.Losses,
		standing.RoundsWon, standing.RoundsLost, standing.Status, standing.UpdatedAt,
	).Scan(&standing.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrSwissStandingConflict
	}
	return err
}

func (r *postgresSwissStandingRepository) scanStanding(row interface{ Scan(...interface{}) error }) (*models.SwissStanding, error) {
	s := &models.SwissStanding{}
	err := row.Scan(&s.ID, &s.Stage, &s.TeamName, &s.Wins, &s.Losses, &s.RoundsWon, &s.RoundsLost, &s.Status, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSwissStandingNotFound
		}
		return nil, err
	}
	return s, nil
}

const swissColumns = `id, stage, team_name, wins, losses, rounds_won, rounds_lost, status, updated_at`

func (r *postgresSwissStandingRepository) GetByStageAndTeam(ctx context.Context, exec SQLExecutor, stage, teamName string) (*models.SwissStanding, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + swissColumns + ` FROM swiss_standings WHERE stage = $1 AND team_name = $2`
	return r.scanStanding(executor.QueryRowContext(ctx, query, stage, teamName))
}

func (r *postgresSwissStandingRepository) Update(ctx context.Context, exec SQLExecutor, standing *models.SwissStanding) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE swiss_standings SET
			wins = $1, losses = $2, rounds_won = $3, rounds_lost = $4, status = $5, updated_at = $6
		WHERE id = $7`

	result, err := executor.ExecContext(ctx, query,
		standing.Wins, standing.Losses, standing.RoundsWon, standing.RoundsLost,
		standing.Status, standing.UpdatedAt, standing.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSwissStandingNotFound)
}

func (r *postgresSwissStandingRepository) ListByStage(ctx context.Context, stage string) ([]*models.SwissStanding, error) {
	query := `SELECT ` + swissColumns + ` FROM swiss_standings WHERE stage = $1 ORDER BY wins DESC, losses ASC, team_name ASC`

	rows, err := r.db.QueryContext(ctx, query, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.SwissStanding, 0)
	for rows.Next() {
		s, errScan := r.scanStanding(rows)
		if errScan != nil {
			return nil, errScan
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
