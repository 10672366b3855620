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
	ErrBracketMatchNotFound = errors.New("bracket match not found")
	ErrBracketMatchConflict = errors.New("bracket position already exists for this stage")
)

type BracketMatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.BracketMatch) error
	GetByStageAndPosition(ctx context.Context, exec SQLExecutor, stage, position string) (*models.BracketMatch, error)
	Update(ctx context.Context, exec SQLExecutor, match *models.BracketMatch) error
	ListByStage(ctx context.Context, exec SQLExecutor, stage string) ([]*models.BracketMatch, error)
}

type postgresBracketMatchRepository struct {
	db *sql.DB
}

func NewPostgresBracketMatchRepository(db *sql.DB) BracketMatchRepository {
	return &postgresBracketMatchRepository{db: db}
}

func (r *postgresBracketMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresBracketMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.BracketMatch) error {
	executor := r.getExecutor(exec)
	if match.UpdatedAt.IsZero() {
		match.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO bracket_matches
			(stage, bracket_position, team1_name, team2_name, team1_score, team2_score, winner_name, is_played, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		match.Stage, match.BracketPosition, match.Team1Name, match.Team2Name,
		match.Team1Score, match.Team2Score, match.WinnerName, match.IsPlayed, match.UpdatedAt,
	).Scan(&match.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrBracketMatchConflict
	}
	return err
}

func (r *postgresBracketMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.BracketMatch, error) {
	m := &models.BracketMatch{}
	err := row.Scan(
		&m.ID, &m.Stage, &m.BracketPosition, &m.Team1Name, &m.Team2Name,
		&m.Team1Score, &m.Team2Score, &m.WinnerName, &m.IsPlayed, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

const bracketColumns = `id, stage, bracket_position, team1_name, team2_name, team1_score, team2_score, winner_name, is_played, updated_at`

func (r *postgresBracketMatchRepository) GetByStageAndPosition(ctx context.Context, exec SQLExecutor, stage, position string) (*models.BracketMatch, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + bracketColumns + ` FROM bracket_matches WHERE stage = $1 AND bracket_position = $2`
	return r.scanMatch(executor.QueryRowContext(ctx, query, stage, position))
}

func (r *postgresBracketMatchRepository) Update(ctx context.Context, exec SQLExecutor, match *models.BracketMatch) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE bracket_matches SET
			team1_name = $1, team2_name = $2, team1_score = $3, team2_score = $4,
			winner_name = $5, is_played = $6, updated_at = $7
		WHERE id = $8`

	result, err := executor.ExecContext(ctx, query,
		match.Team1Name, match.Team2Name, match.Team1Score, match.Team2Score,
		match.WinnerName, match.IsPlayed, match.UpdatedAt, match.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketMatchNotFound)
}

func (r *postgresBracketMatchRepository) ListByStage(ctx context.Context, exec SQLExecutor, stage string) ([]*models.BracketMatch, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + bracketColumns + ` FROM bracket_matches WHERE stage = $1 ORDER BY id ASC`

	rows, err := executor.QueryContext(ctx, query, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.BracketMatch, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
