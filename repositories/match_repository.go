package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/qaztech-league/esports-league/models"
)

var (
	ErrMatchResultNotFound     = errors.New("match result not found")
	ErrMatchResultGroupInvalid = errors.New("match result group conflict or invalid")
)

type MatchResultRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error
	GetByID(ctx context.Context, id int) (*models.MatchResult, error)
	Update(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	ListByGroup(ctx context.Context, exec SQLExecutor, groupName string) ([]*models.MatchResult, error)
	ListAll(ctx context.Context, exec SQLExecutor) ([]*models.MatchResult, error)
}

type postgresMatchResultRepository struct {
	db *sql.DB
}

func NewPostgresMatchResultRepository(db *sql.DB) MatchResultRepository {
	return &postgresMatchResultRepository{db: db}
}

func (r *postgresMatchResultRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchResultRepository) Create(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_results
			(group_name, team1_name, team2_name, team1_score, team2_score, technical_win, technical_winner, match_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		match.GroupName,
		match.Team1Name,
		match.Team2Name,
		match.Team1Score,
		match.Team2Score,
		match.TechnicalWin,
		match.TechnicalWinner,
		match.MatchDate,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchResultRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.MatchResult, error) {
	match := &models.MatchResult{}
	err := row.Scan(
		&match.ID,
		&match.GroupName,
		&match.Team1Name,
		&match.Team2Name,
		&match.Team1Score,
		&match.Team2Score,
		&match.TechnicalWin,
		&match.TechnicalWinner,
		&match.MatchDate,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchResultNotFound
		}
		return nil, err
	}
	return match, nil
}

const matchResultColumns = `id, group_name, team1_name, team2_name, team1_score, team2_score, technical_win, technical_winner, match_date, created_at`

func (r *postgresMatchResultRepository) GetByID(ctx context.Context, id int) (*models.MatchResult, error) {
	query := `SELECT ` + matchResultColumns + ` FROM match_results WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchResultRepository) Update(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE match_results SET
			group_name = $1, team1_name = $2, team2_name = $3,
			team1_score = $4, team2_score = $5,
			technical_win = $6, technical_winner = $7, match_date = $8
		WHERE id = $9`

	result, err := executor.ExecContext(ctx, query,
		match.GroupName,
		match.Team1Name,
		match.Team2Name,
		match.Team1Score,
		match.Team2Score,
		match.TechnicalWin,
		match.TechnicalWinner,
		match.MatchDate,
		match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchResultNotFound)
}

func (r *postgresMatchResultRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM match_results WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchResultNotFound)
}

func (r *postgresMatchResultRepository) list(ctx context.Context, exec SQLExecutor, groupName *string) ([]*models.MatchResult, error) {
	executor := r.getExecutor(exec)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchResultColumns + ` FROM match_results`)

	args := make([]interface{}, 0, 1)
	if groupName != nil {
		queryBuilder.WriteString(" WHERE group_name = $" + strconv.Itoa(len(args)+1))
		args = append(args, *groupName)
	}
	queryBuilder.WriteString(" ORDER BY match_date ASC, id ASC")

	rows, err := executor.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.MatchResult, 0)
	for rows.Next() {
		match, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchResultRepository) ListByGroup(ctx context.Context, exec SQLExecutor, groupName string) ([]*models.MatchResult, error) {
	return r.list(ctx, exec, &groupName)
}

func (r *postgresMatchResultRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]*models.MatchResult, error) {
	return r.list(ctx, exec, nil)
}

func (r *postgresMatchResultRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrMatchResultGroupInvalid
	}
	return err
}
