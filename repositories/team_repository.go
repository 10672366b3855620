package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/qaztech-league/esports-league/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already exists")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	UpdateName(ctx context.Context, id int, name string) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, logo_key)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.LogoKey).
		Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	team := &models.Team{}
	err := row.Scan(&team.ID, &team.Name, &team.LogoKey, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, logo_key, created_at FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `SELECT id, name, logo_key, created_at FROM teams WHERE name = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT id, name, logo_key, created_at FROM teams ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateName(ctx context.Context, id int, name string) error {
	query := `UPDATE teams SET name = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrTeamNameConflict
	}
	return err
}
