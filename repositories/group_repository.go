package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/qaztech-league/esports-league/models"
)

var (
	ErrGroupNotFound         = errors.New("group configuration not found")
	ErrGroupNameConflict     = errors.New("group name already exists for this stage")
	ErrGroupMemberConflict   = errors.New("team is already assigned to a group of this stage")
	ErrGroupMemberTeamAbsent = errors.New("group member team does not exist")
)

type GroupConfigurationRepository interface {
	Create(ctx context.Context, group *models.GroupConfiguration) error
	GetByName(ctx context.Context, groupName string) (*models.GroupConfiguration, error)
	List(ctx context.Context) ([]*models.GroupConfiguration, error)
	ListByStage(ctx context.Context, stage string) ([]*models.GroupConfiguration, error)
	AddTeam(ctx context.Context, groupID, teamID, position int) error
	RemoveTeam(ctx context.Context, groupID, teamID int) error
	Delete(ctx context.Context, id int) error
}

type postgresGroupConfigurationRepository struct {
	db *sql.DB
}

func NewPostgresGroupConfigurationRepository(db *sql.DB) GroupConfigurationRepository {
	return &postgresGroupConfigurationRepository{db: db}
}

func (r *postgresGroupConfigurationRepository) Create(ctx context.Context, group *models.GroupConfiguration) error {
	query := `
		INSERT INTO group_configurations (group_name, display_name, stage)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, group.GroupName, group.DisplayName, group.Stage).
		Scan(&group.ID)
	return r.handleGroupError(err)
}

func (r *postgresGroupConfigurationRepository) GetByName(ctx context.Context, groupName string) (*models.GroupConfiguration, error) {
	query := `SELECT id, group_name, display_name, stage FROM group_configurations WHERE group_name = $1`

	group := &models.GroupConfiguration{}
	err := r.db.QueryRowContext(ctx, query, groupName).
		Scan(&group.ID, &group.GroupName, &group.DisplayName, &group.Stage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if err := r.populateTeams(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (r *postgresGroupConfigurationRepository) list(ctx context.Context, stage *string) ([]*models.GroupConfiguration, error) {
	query := `SELECT id, group_name, display_name, stage FROM group_configurations`
	args := make([]interface{}, 0, 1)
	if stage != nil {
		query += ` WHERE stage = $1`
		args = append(args, *stage)
	}
	query += ` ORDER BY group_name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.GroupConfiguration, 0)
	for rows.Next() {
		group := &models.GroupConfiguration{}
		if err := rows.Scan(&group.ID, &group.GroupName, &group.DisplayName, &group.Stage); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, group := range groups {
		if err := r.populateTeams(ctx, group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *postgresGroupConfigurationRepository) List(ctx context.Context) ([]*models.GroupConfiguration, error) {
	return r.list(ctx, nil)
}

func (r *postgresGroupConfigurationRepository) ListByStage(ctx context.Context, stage string) ([]*models.GroupConfiguration, error) {
	return r.list(ctx, &stage)
}

// populateTeams подтягивает состав группы в заданном позициями порядке.
func (r *postgresGroupConfigurationRepository) populateTeams(ctx context.Context, group *models.GroupConfiguration) error {
	query := `
		SELECT t.id, t.name, t.logo_key, t.created_at
		FROM group_members gm
		JOIN teams t ON t.id = gm.team_id
		WHERE gm.group_id = $1
		ORDER BY gm.position ASC, t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, group.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	group.Teams = group.Teams[:0]
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.LogoKey, &team.CreatedAt); err != nil {
			return err
		}
		group.Teams = append(group.Teams, team)
	}
	return rows.Err()
}

func (r *postgresGroupConfigurationRepository) AddTeam(ctx context.Context, groupID, teamID, position int) error {
	query := `INSERT INTO group_members (group_id, team_id, position) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, groupID, teamID, position)
	return r.handleGroupError(err)
}

func (r *postgresGroupConfigurationRepository) RemoveTeam(ctx context.Context, groupID, teamID int) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND team_id = $2`
	result, err := r.db.ExecContext(ctx, query, groupID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}

func (r *postgresGroupConfigurationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_configurations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}

func (r *postgresGroupConfigurationRepository) handleGroupError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			// Уникальность (group_name, stage) либо (stage, team_id) в составе.
			if pqErr.Constraint == "group_members_stage_team_key" {
				return ErrGroupMemberConflict
			}
			return ErrGroupNameConflict
		case "23503":
			return ErrGroupMemberTeamAbsent
		}
	}
	return err
}
