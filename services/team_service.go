package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/qaztech-league/esports-league/models"
	"github.com/qaztech-league/esports-league/repositories"
	"github.com/qaztech-league/esports-league/storage"
)

type TeamService interface {
	Create(ctx context.Context, name string) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Rename(ctx context.Context, id int, name string) (*models.Team, error)
	Delete(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{teamRepo: teamRepo, uploader: uploader}
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team == nil || team.LogoKey == nil || *team.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func (s *teamService) Create(ctx context.Context, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		s.populateLogoURL(team)
	}
	return teams, nil
}

func (s *teamService) Rename(ctx context.Context, id int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if err := s.teamRepo.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	// Старый логотип больше никому не нужен; ошибка удаления из хранилища
	// не отменяет удаление команды.
	if s.uploader != nil && team.LogoKey != nil && *team.LogoKey != "" {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: got %s", ErrLogoInvalidContentType, contentType)
	}

	team, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(contentType, "image/")
	key := fmt.Sprintf("teams/%d/logo.%s", id, ext)

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", id, err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key for team %d: %w", id, err)
	}
	if oldKey != nil && *oldKey != "" && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.LogoKey = &result.Key
	team.LogoURL = &result.Location
	return team, nil
}
