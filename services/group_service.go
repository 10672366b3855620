package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/qaztech-league/esports-league/models"
	"github.com/qaztech-league/esports-league/repositories"
)

// GroupInput — ввод админки для создания группы.
type GroupInput struct {
	GroupName   string `json:"group_name"`
	DisplayName string `json:"display_name"`
	Stage       string `json:"stage"`
}

type GroupService interface {
	Create(ctx context.Context, input GroupInput) (*models.GroupConfiguration, error)
	GetByName(ctx context.Context, groupName string) (*models.GroupConfiguration, error)
	List(ctx context.Context) ([]*models.GroupConfiguration, error)
	AddTeam(ctx context.Context, groupName string, teamID, position int) (*models.GroupConfiguration, error)
	RemoveTeam(ctx context.Context, groupName string, teamID int) (*models.GroupConfiguration, error)
	Delete(ctx context.Context, groupName string) error
}

type groupService struct {
	groupRepo repositories.GroupConfigurationRepository
	teamRepo  repositories.TeamRepository
}

func NewGroupService(groupRepo repositories.GroupConfigurationRepository, teamRepo repositories.TeamRepository) GroupService {
	return &groupService{groupRepo: groupRepo, teamRepo: teamRepo}
}

func (s *groupService) Create(ctx context.Context, input GroupInput) (*models.GroupConfiguration, error) {
	input.GroupName = strings.TrimSpace(input.GroupName)
	if input.GroupName == "" {
		return nil, ErrGroupNameRequired
	}
	if input.DisplayName == "" {
		input.DisplayName = "Group " + input.GroupName
	}
	if input.Stage == "" {
		input.Stage = "group"
	}

	group := &models.GroupConfiguration{
		GroupName:   input.GroupName,
		DisplayName: input.DisplayName,
		Stage:       input.Stage,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, repositories.ErrGroupNameConflict) {
			return nil, fmt.Errorf("%w: group %s already exists", ErrValidationFailed, input.GroupName)
		}
		return nil, fmt.Errorf("failed to create group %s: %w", input.GroupName, err)
	}
	return group, nil
}

func (s *groupService) GetByName(ctx context.Context, groupName string) (*models.GroupConfiguration, error) {
	group, err := s.groupRepo.GetByName(ctx, groupName)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) List(ctx context.Context) ([]*models.GroupConfiguration, error) {
	return s.groupRepo.List(ctx)
}

// AddTeam вводит команду в состав группы на заданную позицию посева.
func (s *groupService) AddTeam(ctx context.Context, groupName string, teamID, position int) (*models.GroupConfiguration, error) {
	group, err := s.GetByName(ctx, groupName)
	if err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if err := s.groupRepo.AddTeam(ctx, group.ID, teamID, position); err != nil {
		if errors.Is(err, repositories.ErrGroupMemberConflict) {
			return nil, fmt.Errorf("%w: team %d already in group %s", ErrValidationFailed, teamID, groupName)
		}
		return nil, fmt.Errorf("failed to add team %d to group %s: %w", teamID, groupName, err)
	}
	return s.GetByName(ctx, groupName)
}

func (s *groupService) RemoveTeam(ctx context.Context, groupName string, teamID int) (*models.GroupConfiguration, error) {
	group, err := s.GetByName(ctx, groupName)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.RemoveTeam(ctx, group.ID, teamID); err != nil {
		if errors.Is(err, repositories.ErrGroupMemberTeamAbsent) {
			return nil, fmt.Errorf("%w: team %d not in group %s", ErrValidationFailed, teamID, groupName)
		}
		return nil, fmt.Errorf("failed to remove team %d from group %s: %w", teamID, groupName, err)
	}
	return s.GetByName(ctx, groupName)
}

func (s *groupService) Delete(ctx context.Context, groupName string) error {
	group, err := s.GetByName(ctx, groupName)
	if err != nil {
		return err
	}
	if err := s.groupRepo.Delete(ctx, group.ID); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to delete group %s: %w", groupName, err)
	}
	return nil
}
