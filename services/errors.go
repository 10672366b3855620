package services

import "errors"

// Общие ошибки сервисного слоя; маппятся на HTTP в handlers/helpers.go.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Результаты матчей
	ErrMatchTeamsIdentical      = errors.New("a team cannot play against itself")
	ErrMatchTeamRequired        = errors.New("both team names are required")
	ErrMatchScoreNegative       = errors.New("match scores must be non-negative")
	ErrMatchDrawNotAllowed      = errors.New("draws are not allowed in this stage")
	ErrMatchTeamNotInGroup      = errors.New("team is not part of the group roster")
	ErrTechnicalWinnerRequired  = errors.New("technical win requires a technical winner")
	ErrTechnicalWinnerNotInPair = errors.New("technical winner must be one of the two teams")

	// Группы и команды
	ErrGroupNotFound     = errors.New("group configuration not found")
	ErrGroupNameRequired = errors.New("group name is required")
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamNameRequired  = errors.New("team name is required")
	ErrTeamNameConflict  = errors.New("team name is already in use")

	// Швейцарский этап
	ErrSwissStandingNotFound = errors.New("swiss standing not found for this team and stage")
	ErrSwissTeamFinalized    = errors.New("team already qualified or eliminated in this stage")
	ErrSwissOutcomeInvalid   = errors.New("swiss outcome must be win or loss")

	// Сетка плей-офф
	ErrBracketStageNotFound  = errors.New("bracket stage not found")
	ErrBracketSlotUnresolved = errors.New("bracket feeder slots are not resolved yet")
	ErrBracketSlotLocked     = errors.New("downstream bracket match already played")
	ErrBracketResultInvalid  = errors.New("invalid bracket result")

	// Аутентификация админки
	ErrAuthInvalidPassword = errors.New("invalid admin password")

	// Загрузка логотипов
	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")
	ErrLogoInvalidContentType = errors.New("logo must be an image")
)
