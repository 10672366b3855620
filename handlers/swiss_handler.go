package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qaztech-league/esports-league/services"
)

type SwissHandler struct {
	swissService services.SwissService
}

func NewSwissHandler(ss services.SwissService) *SwissHandler {
	return &SwissHandler{swissService: ss}
}

func stageFromURL(r *http.Request) (string, error) {
	stage := chi.URLParam(r, "stage")
	if stage == "" {
		return "", errors.New("missing stage in URL path")
	}
	return stage, nil
}

// GetStandings отдаёт записи этапа: плоский список и корзины W-L для
// отображения на сайте.
func (h *SwissHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	stage, err := stageFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	list, err := h.swissService.ListByStage(r.Context(), stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	buckets, err := h.swissService.BucketsByStage(r.Context(), stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"stage":     stage,
		"standings": list,
		"buckets":   buckets,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ApplyResult применяет исход матча к записи команды.
func (h *SwissHandler) ApplyResult(w http.ResponseWriter, r *http.Request) {
	stage, err := stageFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SwissResultInput
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standing, err := h.swissService.ApplyResult(r.Context(), stage, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"standing": standing,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RegisterTeam заводит команду в этап со счётом 0-0.
func (h *SwissHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	stage, err := stageFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamName string `json:"team_name"`
	}
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standing, err := h.swissService.RegisterTeam(r.Context(), stage, input.TeamName)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"standing": standing,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
