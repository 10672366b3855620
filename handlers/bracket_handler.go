package handlers

import (
	"net/http"

	"github.com/qaztech-league/esports-league/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

func (h *BracketHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	stage, err := stageFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.ListByStage(r.Context(), stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"stage":   stage,
		"matches": matches,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult фиксирует результат позиции и продвигает победителя.
func (h *BracketHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	stage, err := stageFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.BracketResultInput
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	winner, err := h.bracketService.RecordResult(r.Context(), stage, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"position": input.Position,
		"winner":   winner,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SeedBracket создаёт сетку этапа по списку из восьми команд.
func (h *BracketHandler) SeedBracket(w http.ResponseWriter, r *http.Request) {
	stage, err := stageFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Teams []string `json:"teams"`
	}
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.SeedBracket(r.Context(), stage, input.Teams)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"stage":   stage,
		"matches": matches,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
