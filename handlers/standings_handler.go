package handlers

import (
	"net/http"

	"github.com/qaztech-league/esports-league/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetGroupStandings отдаёт таблицу одной группы (?group=A) либо всех
// групп сразу, если параметр не передан.
func (h *StandingsHandler) GetGroupStandings(w http.ResponseWriter, r *http.Request) {
	var groupName *string
	if g := r.URL.Query().Get("group"); g != "" {
		groupName = &g
	}

	rows, err := h.standingsService.GetGroupStandings(r.Context(), groupName)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"standings": rows,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetOverallStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.standingsService.GetOverallStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"standings": rows,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Sync запускает полный пересчёт всех таблиц лиги.
func (h *StandingsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	synced, err := h.standingsService.SyncAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"groups_synced": synced,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
