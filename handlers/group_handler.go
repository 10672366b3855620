package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qaztech-league/esports-league/services"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(gs services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: gs}
}

func groupNameFromURL(r *http.Request) (string, error) {
	name := chi.URLParam(r, "groupName")
	if name == "" {
		return "", errors.New("missing groupName in URL path")
	}
	return name, nil
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var input services.GroupInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"group": group,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	name, err := groupNameFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.GetByName(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"group": group,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"groups": groups,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	name, err := groupNameFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID   int `json:"team_id"`
		Position int `json:"position"`
	}
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.AddTeam(r.Context(), name, input.TeamID, input.Position)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"group": group,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	name, err := groupNameFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.RemoveTeam(r.Context(), name, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"group": group,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	name, err := groupNameFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err = h.groupService.Delete(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
