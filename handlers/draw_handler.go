package handlers

import (
	"net/http"

	"github.com/padelpoint/pairing-engine/services"
)

type DrawHandler struct {
	rankingService  services.RankingService
	drawService     services.DrawService
	scheduleService services.ScheduleService
}

func NewDrawHandler(
	rankingService services.RankingService,
	drawService services.DrawService,
	scheduleService services.ScheduleService,
) *DrawHandler {
	return &DrawHandler{
		rankingService:  rankingService,
		drawService:     drawService,
		scheduleService: scheduleService,
	}
}

// RecalculateWeightsHandler handles POST /tournaments/{tournamentID}/weights
func (h *DrawHandler) RecalculateWeightsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	batch, err := h.rankingService.RecalculateWeights(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": batch}); err != nil {
		serverErrorResponse(w, err)
	}
}

// RankingHandler handles GET /tournaments/{tournamentID}/ranking
func (h *DrawHandler) RankingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	rankings, err := h.rankingService.BuildRanking(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": rankings}); err != nil {
		serverErrorResponse(w, err)
	}
}

// AssignSeedsHandler handles POST /tournaments/{tournamentID}/seeds
func (h *DrawHandler) AssignSeedsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.rankingService.AssignSeeds(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"seeding": result}); err != nil {
		serverErrorResponse(w, err)
	}
}

// GenerateDrawHandler handles POST /tournaments/{tournamentID}/draw
func (h *DrawHandler) GenerateDrawHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.drawService.GenerateDraw(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"draw": result}); err != nil {
		serverErrorResponse(w, err)
	}
}

// GetDrawHandler handles GET /tournaments/{tournamentID}/draw
func (h *DrawHandler) GetDrawHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.drawService.GetDraw(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": result}); err != nil {
		serverErrorResponse(w, err)
	}
}

// ScheduleHandler handles POST /tournaments/{tournamentID}/schedule
func (h *DrawHandler) ScheduleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.scheduleService.ScheduleMatches(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": result}); err != nil {
		serverErrorResponse(w, err)
	}
}
