package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-scheduler/internal/domain/team"
	"github.com/riskibarqy/league-scheduler/internal/domain/timeslot"
	"github.com/riskibarqy/league-scheduler/internal/domain/venue"
	"github.com/riskibarqy/league-scheduler/internal/usecase"
)

// Ingestion handlers accept roster and resource snapshots from the
// upstream league administration service. Persisting a snapshot never
// triggers regeneration; that reaction arrives separately through the
// roster-changed event.

func (h *Handler) IngestTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestTeams")
	defer span.End()

	var req ingestTeamsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]team.Team, 0, len(req.Teams))
	for _, t := range req.Teams {
		items = append(items, team.Team{
			ID:     t.ID,
			Name:   t.Name,
			Active: t.Active,
		})
	}

	count, err := h.ingestionService.UpsertTeams(ctx, req.LeagueID, items)
	if err != nil {
		h.logger.WarnContext(ctx, "team ingestion failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestResultDTO{LeagueID: req.LeagueID, UpsertedCount: count})
}

func (h *Handler) IngestVenues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestVenues")
	defer span.End()

	var req ingestVenuesRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]venue.Venue, 0, len(req.Venues))
	for _, v := range req.Venues {
		items = append(items, venue.Venue{
			ID:           v.ID,
			Name:         v.Name,
			Active:       v.Active,
			DisplayOrder: v.DisplayOrder,
		})
	}

	count, err := h.ingestionService.UpsertVenues(ctx, req.LeagueID, items)
	if err != nil {
		h.logger.WarnContext(ctx, "venue ingestion failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestResultDTO{LeagueID: req.LeagueID, UpsertedCount: count})
}

func (h *Handler) IngestTimeSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestTimeSlots")
	defer span.End()

	var req ingestTimeSlotsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]timeslot.TimeSlot, 0, len(req.TimeSlots))
	for _, s := range req.TimeSlots {
		items = append(items, timeslot.TimeSlot{
			ID:           s.ID,
			Name:         s.Name,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			Active:       s.Active,
			DisplayOrder: s.DisplayOrder,
		})
	}

	count, err := h.ingestionService.UpsertTimeSlots(ctx, req.LeagueID, items)
	if err != nil {
		h.logger.WarnContext(ctx, "time slot ingestion failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestResultDTO{LeagueID: req.LeagueID, UpsertedCount: count})
}

type ingestTeamsRequest struct {
	LeagueID string              `json:"league_id" validate:"required"`
	Teams    []ingestTeamPayload `json:"teams" validate:"required,min=1,dive"`
}

type ingestTeamPayload struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required,max=200"`
	Active bool   `json:"active"`
}

type ingestVenuesRequest struct {
	LeagueID string               `json:"league_id" validate:"required"`
	Venues   []ingestVenuePayload `json:"venues" validate:"required,min=1,dive"`
}

type ingestVenuePayload struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required,max=200"`
	Active       bool   `json:"active"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

type ingestTimeSlotsRequest struct {
	LeagueID  string                  `json:"league_id" validate:"required"`
	TimeSlots []ingestTimeSlotPayload `json:"time_slots" validate:"required,min=1,dive"`
}

type ingestTimeSlotPayload struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required,max=200"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	Active       bool   `json:"active"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

type ingestResultDTO struct {
	LeagueID      string `json:"league_id"`
	UpsertedCount int    `json:"upserted_count"`
}
