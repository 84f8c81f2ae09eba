package httpapi

import (
	"net/http"
)

// Reference reads expose the league snapshot a season schedules against.
// The season is resolved first so callers address everything by season id.

func (h *Handler) ListSeasonTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonTeams")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.GetSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season teams failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	teams, err := h.ingestionService.ListTeams(ctx, item.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season teams failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamDTO{
			ID:       t.ID,
			LeagueID: t.LeagueID,
			Name:     t.Name,
			Active:   t.Active,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSeasonVenues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonVenues")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.GetSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season venues failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	venues, err := h.ingestionService.ListVenues(ctx, item.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season venues failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]venueDTO, 0, len(venues))
	for _, v := range venues {
		items = append(items, venueDTO{
			ID:           v.ID,
			LeagueID:     v.LeagueID,
			Name:         v.Name,
			Active:       v.Active,
			DisplayOrder: v.DisplayOrder,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSeasonTimeSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonTimeSlots")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.GetSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season time slots failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	slots, err := h.ingestionService.ListTimeSlots(ctx, item.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season time slots failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]timeSlotDTO, 0, len(slots))
	for _, s := range slots {
		items = append(items, timeSlotDTO{
			ID:           s.ID,
			LeagueID:     s.LeagueID,
			Name:         s.Name,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			Active:       s.Active,
			DisplayOrder: s.DisplayOrder,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

type teamDTO struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
}

type venueDTO struct {
	ID           string `json:"id"`
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Active       bool   `json:"active"`
	DisplayOrder int    `json:"display_order"`
}

type timeSlotDTO struct {
	ID           string `json:"id"`
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Active       bool   `json:"active"`
	DisplayOrder int    `json:"display_order"`
}
