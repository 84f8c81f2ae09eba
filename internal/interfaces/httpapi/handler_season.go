package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-scheduler/internal/domain/game"
	"github.com/riskibarqy/league-scheduler/internal/domain/season"
	"github.com/riskibarqy/league-scheduler/internal/usecase"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.seasonService.ListSeasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.GetSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(ctx, item))
}

func (h *Handler) ListSeasonGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonGames")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	games, err := h.seasonService.ListSeasonGames(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season games failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(ctx, g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req seasonUpsertRequest
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

	input, err := req.toCreateInput(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.CreateSeason(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(ctx, item))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	var req seasonUpsertRequest
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

	input, err := req.toUpdateInput(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.UpdateSeason(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(ctx, item))
}

func (h *Handler) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	h.transitionSeason(w, r, "httpapi.Handler.ActivateSeason", h.seasonService.ActivateSeason)
}

func (h *Handler) StartSeasonPlayoffs(w http.ResponseWriter, r *http.Request) {
	h.transitionSeason(w, r, "httpapi.Handler.StartSeasonPlayoffs", h.seasonService.StartPlayoffs)
}

func (h *Handler) CloseSeason(w http.ResponseWriter, r *http.Request) {
	h.transitionSeason(w, r, "httpapi.Handler.CloseSeason", h.seasonService.CloseSeason)
}

func (h *Handler) transitionSeason(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	transition func(ctx context.Context, seasonID string) (season.Season, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := transition(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "season transition failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(ctx, item))
}

func (h *Handler) ArchiveSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchiveSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	if err := h.seasonService.ArchiveSeason(ctx, seasonID); err != nil {
		h.logger.WarnContext(ctx, "archive season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"season_id": seasonID, "status": "archived"})
}

type seasonUpsertRequest struct {
	LeagueID       string `json:"league_id"`
	Name           string `json:"name" validate:"required,max=200"`
	StartDate      string `json:"start_date" validate:"required"`
	EndDate        string `json:"end_date" validate:"required"`
	PlayoffStartAt string `json:"playoff_start_at"`
	MaxGamesPerDay int    `json:"max_games_per_day" validate:"required,min=1"`
	Cycles         int    `json:"cycles" validate:"required,min=1"`
	AutoRegenerate bool   `json:"auto_regenerate"`
}

func (req seasonUpsertRequest) toCreateInput(ctx context.Context) (usecase.CreateSeasonInput, error) {
	if strings.TrimSpace(req.LeagueID) == "" {
		return usecase.CreateSeasonInput{}, fmt.Errorf("%w: league_id is required", usecase.ErrInvalidInput)
	}

	window, err := req.parseWindow(ctx)
	if err != nil {
		return usecase.CreateSeasonInput{}, err
	}

	return usecase.CreateSeasonInput{
		LeagueID:       strings.TrimSpace(req.LeagueID),
		Name:           req.Name,
		StartDate:      window.start,
		EndDate:        window.end,
		PlayoffStartAt: window.playoffStart,
		MaxGamesPerDay: req.MaxGamesPerDay,
		Cycles:         req.Cycles,
		AutoRegenerate: req.AutoRegenerate,
	}, nil
}

func (req seasonUpsertRequest) toUpdateInput(ctx context.Context, seasonID string) (usecase.UpdateSeasonInput, error) {
	window, err := req.parseWindow(ctx)
	if err != nil {
		return usecase.UpdateSeasonInput{}, err
	}

	return usecase.UpdateSeasonInput{
		SeasonID:       seasonID,
		Name:           req.Name,
		StartDate:      window.start,
		EndDate:        window.end,
		PlayoffStartAt: window.playoffStart,
		MaxGamesPerDay: req.MaxGamesPerDay,
		Cycles:         req.Cycles,
		AutoRegenerate: req.AutoRegenerate,
	}, nil
}

type seasonWindow struct {
	start        time.Time
	end          time.Time
	playoffStart *time.Time
}

func (req seasonUpsertRequest) parseWindow(ctx context.Context) (seasonWindow, error) {
	start, err := parseDate(ctx, "start_date", req.StartDate)
	if err != nil {
		return seasonWindow{}, err
	}
	end, err := parseDate(ctx, "end_date", req.EndDate)
	if err != nil {
		return seasonWindow{}, err
	}

	window := seasonWindow{start: start, end: end}
	if strings.TrimSpace(req.PlayoffStartAt) != "" {
		playoffStart, err := parseDate(ctx, "playoff_start_at", req.PlayoffStartAt)
		if err != nil {
			return seasonWindow{}, err
		}
		window.playoffStart = &playoffStart
	}

	return window, nil
}

func parseDate(ctx context.Context, field, value string) (time.Time, error) {
	ctx, span := startSpan(ctx, "httpapi.parseDate")
	defer span.End()

	parsed, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date: %v", usecase.ErrInvalidInput, field, err)
	}
	return parsed, nil
}

type seasonDTO struct {
	ID              string `json:"id"`
	LeagueID        string `json:"league_id"`
	Name            string `json:"name"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	PlayoffStartAt  string `json:"playoff_start_at,omitempty"`
	MaxGamesPerDay  int    `json:"max_games_per_day"`
	Cycles          int    `json:"cycles"`
	AutoRegenerate  bool   `json:"auto_regenerate"`
	State           string `json:"state"`
	LastGeneratedAt string `json:"last_generated_at,omitempty"`
}

type gameDTO struct {
	ID         string `json:"id"`
	SeasonID   string `json:"season_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	VenueID    string `json:"venue_id"`
	TimeSlotID string `json:"time_slot_id"`
	Date       string `json:"date"`
	Cycle      int    `json:"cycle"`
	Status     string `json:"status"`
}

func seasonToDTO(ctx context.Context, v season.Season) seasonDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonToDTO")
	defer span.End()

	dto := seasonDTO{
		ID:             v.ID,
		LeagueID:       v.LeagueID,
		Name:           v.Name,
		StartDate:      v.StartDate.UTC().Format(time.DateOnly),
		EndDate:        v.EndDate.UTC().Format(time.DateOnly),
		MaxGamesPerDay: v.MaxGamesPerDay,
		Cycles:         v.Cycles,
		AutoRegenerate: v.AutoRegenerate,
		State:          string(season.NormalizeState(v.State)),
	}
	if v.PlayoffStartAt != nil {
		dto.PlayoffStartAt = v.PlayoffStartAt.UTC().Format(time.DateOnly)
	}
	if v.LastGeneratedAt != nil {
		dto.LastGeneratedAt = v.LastGeneratedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func gameToDTO(ctx context.Context, v game.Game) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()

	return gameDTO{
		ID:         v.ID,
		SeasonID:   v.SeasonID,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		VenueID:    v.VenueID,
		TimeSlotID: v.TimeSlotID,
		Date:       v.Date.UTC().Format(time.DateOnly),
		Cycle:      v.Cycle,
		Status:     game.NormalizeStatus(v.Status),
	}
}
