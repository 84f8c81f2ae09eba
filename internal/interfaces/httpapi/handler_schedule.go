package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-scheduler/internal/usecase"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	result, err := h.generationService.GenerateSchedule(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "schedule generation failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RosterChanged(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RosterChanged")
	defer span.End()

	var req rosterChangedRequest
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

	result, err := h.seasonService.RosterChanged(ctx, usecase.RosterChangedInput{LeagueID: req.LeagueID})
	if err != nil {
		h.logger.WarnContext(ctx, "roster change handling failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRegenerateAllJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRegenerateAllJob")
	defer span.End()

	req, err := decodeOptionalBody[regenerateAllRequest](r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.regenerationService.RegenerateAll(ctx, usecase.RegenerateAllInput{
		MaxWorkers: req.MaxWorkers,
		Deferred:   req.Deferred,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "regenerate-all job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// RunRegenerateSeasonJob is the queue callback for one deferred
// regeneration job. Lock contention maps to 409 so the queue retries
// instead of dropping the job.
func (h *Handler) RunRegenerateSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRegenerateSeasonJob")
	defer span.End()

	var req regenerateSeasonRequest
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

	result, err := h.generationService.GenerateSchedule(ctx, req.SeasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "deferred regeneration failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// decodeOptionalBody tolerates an empty request body for job endpoints
// whose parameters are all optional.
func decodeOptionalBody[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, nil
	}

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

type rosterChangedRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
}

type regenerateAllRequest struct {
	MaxWorkers int  `json:"max_workers" validate:"min=0,max=64"`
	Deferred   bool `json:"deferred"`
}

type regenerateSeasonRequest struct {
	SeasonID string `json:"season_id" validate:"required"`
}
