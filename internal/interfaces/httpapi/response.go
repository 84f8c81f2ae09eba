package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-scheduler/internal/domain/schedule"
	"github.com/riskibarqy/league-scheduler/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "league-scheduler"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors:  errorItems(ctx, mapped, err),
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// errorItems expands a resource-shortage failure into one item per
// unassignable pairing so an operator can see exactly which matchups did
// not fit. Every other error stays a single item.
func errorItems(ctx context.Context, mapped mappedError, err error) []googleErrorItem {
	ctx, span := startSpan(ctx, "httpapi.errorItems")
	defer span.End()

	var shortage *schedule.ResourceShortageError
	if errors.As(err, &shortage) {
		items := make([]googleErrorItem, 0, len(shortage.Unassigned))
		for _, unassigned := range shortage.Unassigned {
			items = append(items, googleErrorItem{
				Domain: errorDomain,
				Reason: string(unassigned.Reason),
				Message: unassigned.Pairing.HomeTeamID + " vs " + unassigned.Pairing.AwayTeamID +
					" could not be scheduled",
			})
		}
		return items
	}

	return []googleErrorItem{
		{
			Domain:  errorDomain,
			Reason:  mapped.Reason,
			Message: err.Error(),
		},
	}
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var shortage *schedule.ResourceShortageError
	var violation *schedule.InvariantViolationError

	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, schedule.ErrInsufficientTeams),
		errors.Is(err, schedule.ErrInvalidCycleCount):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrGenerationInProgress):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "generationInProgress",
			Status:     "ABORTED",
		}
	case errors.As(err, &shortage):
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "resourceShortage",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.As(err, &violation):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "invariantViolation",
			Status:     "INTERNAL",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
