package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-scheduler/internal/domain/schedule"
	"github.com/riskibarqy/league-scheduler/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestWriteError_ResourceShortageListsPairings(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, &schedule.ResourceShortageError{
		SeasonID: "season-1",
		Unassigned: []schedule.UnassignedPairing{
			{
				Pairing: schedule.Pairing{HomeTeamID: "team-a", AwayTeamID: "team-b", Cycle: 1},
				Reason:  schedule.ShortageCapacityExhausted,
			},
			{
				Pairing: schedule.Pairing{HomeTeamID: "team-c", AwayTeamID: "team-d", Cycle: 2},
				Reason:  schedule.ShortageNoCommonFreeDay,
			},
		},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "FAILED_PRECONDITION" {
		t.Fatalf("expected error status FAILED_PRECONDITION, got %v", errorObj["status"])
	}

	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected one error item per unassigned pairing, got %v", errorObj["errors"])
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["reason"].(string); got != string(schedule.ShortageCapacityExhausted) {
		t.Fatalf("expected reason %s, got %v", schedule.ShortageCapacityExhausted, first["reason"])
	}
	second, _ := items[1].(map[string]any)
	if got, _ := second["reason"].(string); got != string(schedule.ShortageNoCommonFreeDay) {
		t.Fatalf("expected reason %s, got %v", schedule.ShortageNoCommonFreeDay, second["reason"])
	}
}

func TestMapError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantHTTP   int
		wantReason string
	}{
		{
			name:       "generation in progress",
			err:        fmt.Errorf("%w: season season-1", usecase.ErrGenerationInProgress),
			wantHTTP:   http.StatusConflict,
			wantReason: "generationInProgress",
		},
		{
			name:       "insufficient teams",
			err:        fmt.Errorf("league league-1: %w", schedule.ErrInsufficientTeams),
			wantHTTP:   http.StatusBadRequest,
			wantReason: "invalidInput",
		},
		{
			name:       "invariant violation",
			err:        &schedule.InvariantViolationError{Rule: "resource conflict"},
			wantHTTP:   http.StatusInternalServerError,
			wantReason: "invariantViolation",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: season missing", usecase.ErrNotFound),
			wantHTTP:   http.StatusNotFound,
			wantReason: "notFound",
		},
		{
			name:       "unauthorized",
			err:        fmt.Errorf("%w: invalid internal job token", usecase.ErrUnauthorized),
			wantHTTP:   http.StatusUnauthorized,
			wantReason: "unauthorized",
		},
		{
			name:       "dependency unavailable",
			err:        fmt.Errorf("%w: queue down", usecase.ErrDependencyUnavailable),
			wantHTTP:   http.StatusServiceUnavailable,
			wantReason: "dependencyUnavailable",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantHTTP:   http.StatusInternalServerError,
			wantReason: "internalError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(context.Background(), tt.err)
			if mapped.HTTPStatus != tt.wantHTTP {
				t.Fatalf("expected http status %d, got %d", tt.wantHTTP, mapped.HTTPStatus)
			}
			if mapped.Reason != tt.wantReason {
				t.Fatalf("expected reason %s, got %s", tt.wantReason, mapped.Reason)
			}
		})
	}
}
