package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-scheduler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-scheduler/internal/platform/cache"
	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
	"github.com/riskibarqy/league-scheduler/internal/usecase"
)

const testInternalToken = "internal-test-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	venueRepo := memory.NewVenueRepository(memory.SeedVenues())
	timeSlotRepo := memory.NewTimeSlotRepository(memory.SeedTimeSlots())
	gameRepo := memory.NewGameRepository(nil)

	logger := logging.NewNop()
	gamesCache := cache.NewStore(30 * time.Second)

	generationService := usecase.NewGenerationService(
		seasonRepo, teamRepo, venueRepo, timeSlotRepo, gameRepo,
		gamesCache, nil, []time.Weekday{time.Saturday}, logger,
	)
	seasonService := usecase.NewSeasonService(seasonRepo, gameRepo, gamesCache, nil, generationService, logger)
	ingestionService := usecase.NewIngestionService(teamRepo, venueRepo, timeSlotRepo, logger)
	regenerationService := usecase.NewRegenerationService(seasonRepo, generationService, nil, 0, logger)

	handler := NewHandler(seasonService, generationService, ingestionService, regenerationService, logger)
	return NewRouter(handler, logger, []string{"*"}, testInternalToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_ListSeasons(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one seeded season, got %v", body["data"])
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["state"].(string); got != "CONFIGURATION" {
		t.Fatalf("expected seeded season in CONFIGURATION, got %v", first["state"])
	}
}

func TestRouter_InternalRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/seasons/rec-basketball-2026-regular/schedule/generate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/seasons/rec-basketball-2026-regular/schedule/generate", nil)
	req.Header.Set("X-Internal-Job-Token", "wrong-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 with wrong token, got %d", rec.Code)
	}
}

func TestRouter_GenerateScheduleAndListGames(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/seasons/rec-basketball-2026-regular/schedule/generate", nil)
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["game_count"].(float64); int(got) != 30 {
		t.Fatalf("expected 30 games for 6 teams over 2 cycles, got %v", data["game_count"])
	}
	if got, _ := data["state"].(string); got != "GENERATED" {
		t.Fatalf("expected season state GENERATED, got %v", data["state"])
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/seasons/rec-basketball-2026-regular/games", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body = decodeEnvelope(t, rec)
	games, ok := body["data"].([]any)
	if !ok || len(games) != 30 {
		t.Fatalf("expected 30 scheduled games, got %d", len(games))
	}
	first, _ := games[0].(map[string]any)
	if got, _ := first["status"].(string); got != "SCHEDULED" {
		t.Fatalf("expected SCHEDULED status, got %v", first["status"])
	}
}

func TestRouter_GetSeasonNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/unknown-season", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_CreateSeasonValidation(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"league_id":"rec-basketball-2026","name":"Summer Cup","start_date":"2026-07-04","end_date":"not-a-date","max_games_per_day":2,"cycles":1}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/seasons", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed date, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_CreateSeason(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"league_id":"rec-basketball-2026","name":"Summer Cup","start_date":"2026-07-04","end_date":"2026-08-29","max_games_per_day":2,"cycles":1}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/seasons", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["state"].(string); got != "CONFIGURATION" {
		t.Fatalf("expected new season in CONFIGURATION, got %v", data["state"])
	}
	if got, _ := data["id"].(string); got == "" {
		t.Fatal("expected generated season id")
	}
}

func TestRouter_IngestTeamsRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"league_id":"rec-basketball-2026","teams":[{"id":"t1","name":"New Team","active":true,"bogus":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/teams", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RosterChangedRegenerates(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/seasons/rec-basketball-2026-regular/schedule/generate", nil)
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 generating schedule, got %d: %s", rec.Code, rec.Body.String())
	}

	payload := `{"league_id":"rec-basketball-2026"}`
	req = httptest.NewRequest(http.MethodPost, "/v1/internal/events/roster-changed", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["regenerated_count"].(float64); int(got) != 1 {
		t.Fatalf("expected one regenerated season, got %v", data["regenerated_count"])
	}
}

func TestRouter_RegenerateAllJob(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/seasons/rec-basketball-2026-regular/schedule/generate", nil)
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 generating schedule, got %d: %s", rec.Code, rec.Body.String())
	}

	payload := `{"max_workers":2}`
	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/regenerate-all", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testInternalToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["success_count"].(float64); int(got) != 1 {
		t.Fatalf("expected one regenerated season, got %v", data["success_count"])
	}
}

func TestRouter_ListSeasonTeams(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/rec-basketball-2026-regular/teams", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 6 {
		t.Fatalf("expected 6 seeded teams, got %v", body["data"])
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["league_id"].(string); got == "" {
		t.Fatal("expected league_id on team payload")
	}
}

func TestRouter_ListSeasonVenuesUnknownSeason(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/unknown-season/venues", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
