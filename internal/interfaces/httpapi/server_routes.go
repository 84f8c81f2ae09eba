package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/games", handler.ListSeasonGames)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams", handler.ListSeasonTeams)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/venues", handler.ListSeasonVenues)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/time-slots", handler.ListSeasonTimeSlots)
}

func registerInternalSeasonRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/seasons", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CreateSeason)))
	mux.Handle("PUT /v1/internal/seasons/{seasonID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdateSeason)))
	mux.Handle("POST /v1/internal/seasons/{seasonID}/schedule/generate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GenerateSchedule)))
	mux.Handle("POST /v1/internal/seasons/{seasonID}/activate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ActivateSeason)))
	mux.Handle("POST /v1/internal/seasons/{seasonID}/playoffs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.StartSeasonPlayoffs)))
	mux.Handle("POST /v1/internal/seasons/{seasonID}/close", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CloseSeason)))
	mux.Handle("POST /v1/internal/seasons/{seasonID}/archive", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ArchiveSeason)))
	mux.Handle("POST /v1/internal/events/roster-changed", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RosterChanged)))
}

func registerInternalIngestionRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/teams", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestTeams)))
	mux.Handle("POST /v1/internal/ingestion/venues", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestVenues)))
	mux.Handle("POST /v1/internal/ingestion/time-slots", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestTimeSlots)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/regenerate-all", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRegenerateAllJob)))
	mux.Handle("POST /v1/internal/jobs/regenerate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRegenerateSeasonJob)))
}
