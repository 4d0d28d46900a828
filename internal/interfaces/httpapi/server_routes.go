package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/lineups/validate", handler.ValidateLineup)
	mux.HandleFunc("GET /v1/lineups/{target}", handler.GetLineup)
	mux.HandleFunc("GET /v1/salaries", handler.ListSalaries)
	mux.HandleFunc("GET /v1/salaries/{playerID}", handler.GetPlayerSalary)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetRosterPlayer)
	mux.HandleFunc("POST /v1/players/lookup", handler.LookupPlayers)
	mux.HandleFunc("GET /v1/teams/injuries", handler.ListTeamInjuries)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("GET /v1/internal/jobs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListRefreshJobs)))
	mux.Handle("POST /v1/internal/jobs/{task}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
}
