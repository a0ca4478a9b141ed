package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)

	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/stats", handler.ListTeamStats)
	mux.HandleFunc("GET /v1/teams/{team}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{team}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /v1/teams/{team}/supporters", handler.ListTeamSupporters)

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/predictions", handler.ListMatchPredictions)

	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedPlayerRoutes(mux, handler, verifier)
	registerAuthorizedPredictionRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier)
}

func registerAuthorizedPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.JoinGame)))
	mux.Handle("GET /v1/players/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPlayer)))
	mux.Handle("POST /v1/players/me/team-switch", RequireAuth(verifier, http.HandlerFunc(handler.SwitchMyTeam)))
}

func registerAuthorizedPredictionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches/{matchID}/predictions", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPrediction)))
	mux.Handle("GET /v1/matches/{matchID}/predictions/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPrediction)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.CreateMatch))))
	mux.Handle("PUT /v1/matches/{matchID}", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.UpdateMatch))))
	mux.Handle("POST /v1/matches/{matchID}/result", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.RecordResult))))
	mux.Handle("POST /v1/admin/recount", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.RecountPoints))))
}
