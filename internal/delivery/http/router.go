package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"firstseries/internal/delivery/http/controllers"
	"firstseries/internal/delivery/http/middleware"
)

// RouterDeps carries the controllers and cross-cutting settings for NewRouter.
type RouterDeps struct {
	Logger         *slog.Logger
	Sessions       middleware.SessionChecker
	AllowedOrigins []string

	Auth     *controllers.AuthController
	Catalog  *controllers.CatalogController
	Speakers *controllers.SpeakerController
	Sponsors *controllers.SponsorController
	Media    *controllers.MediaController
	Showcase *controllers.ShowcaseController
}

// NewRouter initializes the HTTP router with all application routes, wrapped in
// CORS and request logging.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireSession(d.Sessions, d.Logger)

	// Public showcase
	mux.HandleFunc("GET /series", d.Showcase.ListSeries)
	mux.HandleFunc("GET /series/{slug}/speakers", d.Showcase.Lineup)
	mux.HandleFunc("GET /series/{slug}/sponsors", d.Showcase.SponsorWall)

	// Admin sign-in
	mux.HandleFunc("POST /admin/login", d.Auth.Login)
	mux.HandleFunc("POST /admin/login/code", d.Auth.RequestLoginCode)
	mux.HandleFunc("POST /admin/login/code/verify", d.Auth.VerifyLoginCode)
	mux.HandleFunc("GET /admin/session", auth(d.Auth.Session))
	mux.HandleFunc("POST /admin/logout", auth(d.Auth.Logout))

	// Admin catalog
	mux.HandleFunc("GET /admin/catalog", auth(d.Catalog.GetCatalog))
	mux.HandleFunc("GET /admin/speakers/table", auth(d.Catalog.SpeakerTable))
	mux.HandleFunc("GET /admin/sponsors/table", auth(d.Catalog.SponsorTable))

	mux.HandleFunc("POST /admin/speakers", auth(d.Speakers.CreateSpeaker))
	mux.HandleFunc("PUT /admin/speakers/{id}", auth(d.Speakers.UpdateSpeaker))
	mux.HandleFunc("DELETE /admin/speakers/{id}", auth(d.Speakers.DeleteSpeaker))

	mux.HandleFunc("POST /admin/sponsors", auth(d.Sponsors.CreateSponsor))
	mux.HandleFunc("PUT /admin/sponsors/{id}", auth(d.Sponsors.UpdateSponsor))
	mux.HandleFunc("DELETE /admin/sponsors/{id}", auth(d.Sponsors.DeleteSponsor))

	mux.HandleFunc("POST /admin/media", auth(d.Media.Upload))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(d.Logger, middleware.CORS(d.AllowedOrigins, mux))
}
