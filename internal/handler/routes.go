package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"senateur-site/internal/middleware"
)

// RouterDeps bundles everything NewRouter needs to wire the site.
type RouterDeps struct {
	Public  *PublicHandler
	Admin   *AdminHandler
	Auth    *AuthHandler
	Seo     *SeoHandler
	Session *scs.SessionManager

	// Authorizer checks every request against the Casbin policy.
	Authorizer func(http.Handler) http.Handler
	// Errors converts AppHandler results into rendered error pages.
	Errors func(middleware.AppHandler) http.Handler

	// Static serves the embedded assets; Uploads serves stored files.
	Static  http.Handler
	Uploads http.Handler
}

// NewRouter creates and configures a new chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Sessions wrap everything so the authorizer can read the role.
	r.Use(deps.Session.LoadAndSave)
	r.Use(deps.Authorizer)

	h := deps.Errors

	// Public pages
	r.Method(http.MethodGet, "/", h(deps.Public.homeHandler))
	r.Method(http.MethodGet, "/about", h(deps.Public.aboutHandler))
	r.Method(http.MethodGet, "/programs", h(deps.Public.programsHandler))
	r.Method(http.MethodGet, "/activities", h(deps.Public.activitiesHandler))
	r.Method(http.MethodGet, "/news", h(deps.Public.newsListHandler))
	r.Method(http.MethodGet, "/news/{id}", h(deps.Public.newsItemHandler))
	r.Method(http.MethodGet, "/documents", h(deps.Public.documentsHandler))
	r.Method(http.MethodGet, "/media", h(deps.Public.mediaHandler))
	r.Method(http.MethodGet, "/contact", h(deps.Public.contactFormHandler))
	r.Method(http.MethodPost, "/contact", h(deps.Public.contactSubmitHandler))

	// SEO endpoints
	r.Get("/robots.txt", deps.Seo.robotsHandler)
	r.Get("/sitemap.xml", deps.Seo.sitemapHandler)

	// Authentication
	r.Method(http.MethodGet, "/auth/login", h(deps.Auth.loginFormHandler))
	r.Method(http.MethodPost, "/auth/login", h(deps.Auth.loginSubmitHandler))
	r.Method(http.MethodGet, "/auth/oidc", h(deps.Auth.oidcLoginHandler))
	r.Method(http.MethodGet, "/auth/callback", h(deps.Auth.oidcCallbackHandler))
	r.Method(http.MethodPost, "/auth/logout", h(deps.Auth.logoutHandler))

	// Back-office. The Casbin policy restricts /admin and /admin/* to the
	// admin role; the routes themselves carry no extra checks.
	r.Route("/admin", func(r chi.Router) {
		r.Method(http.MethodGet, "/", h(deps.Admin.dashboardHandler))

		r.Method(http.MethodGet, "/content/{table}", h(deps.Admin.contentListHandler))
		r.Method(http.MethodGet, "/content/{table}/new", h(deps.Admin.contentFormHandler))
		r.Method(http.MethodGet, "/content/{table}/{id}/edit", h(deps.Admin.contentFormHandler))
		r.Method(http.MethodPost, "/content/{table}/save", h(deps.Admin.contentSaveHandler))
		r.Method(http.MethodPost, "/content/{table}/{id}/delete", h(deps.Admin.contentDeleteHandler))

		r.Method(http.MethodGet, "/categories", h(deps.Admin.categoriesHandler))
		r.Method(http.MethodPost, "/categories/save", h(deps.Admin.categorySaveHandler))
		r.Method(http.MethodPost, "/categories/{id}/delete", h(deps.Admin.categoryDeleteHandler))

		r.Method(http.MethodGet, "/events", h(deps.Admin.eventsHandler))
		r.Method(http.MethodPost, "/events/save", h(deps.Admin.eventSaveHandler))
		r.Method(http.MethodPost, "/events/{id}/delete", h(deps.Admin.eventDeleteHandler))

		r.Method(http.MethodGet, "/event-photos", h(deps.Admin.eventPhotosHandler))
		r.Method(http.MethodPost, "/event-photos/save", h(deps.Admin.eventPhotoSaveHandler))
		r.Method(http.MethodPost, "/event-photos/{id}/delete", h(deps.Admin.eventPhotoDeleteHandler))

		r.Method(http.MethodGet, "/messages", h(deps.Admin.messagesHandler))
		r.Method(http.MethodPost, "/messages/{id}/read", h(deps.Admin.messageReadHandler))
		r.Method(http.MethodPost, "/messages/{id}/delete", h(deps.Admin.messageDeleteHandler))

		r.Method(http.MethodPost, "/upload", h(deps.Admin.uploadHandler))
	})

	// Assets
	r.Handle("/static/*", http.StripPrefix("/static/", deps.Static))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", deps.Uploads))

	return r
}
