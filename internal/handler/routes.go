package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/metrics"
	"yatube/internal/middleware"
)

// Router maps the site URLs to handlers.
func (h *Handlers) Router() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	login := middleware.LoginRequired(h.Cfg.LoginURL)
	protect := func(f http.HandlerFunc) http.Handler {
		return login(f)
	}

	index := http.Handler(http.HandlerFunc(h.Index))
	if h.PageCache != nil {
		index = middleware.CachePage(h.PageCache, h.Log)(index)
	}

	router.Handle("/", index).Methods(http.MethodGet)
	router.HandleFunc("/group/{slug}/", h.GroupPosts).Methods(http.MethodGet)
	router.HandleFunc("/profile/{username}/", h.Profile).Methods(http.MethodGet)
	router.HandleFunc("/posts/{post_id}/", h.PostDetail).Methods(http.MethodGet)
	router.Handle("/create/", protect(h.CreatePost)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/posts/{post_id}/edit/", protect(h.EditPost)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/posts/{post_id}/comment/", protect(h.AddComment)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/follow/", protect(h.FollowIndex)).Methods(http.MethodGet)
	router.Handle("/profile/{username}/follow/", protect(h.ProfileFollow)).Methods(http.MethodGet)
	router.Handle("/profile/{username}/unfollow/", protect(h.ProfileUnfollow)).Methods(http.MethodGet)

	router.HandleFunc("/auth/signup/", h.Signup).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/auth/login/", h.Login).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/auth/logout/", h.Logout).Methods(http.MethodGet, http.MethodPost)

	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return router
}

// Handler is the router wrapped in the request-wide middleware. The inner
// Recover lets logging and metrics see the 500 of a panicking page; the
// outer one covers the middleware itself.
func (h *Handlers) Handler() http.Handler {
	router := h.Router()
	failure := http.HandlerFunc(h.ServerError)

	return middleware.Chain(
		router,
		middleware.Recover(h.Log, failure),
		middleware.Metrics(router),
		middleware.LoggingMiddleware(h.Log),
		middleware.AuthMiddleware(h.AuthService, h.Log),
		middleware.Recover(h.Log, failure),
	)
}
