package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/forms"
	"yatube/internal/render"
	"yatube/internal/service"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	GroupService   service.GroupService
	PostService    service.PostService
	CommentService service.CommentService
	FollowService  service.FollowService
	DB             HealthChecker
	PageCache      cache.PageCache
	Renderer       *render.Renderer
	Cfg            *config.Config
	Validate       *validator.Validate
	Log            *logrus.Logger
}

func NewHandlers(services *service.Service, db HealthChecker, pageCache cache.PageCache,
	renderer *render.Renderer, cfg *config.Config, log *logrus.Logger) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		GroupService:   services.Group,
		PostService:    services.Post,
		CommentService: services.Comment,
		FollowService:  services.Follow,
		DB:             db,
		PageCache:      pageCache,
		Renderer:       renderer,
		Cfg:            cfg,
		Validate:       forms.NewValidator(),
		Log:            log,
	}
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		writeError(w, "database is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.DB.HealthCheck(); err != nil {
		h.Log.WithError(err).Warn("health check failed")
		writeError(w, "database is unavailable", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
