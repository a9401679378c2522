package middleware

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"yatube/internal/metrics"
	"yatube/internal/models"
)

// SessionCookie carries the signed session token of a logged-in user.
const SessionCookie = "session"

type Middleware func(http.Handler) http.Handler

type contextKey string

const userKey contextKey = "user"

// Authenticator resolves a session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the logged-in user, nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// AuthMiddleware puts the user of a valid session into the request context.
// Requests without a usable session continue anonymously.
func AuthMiddleware(auth Authenticator, log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				log.WithError(err).Debug("ignoring invalid session")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// LoginRequired redirects anonymous requests to loginURL, passing the
// requested URI in the next parameter.
func LoginRequired(loginURL string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserFromContext(r.Context()) == nil {
				http.Redirect(w, r, LoginRedirectURL(loginURL, r.URL.RequestURI()), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func LoginRedirectURL(loginURL, next string) string {
	return loginURL + "?next=" + url.QueryEscape(next)
}

func LoggingMiddleware(log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)
			start := time.Now()

			next.ServeHTTP(rec, r)

			entry := log.WithFields(logrus.Fields{
				"method":   r.Method,
				"uri":      r.RequestURI,
				"status":   rec.status,
				"duration": time.Since(start).String(),
				"remote":   r.RemoteAddr,
			})
			if user := UserFromContext(r.Context()); user != nil {
				entry = entry.WithField("user", user.Username)
			}

			switch {
			case rec.status >= http.StatusInternalServerError:
				entry.Error("request failed")
			default:
				entry.Info("request handled")
			}
		})
	}
}

// Metrics records request counts and latency by route template.
func Metrics(router *mux.Router) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			rec := newStatusRecorder(w)
			start := time.Now()

			next.ServeHTTP(rec, r)

			metrics.ObserveRequest(r.Method, routeTemplate(router, r), rec.status, time.Since(start))
		})
	}
}

func routeTemplate(router *mux.Router, r *http.Request) string {
	if router == nil {
		return ""
	}

	var match mux.RouteMatch
	if !router.Match(r, &match) || match.Route == nil {
		return ""
	}

	template, err := match.Route.GetPathTemplate()
	if err != nil {
		return ""
	}
	return template
}

// Recover turns a panic into a logged error and the failure page.
func Recover(log *logrus.Logger, failure http.Handler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(logrus.Fields{
						"panic":  rec,
						"method": r.Method,
						"uri":    r.RequestURI,
					}).Error("recovered from panic")
					failure.ServeHTTP(w, r)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Chain wraps h so that the last middleware runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
