package middleware

import (
	"bytes"
	"net/http"

	"github.com/sirupsen/logrus"

	"yatube/internal/cache"
	"yatube/internal/metrics"
)

// CachePage serves GET responses from c while they are fresh. Pages differ
// by viewer, so the key holds the user as well as the request URI. Only
// successful responses are stored.
func CachePage(c cache.PageCache, log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := pageKey(r)

			body, ok, err := c.Get(r.Context(), key)
			if err != nil {
				log.WithError(err).WithField("key", key).Warn("page cache lookup failed")
			}
			metrics.RecordCacheLookup(ok)

			if ok {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			rec := &bodyRecorder{statusRecorder: newStatusRecorder(w)}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				return
			}
			if err := c.Set(r.Context(), key, rec.body.Bytes()); err != nil {
				log.WithError(err).WithField("key", key).Warn("page cache store failed")
			}
		})
	}
}

func pageKey(r *http.Request) string {
	viewer := "anonymous"
	if user := UserFromContext(r.Context()); user != nil {
		viewer = user.UserID
	}
	return viewer + ":" + r.URL.RequestURI()
}

type bodyRecorder struct {
	*statusRecorder
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.statusRecorder.Write(b)
}
