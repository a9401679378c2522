package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/render"
)

// ErrorResponse is the JSON body of failed service endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// render draws page for the current user. A template failure becomes a
// plain 500 since nothing has been written yet; a failed write is only logged.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, view *render.View) {
	if view == nil {
		view = &render.View{}
	}
	view.User = middleware.UserFromContext(r.Context())

	err := h.Renderer.Render(w, status, page, view)
	switch {
	case err == nil:
	case errors.Is(err, render.ErrWrite):
		h.Log.WithError(err).WithField("page", page).Warn("client went away")
	default:
		h.Log.WithError(err).WithField("page", page).Error("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404.html", nil)
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func (h *Handlers) ServerError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusInternalServerError, "500.html", nil)
}

// handleError answers with the not found page for missing objects and the
// failure page for everything else.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, models.ErrNotFound) {
		h.NotFound(w, r)
		return
	}

	h.Log.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"uri":    r.RequestURI,
	}).Error("request failed")
	h.ServerError(w, r)
}
