package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/render"
)

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.UserFromContext(r.Context())

	profile, err := h.UserService.Profile(r.Context(), mux.Vars(r)["username"], viewer, r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "profile.html", &render.View{
		Author:    profile.Author,
		Posts:     profile.Posts,
		Following: profile.Following,
		Followers: profile.Followers,
		Follows:   profile.Follows,
	})
}

// FollowIndex lists the posts of the authors the current user follows.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	page, err := h.FollowService.Feed(r.Context(), user, r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "follow.html", &render.View{Posts: page})
}

// ProfileFollow subscribes to an author. Repeating it, or following
// yourself, changes nothing; either way the author's profile is shown next.
func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	username := mux.Vars(r)["username"]

	author, err := h.FollowService.Follow(r.Context(), user, username)
	if err != nil && !errors.Is(err, models.ErrSelfFollow) {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}

func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	author, err := h.FollowService.Unfollow(r.Context(), user, mux.Vars(r)["username"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}
