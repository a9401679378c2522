package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/render"
	"yatube/internal/repository"
)

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postURL(postID string) string {
	return "/posts/" + url.PathEscape(postID) + "/"
}

// Index lists all posts, newest first.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.PostService.ListPosts(r.Context(), repository.PostFilter{}, r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "index.html", &render.View{Posts: page})
}

func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, page, err := h.GroupService.Posts(r.Context(), mux.Vars(r)["slug"], r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "group_list.html", &render.View{Group: group, Posts: page})
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	h.renderDetail(w, r, mux.Vars(r)["post_id"], &forms.CommentForm{Errors: forms.Errors{}})
}

func (h *Handlers) renderDetail(w http.ResponseWriter, r *http.Request, postID string, form *forms.CommentForm) {
	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	comments, err := h.CommentService.ListForPost(r.Context(), post.PostID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post_detail.html", &render.View{
		Post:     post,
		Comments: comments,
		Form:     form,
		Fields:   forms.CommentFields,
		Errors:   form.Errors,
	})
}

// CreatePost publishes a post by the current user and sends them to their
// profile.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if r.Method == http.MethodGet {
		h.renderPostForm(w, r, &forms.PostForm{Errors: forms.Errors{}}, nil)
		return
	}

	form, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	if !form.Validate(h.Validate) {
		h.renderPostForm(w, r, form, nil)
		return
	}

	_, err := h.PostService.CreatePost(r.Context(), user, form)
	if err != nil {
		if errs, ok := forms.AsErrors(err); ok {
			form.Errors = errs
			h.renderPostForm(w, r, form, nil)
			return
		}
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(user.Username), http.StatusFound)
}

// EditPost lets the author change a post. Anyone else is sent back to the
// post without changes.
func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	postID := mux.Vars(r)["post_id"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if post.AuthorID != user.UserID {
		http.Redirect(w, r, postURL(post.PostID), http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		form := &forms.PostForm{Text: post.Text, Errors: forms.Errors{}}
		if post.GroupID != nil {
			form.Group = *post.GroupID
		}
		h.renderPostForm(w, r, form, post)
		return
	}

	form, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	if !form.Validate(h.Validate) {
		h.renderPostForm(w, r, form, post)
		return
	}

	_, err = h.PostService.UpdatePost(r.Context(), user, post.PostID, form)
	switch {
	case err == nil, errors.Is(err, models.ErrForbidden):
		http.Redirect(w, r, postURL(post.PostID), http.StatusFound)
	default:
		if errs, ok := forms.AsErrors(err); ok {
			form.Errors = errs
			h.renderPostForm(w, r, form, post)
			return
		}
		h.handleError(w, r, err)
	}
}

func (h *Handlers) parsePostForm(w http.ResponseWriter, r *http.Request) (*forms.PostForm, bool) {
	// room for the other fields and multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1<<20)

	form, err := forms.ParsePostForm(r, h.Cfg.MaxUploadSize)
	if err != nil {
		h.Log.WithError(err).Debug("unreadable post form")
		form = &forms.PostForm{Errors: forms.Errors{}}
		form.Errors.Add("", "The submitted data could not be read. Check the file size.")
		h.renderPostFormStatus(w, r, http.StatusBadRequest, form, nil)
		return nil, false
	}

	return form, true
}

func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, post *models.Post) {
	h.renderPostFormStatus(w, r, http.StatusOK, form, post)
}

func (h *Handlers) renderPostFormStatus(w http.ResponseWriter, r *http.Request, status int,
	form *forms.PostForm, post *models.Post) {
	groups, err := h.GroupService.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, status, "create_post.html", &render.View{
		Form:   form,
		Fields: forms.PostFields,
		Errors: form.Errors,
		Groups: groups,
		Post:   post,
		IsEdit: post != nil,
	})
}

// AddComment stores a comment on a post. A GET has nothing to store and
// goes back to the post.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	postID := mux.Vars(r)["post_id"]

	if r.Method == http.MethodGet {
		http.Redirect(w, r, postURL(postID), http.StatusFound)
		return
	}

	form, err := forms.ParseCommentForm(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !form.Validate(h.Validate) {
		h.renderDetail(w, r, postID, form)
		return
	}

	if _, err := h.CommentService.AddComment(r.Context(), user, postID, form); err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, postURL(postID), http.StatusFound)
}
