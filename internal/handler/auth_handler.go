package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/render"
)

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderSignup(w, r, &forms.SignupForm{Errors: forms.Errors{}})
		return
	}

	form, err := forms.ParseSignupForm(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !form.Validate(h.Validate) {
		h.renderSignup(w, r, form)
		return
	}

	_, err = h.AuthService.Register(r.Context(), form)
	if err != nil {
		if errs, ok := forms.AsErrors(err); ok {
			form.Errors = errs
			h.renderSignup(w, r, form)
			return
		}
		h.handleError(w, r, err)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), form.Username, form.Password1)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.setSession(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) renderSignup(w http.ResponseWriter, r *http.Request, form *forms.SignupForm) {
	h.render(w, r, http.StatusOK, "signup.html", &render.View{
		Form:   form,
		Fields: forms.SignupFields,
		Errors: form.Errors,
	})
}

// Login starts a session and continues to the page that asked for it.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		form := &forms.LoginForm{Next: r.URL.Query().Get("next"), Errors: forms.Errors{}}
		h.renderLogin(w, r, form)
		return
	}

	form, err := forms.ParseLoginForm(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !form.Validate(h.Validate) {
		h.renderLogin(w, r, form)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			form.Errors.Add("", "Please enter a correct username and password. Note that both fields may be case-sensitive.")
			h.renderLogin(w, r, form)
			return
		}
		h.handleError(w, r, err)
		return
	}

	h.setSession(w, token)
	http.Redirect(w, r, safeNext(form.Next), http.StatusFound)
}

func (h *Handlers) renderLogin(w http.ResponseWriter, r *http.Request, form *forms.LoginForm) {
	h.render(w, r, http.StatusOK, "login.html", &render.View{
		Form:   form,
		Errors: form.Errors,
		Next:   form.Next,
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	return next
}
