package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var SignupFields = map[string]Field{
	"first_name": {Name: "first_name", Label: "First name"},
	"last_name":  {Name: "last_name", Label: "Last name"},
	"username": {Name: "username", Label: "Username",
		HelpText: "Required. 150 characters or fewer. Letters, digits and @/./+/-/_ only."},
	"email":     {Name: "email", Label: "Email address"},
	"password1": {Name: "password1", Label: "Password", HelpText: "At least 8 characters."},
	"password2": {Name: "password2", Label: "Password confirmation",
		HelpText: "Enter the same password as before, for verification."},
}

type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
	Errors    Errors `form:"-" validate:"-"`
}

func ParseSignupForm(r *http.Request) (*SignupForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &SignupForm{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
		Errors:    Errors{},
	}, nil
}

func (f *SignupForm) Validate(v *validator.Validate) bool {
	f.Errors = validateStruct(v, f)
	return f.Errors.Valid()
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"-" validate:"-"`
	Errors   Errors `form:"-" validate:"-"`
}

func ParseLoginForm(r *http.Request) (*LoginForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Next:     r.FormValue("next"),
		Errors:   Errors{},
	}, nil
}

func (f *LoginForm) Validate(v *validator.Validate) bool {
	f.Errors = validateStruct(v, f)
	return f.Errors.Valid()
}

// Value returns the submitted value of a field for redisplay. Passwords are
// never echoed back.
func (f *SignupForm) Value(name string) string {
	if f == nil {
		return ""
	}
	switch name {
	case "first_name":
		return f.FirstName
	case "last_name":
		return f.LastName
	case "username":
		return f.Username
	case "email":
		return f.Email
	}
	return ""
}
