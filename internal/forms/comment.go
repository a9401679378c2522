package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var CommentFields = map[string]Field{
	"text": {Name: "text", Label: "Comment"},
}

type CommentForm struct {
	Text   string `form:"text" validate:"required"`
	Errors Errors `form:"-" validate:"-"`
}

func ParseCommentForm(r *http.Request) (*CommentForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &CommentForm{
		Text:   strings.TrimSpace(r.PostFormValue("text")),
		Errors: Errors{},
	}, nil
}

func (f *CommentForm) Validate(v *validator.Validate) bool {
	f.Errors = validateStruct(v, f)
	return f.Errors.Valid()
}
