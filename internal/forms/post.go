package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var PostFields = map[string]Field{
	"text":  {Name: "text", Label: "Text", HelpText: "Text of your post"},
	"group": {Name: "group", Label: "Group", HelpText: "Group the post belongs to"},
	"image": {Name: "image", Label: "Image", HelpText: "Attach your image"},
}

type PostForm struct {
	Text       string  `form:"text" validate:"required"`
	Group      string  `form:"group" validate:"omitempty,uuid"`
	Image      *Upload `form:"-" validate:"-"`
	ClearImage bool    `form:"-" validate:"-"`
	Errors     Errors  `form:"-" validate:"-"`
}

// ParsePostForm reads the post form from r. Upload problems are recorded
// as field errors and reported by Validate.
func ParsePostForm(r *http.Request, maxUploadSize int64) (*PostForm, error) {
	if err := parse(r, maxUploadSize); err != nil {
		return nil, err
	}

	form := &PostForm{
		Text:       strings.TrimSpace(r.PostFormValue("text")),
		Group:      strings.TrimSpace(r.PostFormValue("group")),
		ClearImage: r.PostFormValue("image-clear") != "",
		Errors:     Errors{},
	}

	image, err := readImage(r, "image", maxUploadSize)
	if err != nil {
		form.Errors.Add("image", err.Error())
	}
	form.Image = image

	return form, nil
}

func (f *PostForm) Validate(v *validator.Validate) bool {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	for field, messages := range validateStruct(v, f) {
		for _, m := range messages {
			f.Errors.Add(field, m)
		}
	}
	return f.Errors.Valid()
}

// GroupID is nil when no group was chosen.
func (f *PostForm) GroupID() *string {
	if f.Group == "" {
		return nil
	}
	group := f.Group
	return &group
}
