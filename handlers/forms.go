package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"blog/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgUsernameTaken = "A user with that username already exists."
	msgSlugTaken     = "Group with this Slug already exists."
)

var (
	slugRegexp     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)
	validate       = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Errors are reported under the form field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegexp.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegexp.MatchString(fl.Field().String())
	})
	return v
}

// FormErrors maps form field names to their messages, "form" holds the non-field errors
type FormErrors map[string][]string

func (e FormErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FormErrors) Valid() bool {
	return len(e) == 0
}

func validateForm(form any) FormErrors {
	errs := FormErrors{}
	var validationErrors validator.ValidationErrors
	if err := validate.Struct(form); errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			errs.Add(fe.Field(), errorMessage(fe))
		}
	}
	return errs
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return "Ensure this value has at most " + fe.Param() + " characters."
	case "min":
		return "Ensure this value has at least " + fe.Param() + " characters."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "The two password fields didn't match."
	}
	return "Enter a valid value."
}

type PostForm struct {
	Text       string `form:"text" validate:"required"`
	Group      string `form:"group"`
	ImageClear string `form:"image-clear"`
}

func (f *PostForm) Clean() {
	f.Text = strings.TrimSpace(f.Text)
	f.Group = strings.TrimSpace(f.Group)
}

// Validate also resolves the selected group, nil means no group
func (f *PostForm) Validate() (groupID *uint64, errs FormErrors, err error) {
	errs = validateForm(f)
	if f.Group == "" {
		return nil, errs, nil
	}
	id, parseErr := strconv.ParseUint(f.Group, 10, 64)
	if parseErr != nil {
		errs.Add("group", msgInvalidChoice)
		return nil, errs, nil
	}
	group, err := models.GroupByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errs.Add("group", msgInvalidChoice)
		return nil, errs, nil
	}
	if err != nil {
		return nil, errs, err
	}
	return &group.ID, errs, nil
}

// Values is what the form template shows
func (f *PostForm) Values() map[string]string {
	return map[string]string{"text": f.Text, "group": f.Group}
}

type CommentForm struct {
	Text string `form:"text" validate:"required,max=200"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,max=254,email"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

func (f *SignupForm) Clean() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

func (f *SignupForm) Values() map[string]string {
	return map[string]string{
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"username":   f.Username,
		"email":      f.Email,
	}
}

type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description"`
}
