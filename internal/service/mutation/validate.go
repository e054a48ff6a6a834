package mutation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// Input bounds, counted in characters.
const (
	MaxContentLength  = 500
	MaxFullNameLength = 100
)

// Validation aliases expanded from the bounds above.
const (
	contentTag  = "content"
	fullNameTag = "fullname"
)

type postInput struct {
	Content string `json:"content" validate:"content"`
}

type profileInput struct {
	FullName string `json:"fullName" validate:"fullname"`
}

type provisionInput struct {
	FullName string `json:"fullName" validate:"fullname"`
	Email    string `json:"email" validate:"required,email"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterAlias(contentTag, fmt.Sprintf("required,max=%d", MaxContentLength))
	v.RegisterAlias(fullNameTag, fmt.Sprintf("required,max=%d", MaxFullNameLength))
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// clean trims surrounding whitespace and applies NFC so that composed and
// decomposed spellings count the same.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ContentLength is the character count a post body is validated against.
// Clients use it to drive a remaining-characters counter.
func ContentLength(raw string) int {
	return utf8.RuneCountInString(clean(raw))
}

func check(v *validator.Validate, input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{Field: fe.Field(), Message: message(fe)})
	}
	return &ValidationError{Issues: issues}
}

func message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
