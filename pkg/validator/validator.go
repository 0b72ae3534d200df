package validator

import (
	"errors"
	"html"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	strict    *bluemonday.Policy
	initOnce  sync.Once

	spaceRegex = regexp.MustCompile(`\s+`)
)

func Init() {
	initOnce.Do(func() {
		validate = validator.New()
		sanitizer = bluemonday.UGCPolicy()
		strict = bluemonday.StrictPolicy()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(formFieldName)
	v.RegisterValidation("no_html", validateNoHTML)
}

// formFieldName reports validation errors under the form field name so they
// can be matched to inputs when the form is re-rendered.
func formFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

// FieldErrors maps each failing field to the tag that rejected it. Errors that
// are not validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	result := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		if _, exists := result[fieldErr.Field()]; exists {
			continue
		}
		result[fieldErr.Field()] = fieldErr.Tag()
	}
	return result
}

func SanitizeHTML(html string) string {
	Init()
	return sanitizer.Sanitize(html)
}

// SanitizeString strips all markup from s.
func SanitizeString(s string) string {
	Init()
	return strict.Sanitize(s)
}

// StripTags removes markup from s and returns plain text. Entities produced by
// the sanitizer are decoded again because the result is escaped on output.
func StripTags(s string) string {
	return html.UnescapeString(SanitizeString(s))
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

func TrimSpaces(s string) string {
	return strings.TrimSpace(s)
}

func NormalizeSpaces(s string) string {
	return spaceRegex.ReplaceAllString(s, " ")
}
