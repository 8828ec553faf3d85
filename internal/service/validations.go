package service

import (
	"errors"
	"html"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/internal/tipgen"
	"github.com/microcosm-cc/bluemonday"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once

	// Free text is stored as plain text
	sanitizer = bluemonday.StrictPolicy()
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("known_niche", func(fl validator.FieldLevel) bool {
			return tipgen.IsKnownNiche(fl.Field().String())
		})
	})
}

func validateStruct(s any) error {
	InitValidator()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if validationError, ok := err.(validator.ValidationErrors); ok {
		err = errorvalues.ErrValidation
		for _, fieldErr := range validationError {
			err = errors.Join(err, fieldErr)
		}
		return err
	}
	return errors.New("validation unexpected error: " + err.Error())
}

// sanitize drops markup but keeps the text itself verbatim: the policy
// escapes entities, which are turned back into plain characters here.
func sanitize(text string) string {
	return html.UnescapeString(sanitizer.Sanitize(text))
}
