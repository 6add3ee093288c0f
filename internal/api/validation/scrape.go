package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateFieldName accepts any field name with at least one non-space character.
// Names are free text ("price ($)", "Rating/5", "author's name") and go to the
// model verbatim.
func ValidateFieldName(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// RegisterScrapeValidators registers all scrape-related custom validators
func RegisterScrapeValidators(v *validator.Validate) {
	v.RegisterValidation("field_name", ValidateFieldName)
}

// New returns a validator with the custom scrape rules registered
func New() *validator.Validate {
	v := validator.New()
	RegisterScrapeValidators(v)
	return v
}
