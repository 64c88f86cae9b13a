package validator

import (
	"github.com/go-playground/validator/v10"

	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/types"
)

var validate *validator.Validate

// NewValidator initializes the validator with the domain validations used at
// the form boundary: the Brazilian phone shape and the workshop status labels.
func NewValidator() *validator.Validate {
	validate = validator.New()

	_ = validate.RegisterValidation("br_phone", func(fl validator.FieldLevel) bool {
		_, err := types.ValidatePhone(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("service_status", func(fl validator.FieldLevel) bool {
		return types.ServiceStatus(fl.Field().String()).Validate() == nil
	})

	return validate
}

func GetValidator() *validator.Validate {
	return validate
}

func ValidateRequest(req interface{}) error {
	if validate == nil {
		return ierr.NewError("validator not initialized").
			WithHint("Validator must be initialized before using it").
			Mark(ierr.ErrSystem)
	}

	if err := validate.Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
