package app

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"review_analyzer/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return domain.IsAllowedLocation(fl.Field().String())
	})
}

// validateNewReview reports a missing field before an unknown location, so a
// request lacking ReviewBody is a MissingField error whatever its Location.
func validateNewReview(in domain.NewReview) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal(err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return domain.MissingField(domain.MsgRequiredFields)
		}
	}
	return domain.InvalidInput(domain.MsgInvalidLocation)
}
