package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// RegisterValidators installs the custom binding tags used by the request DTOs
// on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the custom tags on v.
func RegisterValidations(v *validator.Validate) error {
	validations := map[string]validator.Func{
		"role":     validateRole,
		"rate":     validateRate,
		"currency": validateCurrency,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}

func validateRole(fl validator.FieldLevel) bool {
	_, err := domain.ParseRole(fl.Field().String())
	return err == nil
}

// validateRate accepts non-negative decimals with at most two fractional digits.
func validateRate(fl validator.FieldLevel) bool {
	rate, err := decimal.NewFromString(fl.Field().String())
	if err != nil || rate.IsNegative() {
		return false
	}
	return rate.Equal(rate.Round(2))
}

func validateCurrency(fl validator.FieldLevel) bool {
	return domain.CurrencyCode(fl.Field().String()).Normalize().IsCategoryCurrency()
}
