// Package validation registers the custom binding tags the request DTOs use.
package validation

import (
	"fmt"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires the domain enum checks into gin's binding
// validator so malformed tags are rejected at the HTTP boundary.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type")
	}

	if err := v.RegisterValidation("sourcemodule", func(fl validator.FieldLevel) bool {
		return domain.SourceModule(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register sourcemodule validator: %w", err)
	}

	if err := v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		return domain.AccountType(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register accounttype validator: %w", err)
	}

	return nil
}
