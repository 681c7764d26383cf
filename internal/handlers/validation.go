package handlers

import (
	"errors"
	"sync"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const accountTypeTag = "account_type"

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by the request DTOs.
// It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation(accountTypeTag, validateAccountType)
		}
	})
}

func validateAccountType(fl validator.FieldLevel) bool {
	return domain.AccountType(fl.Field().String()).IsValid()
}

func isAccountTypeError(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == accountTypeTag {
			return true
		}
	}
	return false
}
