package handlers

import (
	"fmt"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain enum tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	rules := map[string]validator.Func{
		"articlestate": func(fl validator.FieldLevel) bool {
			return domain.ArticleState(fl.Field().String()).Valid()
		},
		"articlestatus": func(fl validator.FieldLevel) bool {
			return domain.ArticleStatus(fl.Field().String()).Valid()
		},
		"txnkind": func(fl validator.FieldLevel) bool {
			return domain.TransactionKind(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}
