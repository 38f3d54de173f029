package utils

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	onceValidate sync.Once

	// e.g. BTC-USDT, ETH-USDT
	symbolPattern = regexp.MustCompile(`^[A-Z0-9]{2,10}-[A-Z0-9]{2,10}$`)
)

// GetValidator returns the shared request validator with the custom
// trading-symbol rule registered.
func GetValidator() *validator.Validate {
	onceValidate.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("tradingsymbol", func(fl validator.FieldLevel) bool {
			return symbolPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}
