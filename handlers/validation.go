package handlers

import (
	"errors"
	"sync"

	"partnerhub/services/commercial"
	"partnerhub/services/events"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators adds the partnerid, hhmm and yyyymmdd binding tags to gin's
// validator. Safe to call more than once.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("gin binding validator is not go-playground/validator")
			return
		}
		rules := map[string]func(string) bool{
			"partnerid": commercial.ValidPartnerID,
			"hhmm":      events.ValidClock,
			"yyyymmdd":  events.ValidDate,
		}
		for tag, valid := range rules {
			valid := valid
			err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return valid(fl.Field().String())
			})
			if err != nil {
				validatorsErr = err
				return
			}
		}
	})
	return validatorsErr
}
