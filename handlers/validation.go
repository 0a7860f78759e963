package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom tags used by request structs to gin's
// validator engine. Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("bearing", func(fl validator.FieldLevel) bool {
		d := fl.Field().Int()
		return d >= 0 && d <= 359
	})
}

// bindingMessage turns a gin binding error into the message sent to clients.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "bearing":
				msgs = append(msgs, field+" must be a bearing between 0 and 359")
			case "required":
				msgs = append(msgs, field+" is required")
			default:
				msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
			}
		}
		return strings.Join(msgs, "; ")
	}
	return "Invalid request body: " + err.Error()
}
