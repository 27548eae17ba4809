// Package service implements the Reel Report use cases on top of the store
// and the external providers. Every operation that depends on who is asking
// takes the caller as an explicit domain.Principal.
package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check validates v's struct tags and reports every failing field as a
// single domain.ErrInvalidInput.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "gte", "lte", "gt":
		return fmt.Sprintf("%s must be %s %s", fe.Field(), comparison(fe.Tag()), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func comparison(tag string) string {
	switch tag {
	case "gte":
		return ">="
	case "lte":
		return "<="
	default:
		return ">"
	}
}

func requireAngler(actor domain.Principal) error {
	if actor.AnglerID <= 0 {
		return domain.ErrUnauthenticated
	}
	return nil
}

func requireAdmin(actor domain.Principal) error {
	if err := requireAngler(actor); err != nil {
		return err
	}
	if !actor.Admin {
		return fmt.Errorf("%w: admin only", domain.ErrForbidden)
	}
	return nil
}

func requireAccess(actor domain.Principal, ownerID int64) error {
	if err := requireAngler(actor); err != nil {
		return err
	}
	if !actor.CanAccess(ownerID) {
		return fmt.Errorf("%w: not your record", domain.ErrForbidden)
	}
	return nil
}
