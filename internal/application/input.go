package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the form date format, YYYY-MM-DD.
const DateLayout = "2006-01-02"

// Input fields are pointers so "missing" (nil) can be told apart from
// "submitted empty"; only missing fields fail validation.
type OrderInput struct {
	CustomerName *string `form:"customer_name" validate:"required"`
	Product      *string `form:"product" validate:"required"`
	SalesChannel *string `form:"sales_channel" validate:"required"`
	Date         *string `form:"date" validate:"required"`
}

type ItemInput struct {
	Product  *string `form:"product" validate:"required"`
	Supplier *string `form:"supplier" validate:"required"`
}

// IntakeOrder is an order built without a form; Date may be omitted.
type IntakeOrder struct {
	CustomerName *string `json:"customer_name" form:"customer_name" validate:"required"`
	Product      *string `json:"product" form:"product" validate:"required"`
	SalesChannel *string `json:"sales_channel" form:"sales_channel" validate:"required"`
	Date         *string `json:"date,omitempty" form:"date"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
}

// ParseDate parses a YYYY-MM-DD string as midnight UTC. Month and day may
// be given without the leading zero.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-1-2", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrParse, s)
	}
	return t, nil
}

// parseIntakeDate also accepts RFC 3339 timestamps.
func parseIntakeDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return ParseDate(s)
}
