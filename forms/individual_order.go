// Package forms validates user submitted forms and reports errors in the
// field -> [{message, code}] shape the storefront scripts expect.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/flowershop/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,19}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	// max_digits limits the digits before the decimal point
	mustRegister(v, "max_digits", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return true
		}
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return d.Abs().Truncate(0).LessThan(decimal.New(1, int32(limit)))
	})
	mustRegister(v, "max_decimal_places", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return true
		}
		places, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return d.Exponent() >= -int32(places)
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("forms: registering %q validation: %v", tag, err))
	}
}

// Amount is a decimal typed in by the customer. JSON bodies may send it as a
// number or as a string; it is kept as text until validated.
type Amount string

// UnmarshalJSON accepts a JSON number, a string or null
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// IndividualOrderForm is the "individual order" request left on the main page
type IndividualOrderForm struct {
	Name          string `form:"name" json:"name" validate:"required,max=100"`
	Phone         string `form:"phone" json:"phone" validate:"required,phone"`
	Email         string `form:"email" json:"email" validate:"omitempty,email,max=100"`
	ContactMethod string `form:"contact_method" json:"contact_method" validate:"omitempty,oneof=phone whatsapp telegram email"`
	Budget        Amount `form:"budget" json:"budget" validate:"omitempty,decimal,max_digits=10,max_decimal_places=2"`
	Description   string `form:"description" json:"description" validate:"required,max=2000"`
}

// ContactMethods lists the choices offered by the form
func ContactMethods() []string {
	return []string{models.ContactPhone, models.ContactWhatsApp, models.ContactTelegram, models.ContactEmail}
}

// Normalize trims whitespace and applies defaults
func (f *IndividualOrderForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.ContactMethod = strings.ToLower(strings.TrimSpace(f.ContactMethod))
	f.Budget = Amount(strings.TrimSpace(string(f.Budget)))
	f.Description = strings.TrimSpace(f.Description)
	if f.ContactMethod == "" {
		f.ContactMethod = models.ContactPhone
	}
}

// Validate normalizes and checks the form. It returns nil or Errors.
func (f *IndividualOrderForm) Validate() error {
	f.Normalize()

	out := Errors{}
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			out[fe.Field()] = append(out[fe.Field()], FieldError{Message: message(fe), Code: code(fe)})
		}
	}

	if f.ContactMethod == models.ContactEmail && f.Email == "" {
		out["email"] = append(out["email"], FieldError{Message: "An email address is required to be contacted by email.", Code: "required"})
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// Order converts a validated form into a model ready to be stored
func (f *IndividualOrderForm) Order() *models.IndividualOrder {
	order := &models.IndividualOrder{
		Name:          f.Name,
		Phone:         f.Phone,
		Email:         f.Email,
		ContactMethod: f.ContactMethod,
		Description:   f.Description,
	}
	if f.Budget != "" {
		if d, err := decimal.NewFromString(string(f.Budget)); err == nil {
			order.Budget = &d
		}
	}
	return order
}

// FieldError is one problem with a field
type FieldError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Errors maps field names to their problems
type Errors map[string][]FieldError

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

// AsJSON serializes the errors into a JSON string
func (e Errors) AsJSON() string {
	b, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func code(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return "max_length"
	case "oneof":
		return "invalid_choice"
	case "max_digits", "max_decimal_places":
		return fe.Tag()
	default:
		return "invalid"
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this value has at most " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "phone":
		return "Enter a valid phone number."
	case "oneof":
		return "Select a valid choice."
	case "decimal":
		return "Enter a non-negative number."
	case "max_digits":
		return "Ensure that there are no more than " + fe.Param() + " digits before the decimal point."
	case "max_decimal_places":
		return "Ensure that there are no more than " + fe.Param() + " decimal places."
	default:
		return "Enter a valid value."
	}
}
