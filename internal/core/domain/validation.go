package domain

import (
	"net/netip"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with address-specific custom tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validation engine with the custom tags the
// configuration schema uses.
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("ipaddr", validateIPAddr)

	// report failures by schema key, not Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates a tagged struct.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// ipaddr accepts any literal that net/netip parses, so validation agrees
// exactly with the parser used to build the domain types.
func validateIPAddr(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty handled by required
	}
	_, err := netip.ParseAddr(value)
	return err == nil
}
