// Package validator plugs go-playground/validator into echo and registers the
// storefront's form rules as validation tags.
package validator

import (
	"reflect"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/validation"
	"storefront/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Tags registered by New.
const (
	TagLuhn        = "luhn"
	TagCardExpiry  = "card_expiry"
	TagCardCVV     = "card_cvv"
	TagMomoNetwork = "momo_network"
	TagIDDocument  = "id_document"
	TagPhone       = "phone"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned by Validate when any field is rejected.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Field+": "+f.Message)
	}

	return strings.Join(messages, "; ")
}

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a validator with the storefront tags registered. Parameterised
// tags name sibling fields: card_cvv=Number, momo_network=Network and
// id_document=Type Country.
func New() *CustomValidator {
	v := &CustomValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}

	v.validate.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		TagLuhn:        v.withReason(TagLuhn),
		TagCardExpiry:  v.withReason(TagCardExpiry),
		TagCardCVV:     v.withReason(TagCardCVV),
		TagMomoNetwork: v.withReason(TagMomoNetwork),
		TagIDDocument:  v.withReason(TagIDDocument),
		TagPhone:       v.withReason(TagPhone),
	}
	for tag, fn := range rules {
		// Registration only fails for empty tags or nil functions.
		_ = v.validate.RegisterValidation(tag, fn)
	}

	return v
}

func (v *CustomValidator) withReason(tag string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return v.check(tag, fl.Field().String(), fl.Param(), fl.Parent()) == nil
	}
}

// check runs the domain rule behind tag. parent is the struct holding the
// field and resolves sibling fields named by param.
func (v *CustomValidator) check(tag, value, param string, parent reflect.Value) error {
	sibling := func(name string) string {
		return fieldString(parent, name)
	}

	switch tag {
	case TagLuhn:
		return validation.CardNumber(value)
	case TagCardExpiry:
		return validation.Expiry(value, v.now())
	case TagCardCVV:
		return validation.CVV(value, validation.DetectCardType(sibling(param)))
	case TagMomoNetwork:
		return validation.MobileMoneyPhone(value, entity.MobileNetwork(sibling(param)))
	case TagIDDocument:
		names := strings.Fields(param)
		if len(names) != 2 {
			return errors.Errorf("id_document needs two sibling fields, got %q", param)
		}

		return validation.IDDocument(value, validation.DocumentType(sibling(names[0])), sibling(names[1]))
	case TagPhone:
		return validation.Phone(value)
	default:
		return errors.Errorf("unknown rule %s", tag)
	}
}

// Validate implements echo.Validator.
func (v *CustomValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	parent := reflect.Indirect(reflect.ValueOf(i))
	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: v.message(fe, parent),
		})
	}

	return out
}

func (v *CustomValidator) message(fe validator.FieldError, parent reflect.Value) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	}

	value, _ := fe.Value().(string)
	if err := v.check(fe.Tag(), value, fe.Param(), parent); err != nil {
		return err.Error()
	}

	return "is invalid"
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

func fieldString(parent reflect.Value, name string) string {
	if parent.Kind() != reflect.Struct {
		return ""
	}
	f := parent.FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.String {
		return ""
	}

	return f.String()
}
