package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	currencyCodeTag   = "currency_code"
	currencyCodeText  = "must be a 3 letter ISO 4217 currency code"
	currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

	requiredTag        = "required"
	requiredWithTag    = "required_with"
	requiredWithoutTag = "required_without"
	requiredText       = "this field is required"

	gteTag  = "gte"
	gteText = "{0} must be {1} or greater"
)

// NewTranslator returns the english translator used for validation errors.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// amounts are validated as float64: `validate:"gte=0"`
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	_ = validate.RegisterValidation(currencyCodeTag, currencyCodeValidation)
	RegisterCustomTranslation(validate, translator, currencyCodeTag, currencyCodeText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithoutTag, requiredText, true)
	registerParamTranslation(validate, translator, gteTag, gteText)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// registerParamTranslation overrides the translation of a tag whose text embeds the tag param.
// the default "gte" texts depend on the field kind, which is float64 for amounts anyway.
func registerParamTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// decimalValue exposes decimal amounts to the validator as float64.
func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()
		return f
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		f, _ := d.Decimal.Float64()
		return f
	}
	return nil
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// currencyCodeValidation only allows upper-case ISO 4217 alpha codes.
func currencyCodeValidation(fl validator.FieldLevel) bool {
	return currencyCodeRegex.MatchString(fl.Field().String())
}
