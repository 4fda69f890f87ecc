package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
)

var (
	whatsappPattern = regexp.MustCompile(`^\+\d{8,15}$`)
	maxPrice        = decimal.NewFromInt(1_000_000)
)

const MinShopNameLength = 3

// Message IDs attached to ValidationError fields. They are translated by the i18n bundle.
const (
	MsgRequired        = "validation.required"
	MsgInvalid         = "validation.invalid"
	MsgWhatsApp        = "validation.whatsapp"
	MsgShopName        = "validation.shop_name"
	MsgPricePositive   = "validation.price_positive"
	MsgPriceTooHigh    = "validation.price_too_high"
	MsgPriceDecimals   = "validation.price_decimals"
	MsgEmail           = "validation.email"
	MsgEmailTaken      = "validation.email_taken"
	MsgUsernameTaken   = "validation.username_taken"
	MsgPasswordLength  = "validation.password_length"
	MsgPasswordMatch   = "validation.password_mismatch"
	MsgTooLong         = "validation.too_long"
	MsgUnknownCategory = "validation.unknown_category"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	_ = v.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
		return IsWhatsAppNumber(fl.Field().String())
	})
	_ = v.RegisterValidation("shopname", func(fl validator.FieldLevel) bool {
		return IsShopName(fl.Field().String())
	})
	// Decimals are validated through their canonical string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return priceMessage(fl.Field().String()) == ""
	})

	return &Validator{v: v}
}

func IsWhatsAppNumber(s string) bool {
	return whatsappPattern.MatchString(s)
}

func IsShopName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinShopNameLength
}

// PriceError returns the message ID describing why p is not an acceptable price, or "".
// Accepted prices lie in (0, 1,000,000] with at most two fractional digits; trailing zeros
// such as "9.500" do not count.
func PriceError(p decimal.Decimal) string {
	if !p.IsPositive() {
		return MsgPricePositive
	}
	if p.GreaterThan(maxPrice) {
		return MsgPriceTooHigh
	}
	if !p.Equal(p.Truncate(2)) {
		return MsgPriceDecimals
	}
	return ""
}

func priceMessage(raw string) string {
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return MsgInvalid
	}
	return PriceError(p)
}

// Struct validates s and converts failures into an *apperror.ValidationError.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := &apperror.ValidationError{}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), messageFor(fe))
	}
	return ve
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "whatsapp":
		return MsgWhatsApp
	case "shopname":
		return MsgShopName
	case "price":
		if raw, ok := fe.Value().(string); ok {
			if msg := priceMessage(raw); msg != "" {
				return msg
			}
		}
		return MsgPricePositive
	case "email":
		return MsgEmail
	case "min":
		if strings.HasPrefix(fe.Field(), "password") {
			return MsgPasswordLength
		}
		return MsgInvalid
	case "max":
		return MsgTooLong
	case "eqfield":
		return MsgPasswordMatch
	default:
		return MsgInvalid
	}
}
