package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
)

type shopForm struct {
	Name     string          `form:"name" validate:"required,shopname"`
	WhatsApp string          `form:"whatsapp_number" validate:"required,whatsapp"`
	Price    decimal.Decimal `form:"price" validate:"price"`
}

func TestIsWhatsAppNumber(t *testing.T) {
	assert.True(t, IsWhatsAppNumber("+50937001122"))
	assert.True(t, IsWhatsAppNumber("+12345678"))
	assert.True(t, IsWhatsAppNumber("+123456789012345"))
	assert.False(t, IsWhatsAppNumber("50937001122"), "plus sign is mandatory")
	assert.False(t, IsWhatsAppNumber("+1234567"), "too short")
	assert.False(t, IsWhatsAppNumber("+1234567890123456"), "too long")
	assert.False(t, IsWhatsAppNumber("+509 3700 1122"))
}

func TestIsShopName(t *testing.T) {
	assert.True(t, IsShopName("Abc"))
	assert.True(t, IsShopName("  Épi  "))
	assert.False(t, IsShopName("  ab  "))
}

func TestPriceError(t *testing.T) {
	assert.Equal(t, MsgPricePositive, PriceError(decimal.Zero))
	assert.Equal(t, MsgPricePositive, PriceError(decimal.NewFromInt(-1)))
	assert.Equal(t, "", PriceError(decimal.RequireFromString("0.01")))
	assert.Equal(t, "", PriceError(decimal.NewFromInt(1_000_000)))
	assert.Equal(t, MsgPriceTooHigh, PriceError(decimal.RequireFromString("1000000.01")))
	assert.Equal(t, MsgPriceDecimals, PriceError(decimal.RequireFromString("0.001")))
	assert.Equal(t, MsgPriceDecimals, PriceError(decimal.RequireFromString("0.004")))
	assert.Equal(t, "", PriceError(decimal.RequireFromString("9.500")))
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(shopForm{Name: "Boutique", WhatsApp: "+50937001122", Price: decimal.NewFromInt(10)}))

	err := v.Struct(shopForm{Name: "ab", WhatsApp: "123", Price: decimal.NewFromInt(2_000_000)})
	ve, ok := apperror.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgShopName, ve.Fields["name"])
	assert.Equal(t, MsgWhatsApp, ve.Fields["whatsapp_number"])
	assert.Equal(t, MsgPriceTooHigh, ve.Fields["price"])
}
