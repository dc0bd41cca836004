package paymentmethod

import (
	"database/sql/driver"
	"errors"
	"strings"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "Card"
	PaymentMethodCOD  PaymentMethod = "COD"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

func (m PaymentMethod) String() string {
	return string(m)
}

// Lower returns the lowercase form used in synthesized transaction IDs.
func (m PaymentMethod) Lower() string {
	return strings.ToLower(string(m))
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return m.String(), nil
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case PaymentMethodCard.String():
		return PaymentMethodCard, nil
	case PaymentMethodCOD.String():
		return PaymentMethodCOD, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
