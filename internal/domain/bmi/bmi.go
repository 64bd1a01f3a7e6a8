package bmi

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidWeight = errors.New("weight must be a number")
	ErrInvalidHeight = errors.New("height must be a positive number")
)

var hundred = decimal.NewFromInt(100)

// Compute returns weight(kg) / (height(cm)/100)^2 rounded to two decimals.
func Compute(weight, heightCm decimal.Decimal) (decimal.Decimal, error) {
	if !heightCm.IsPositive() {
		return decimal.Zero, ErrInvalidHeight
	}
	metres := heightCm.Div(hundred)
	return weight.DivRound(metres.Mul(metres), 8).Round(2), nil
}

// FromStrings parses form values and computes the BMI. Blank inputs yield
// ok=false so the derived field stays empty while the user is typing.
func FromStrings(weight, heightCm string) (value string, ok bool) {
	weight, heightCm = strings.TrimSpace(weight), strings.TrimSpace(heightCm)
	if weight == "" || heightCm == "" {
		return "", false
	}
	w, err := decimal.NewFromString(weight)
	if err != nil {
		return "", false
	}
	h, err := decimal.NewFromString(heightCm)
	if err != nil {
		return "", false
	}
	v, err := Compute(w, h)
	if err != nil {
		return "", false
	}
	return v.StringFixed(2), true
}

// Record is one BMI measurement
type Record struct {
	ID        string  `json:"_id,omitempty"`
	Employee  any     `json:"employee"`
	Weight    float64 `json:"weight"`
	Height    float64 `json:"height"`
	BMI       float64 `json:"bmi"`
	CreatedAt string  `json:"createdAt,omitempty"`
}
