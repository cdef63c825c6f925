// Package tax holds Bolivian tax rates and computations.
package tax

import (
	"github.com/shopspring/decimal"

	"quipu/internal/core/types"
)

// IVARate is the Bolivian value-added tax rate (13%).
var IVARate = decimal.New(13, -2)

// IVAOn returns the IVA amount for a net (tax-exclusive) value, rounded to
// currency precision.
func IVAOn(net types.Money) types.Money {
	return net.Mul(IVARate).Round(2)
}

// WithIVA returns net plus its IVA.
func WithIVA(net types.Money) types.Money {
	return net.Add(IVAOn(net))
}
