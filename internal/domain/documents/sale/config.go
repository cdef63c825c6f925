package sale

import "quipu/internal/core/numerator"

const (
	// NumberPrefix is the document number prefix (venta).
	NumberPrefix = "VTA"

	// NumeratorStrategy: sales are fiscal documents, numbers must be
	// sequential without gaps.
	NumeratorStrategy = numerator.StrategyStrict

	// RecorderType identifies sale movements in the kardex.
	RecorderType = "sale"
)
