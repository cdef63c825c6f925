package purchase

import "quipu/internal/core/numerator"

const (
	// NumberPrefix is the document number prefix (compra).
	NumberPrefix = "CMP"

	// NumeratorStrategy: purchases are primary accounting documents, so
	// numbers must be sequential without gaps.
	NumeratorStrategy = numerator.StrategyStrict

	// RecorderType identifies purchase movements in the kardex.
	RecorderType = "purchase"
)
