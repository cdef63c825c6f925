package adjustment

import "quipu/internal/core/numerator"

const (
	// NumberPrefix is the document number prefix (ajuste).
	NumberPrefix = "AJU"

	// NumeratorStrategy: adjustments are internal documents, gaps in the
	// sequence are acceptable.
	NumeratorStrategy = numerator.StrategyCached

	// RecorderType identifies adjustment movements in the kardex.
	RecorderType = "adjustment"
)
