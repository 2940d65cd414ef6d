package model

// Method indicates which cascade tier produced a classification.
type Method string

// Classification method constants, in cascade priority order.
const (
	MethodModel     Method = "model"
	MethodExtension Method = "extension"
	MethodKeyword   Method = "keyword"
	MethodFallback  Method = "fallback"
)

// ClassificationResult is the outcome of classifying one FileRecord. Exactly
// one result exists per record per run; classification never fails.
type ClassificationResult struct {
	Record     FileRecord
	Category   Category
	Reasoning  string
	Method     Method
	Confidence float64
}

// ClampConfidence forces a confidence value into [0, 1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
