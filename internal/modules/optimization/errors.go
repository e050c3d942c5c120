package optimization

import "errors"

// Terminal error conditions of the closed-form optimizers. Both indicate a
// degenerate covariance structure; no fallback weights are produced.
var (
	// ErrSingularMatrix is returned when Gauss-Jordan elimination cannot
	// find a pivot above the numerical floor.
	ErrSingularMatrix = errors.New("covariance matrix is singular or near-singular")

	// ErrDegenerateNormalization is returned when the raw solution sums to
	// ~0 and cannot be scaled into a fully-invested portfolio.
	ErrDegenerateNormalization = errors.New("degenerate solution: normalization denominator is ~0")
)
