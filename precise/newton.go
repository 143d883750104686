package precise

import "math/big"

// Converge runs a fixed-point iteration from guess, applying step until the
// estimate stops changing bit-for-bit or the iteration cap is exhausted. When
// the cap runs out the last estimate is returned; callers that need a hard
// bound on the result must correct it themselves.
//
// Both the square root below and the stable-swap invariant solver run their
// Newton iterations through this helper so the loop tuning lives in one place.
func Converge(guess *big.Int, iterations int, step func(current *big.Int) (*big.Int, error)) (*big.Int, error) {
	current := new(big.Int).Set(guess)
	for i := 0; i < iterations; i++ {
		next, err := step(current)
		if err != nil {
			return nil, err
		}
		if next.Cmp(current) == 0 {
			return next, nil
		}
		current = next
	}
	return current, nil
}
